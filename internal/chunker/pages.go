package chunker

import (
	"strings"

	"github.com/pustaka-ai/pustaka/internal/model"
	"github.com/pustaka-ai/pustaka/internal/textutil"
)

// Probe lengths for page resolution, in words.
const (
	pageProbeWords      = 20
	pageProbeWordsShort = 10
)

// resolvePage locates a chunk's true page by searching a normalized prefix
// of its content inside each page's normalized text, in page order. Falls
// back to a shorter probe before giving up; the caller keeps the provisional
// estimate on failure.
func resolvePage(content string, pages []model.Page) (int, bool) {
	if len(pages) == 0 {
		return 0, false
	}
	for _, n := range []int{pageProbeWords, pageProbeWordsShort} {
		probe := wordPrefix(content, n)
		if probe == "" {
			continue
		}
		for _, page := range pages {
			if strings.Contains(textutil.NormalizeSpace(page.Text), probe) {
				return page.Number, true
			}
		}
	}
	return 0, false
}

func wordPrefix(s string, n int) string {
	fields := strings.Fields(textutil.NormalizeSpace(s))
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}
