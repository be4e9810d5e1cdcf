package queryproc

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pustaka-ai/pustaka/internal/model"
	"github.com/pustaka-ai/pustaka/internal/textutil"
)

// Year bounds for the 4-digit year entity.
const (
	minYear = 1900
	maxYear = 2099
)

// Maximum words captured for a multi-word entity value.
const maxValueWords = 4

var (
	trailingPunct = regexp.MustCompile(`[.,;:!?]+$`)
	yearPattern   = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	doiPattern    = regexp.MustCompile(`\b10\.\d{4,9}/[^\s]+`)
)

// Processor turns a raw user query into its cleaned form, detected
// entities, and residual free-text keywords. Deterministic: the same raw
// query always yields the same result.
type Processor struct {
	maxKeywords int
}

func NewProcessor(maxKeywords int) *Processor {
	if maxKeywords <= 0 {
		maxKeywords = textutil.DefaultMaxKeywords
	}
	return &Processor{maxKeywords: maxKeywords}
}

// Process cleans the raw query and extracts structured entities plus
// keywords. An empty entities struct means nothing was detected.
func (p *Processor) Process(raw string) model.ProcessedQuery {
	cleaned := Clean(raw)
	entities := extractEntities(cleaned)
	return model.ProcessedQuery{
		Cleaned:  cleaned,
		Entities: entities,
		Keywords: residualKeywords(cleaned, entities, p.maxKeywords),
	}
}

// Clean lower-cases the query, strips trailing punctuation runs, and
// collapses internal whitespace.
func Clean(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = trailingPunct.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

func extractEntities(cleaned string) model.QueryEntities {
	var e model.QueryEntities
	if cleaned == "" {
		return e
	}
	e.Year = extractYear(cleaned)
	e.DOI = doiPattern.FindString(cleaned)
	e.Creator = extractAfterMarker(cleaned, creatorMarkers)
	e.Language = extractLanguage(cleaned)
	e.Publisher = extractAfterMarker(cleaned, publisherMarkers)
	e.Location = extractLocation(cleaned)
	e.Source = extractAfterMarker(cleaned, sourceMarkers)
	e.DocType = extractDocType(cleaned)
	// "diterbitkan oleh X" matches the bare "oleh" creator marker too;
	// the publisher reading wins.
	if e.Creator != "" && e.Creator == e.Publisher {
		e.Creator = ""
	}
	return e
}

func extractYear(cleaned string) int {
	for _, match := range yearPattern.FindAllString(cleaned, -1) {
		year, err := strconv.Atoi(match)
		if err == nil && year >= minYear && year <= maxYear {
			return year
		}
	}
	return 0
}

// extractAfterMarker captures up to maxValueWords tokens following the
// first marker found, stopping at value stopwords and digits. First marker
// in table order wins.
func extractAfterMarker(cleaned string, markers []string) string {
	for _, marker := range markers {
		idx := markerIndex(cleaned, marker)
		if idx < 0 {
			continue
		}
		rest := strings.TrimSpace(cleaned[idx+len(marker):])
		value := captureValue(rest)
		if value != "" {
			return value
		}
	}
	return ""
}

// markerIndex finds marker as a whole-word match inside cleaned.
func markerIndex(cleaned, marker string) int {
	offset := 0
	for {
		idx := strings.Index(cleaned[offset:], marker)
		if idx < 0 {
			return -1
		}
		idx += offset
		beforeOK := idx == 0 || cleaned[idx-1] == ' '
		end := idx + len(marker)
		afterOK := end == len(cleaned) || cleaned[end] == ' '
		if beforeOK && afterOK {
			return idx
		}
		offset = idx + len(marker)
		if offset >= len(cleaned) {
			return -1
		}
	}
}

func captureValue(rest string) string {
	var value []string
	for _, tok := range strings.Fields(rest) {
		if valueStopwords[tok] || isNumeric(tok) {
			break
		}
		value = append(value, tok)
		if len(value) >= maxValueWords {
			break
		}
	}
	return strings.Join(value, " ")
}

func isNumeric(tok string) bool {
	_, err := strconv.Atoi(tok)
	return err == nil
}

func extractLanguage(cleaned string) string {
	for _, marker := range languageMarkers {
		idx := markerIndex(cleaned, marker)
		if idx < 0 {
			continue
		}
		rest := strings.Fields(strings.TrimSpace(cleaned[idx+len(marker):]))
		if len(rest) == 0 {
			continue
		}
		if code, ok := languageNames[rest[0]]; ok {
			return code
		}
	}
	return ""
}

// extractLocation looks for the preposition "di" followed by a gazetteer
// place name.
func extractLocation(cleaned string) string {
	fields := strings.Fields(cleaned)
	for i := 0; i+1 < len(fields); i++ {
		if fields[i] != "di" && fields[i] != "in" {
			continue
		}
		if placeNames[fields[i+1]] {
			return fields[i+1]
		}
	}
	return ""
}

func extractDocType(cleaned string) model.DocumentType {
	for _, p := range docTypePatterns {
		if markerIndex(cleaned, p.keyword) >= 0 {
			return p.docType
		}
	}
	return ""
}

// residualKeywords extracts keywords from the cleaned query and drops any
// token already covered by a detected entity value, to avoid counting the
// same signal twice.
func residualKeywords(cleaned string, entities model.QueryEntities, maxKeywords int) []string {
	keywords := textutil.ExtractKeywords(cleaned, maxKeywords, nil)
	if len(keywords) == 0 {
		return nil
	}
	values := entityValues(entities)
	out := keywords[:0]
	for _, kw := range keywords {
		covered := false
		for _, v := range values {
			if strings.Contains(v, kw) {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, kw)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func entityValues(e model.QueryEntities) []string {
	var values []string
	for _, v := range []string{
		e.Creator, e.Language, e.Publisher, e.Location, e.Source, e.DOI,
		string(e.DocType),
	} {
		if v != "" {
			values = append(values, strings.ToLower(v))
		}
	}
	if e.Year != 0 {
		values = append(values, strconv.Itoa(e.Year))
	}
	return values
}
