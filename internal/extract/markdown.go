package extract

import (
	"context"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/pustaka-ai/pustaka/internal/model"
)

// MarkdownExtractor maps a markdown document to sections: the first H1 is
// the title, an "abstract"-like heading opens the abstract, a
// references-like heading opens the reference list, and every other H1/H2
// starts a new body section.
type MarkdownExtractor struct{}

func NewMarkdownExtractor() *MarkdownExtractor {
	return &MarkdownExtractor{}
}

var abstractHeadings = map[string]bool{
	"abstract": true, "abstrak": true, "ringkasan": true,
}

var referenceHeadings = map[string]bool{
	"references": true, "referensi": true, "daftar pustaka": true,
	"bibliography": true, "bibliografi": true,
}

func (m *MarkdownExtractor) Extract(ctx context.Context, r io.Reader, filename string) (*Result, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	md := goldmark.New()
	reader := text.NewReader(source)
	doc := md.Parser().Parse(reader)

	result := &Result{}
	var sections []model.Section
	current := model.Section{Type: model.SectionBody}

	flush := func() {
		if len(current.Paragraphs) == 0 && current.Raw == "" {
			return
		}
		sections = append(sections, current)
		current = model.Section{Type: model.SectionBody}
	}

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			heading := string(n.Text(source))
			if n.Level == 1 && result.Metadata.Title == "" {
				result.Metadata.Title = strings.TrimSpace(heading)
				flush()
				sections = append(sections, model.Section{
					Type:       model.SectionTitle,
					Paragraphs: []string{result.Metadata.Title},
				})
				continue
			}
			if n.Level > 2 {
				// Minor headings stay inside the running section.
				current.Paragraphs = append(current.Paragraphs, strings.TrimSpace(heading))
				continue
			}
			flush()
			key := strings.ToLower(strings.TrimSpace(heading))
			switch {
			case abstractHeadings[key]:
				current = model.Section{Type: model.SectionAbstract, Title: strings.TrimSpace(heading)}
			case referenceHeadings[key]:
				current = model.Section{Type: model.SectionRefs, Title: strings.TrimSpace(heading)}
			default:
				current = model.Section{Type: model.SectionBody, Title: strings.TrimSpace(heading)}
			}
		case *ast.FencedCodeBlock:
			var code strings.Builder
			for i := 0; i < n.Lines().Len(); i++ {
				line := n.Lines().At(i)
				code.Write(line.Value(source))
			}
			if trimmed := strings.TrimSpace(code.String()); trimmed != "" {
				current.Paragraphs = append(current.Paragraphs, trimmed)
			}
		default:
			txt := nodeText(node, source)
			if txt == "" {
				continue
			}
			current.Paragraphs = append(current.Paragraphs, txt)
		}
	}
	flush()

	for _, s := range sections {
		if s.Type == model.SectionAbstract {
			result.Abstract = strings.Join(s.Paragraphs, "\n\n")
			break
		}
	}
	result.Sections = sections
	result.Fulltext = joinSections(sections)
	return result, nil
}

func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if node.Kind() == ast.KindText {
			sb.Write(node.(*ast.Text).Segment.Value(source))
			sb.WriteByte(' ')
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(strings.Join(strings.Fields(sb.String()), " "))
}
