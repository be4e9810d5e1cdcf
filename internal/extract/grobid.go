package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/pustaka-ai/pustaka/internal/model"
	appErr "github.com/pustaka-ai/pustaka/internal/pkg/errors"
)

// GrobidExtractor sends PDFs to a GROBID server and maps the TEI response
// to sections. Scientific PDFs are the primary ingestion path.
type GrobidExtractor struct {
	baseURL string
	client  *http.Client
}

func NewGrobidExtractor(baseURL string, timeout time.Duration) *GrobidExtractor {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &GrobidExtractor{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (g *GrobidExtractor) Extract(ctx context.Context, r io.Reader, filename string) (*Result, error) {
	logger := logutil.GetLogger(ctx).With(zap.String("filename", filename))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("input", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	endpoint := g.baseURL + "/api/processFulltextDocument"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/xml")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNoContent {
		return nil, appErr.ErrEmptyDocument
	}
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("grobid request failed: %s: %s", resp.Status, strings.TrimSpace(string(data)))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	result, err := parseTEI(data)
	if err != nil {
		return nil, err
	}
	logger.Info("grobid extraction done",
		zap.Int("sections", len(result.Sections)),
		zap.Int("fulltext_chars", len(result.Fulltext)))
	return result, nil
}

// TEI document shapes, limited to the elements we read.
type teiDocument struct {
	XMLName xml.Name  `xml:"TEI"`
	Header  teiHeader `xml:"teiHeader"`
	Text    teiText   `xml:"text"`
}

type teiHeader struct {
	Title     string      `xml:"fileDesc>titleStmt>title"`
	Publisher string      `xml:"fileDesc>publicationStmt>publisher"`
	Date      teiDate     `xml:"fileDesc>publicationStmt>date"`
	Idnos     []teiIdno   `xml:"fileDesc>sourceDesc>biblStruct>idno"`
	Authors   []teiAuthor `xml:"fileDesc>sourceDesc>biblStruct>analytic>author"`
	Abstract  teiAbstract `xml:"profileDesc>abstract"`
	Langs     []teiLang   `xml:"profileDesc>langUsage>language"`
}

type teiDate struct {
	When string `xml:"when,attr"`
	Text string `xml:",chardata"`
}

type teiIdno struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type teiAuthor struct {
	Forenames []string `xml:"persName>forename"`
	Surname   string   `xml:"persName>surname"`
}

type teiAbstract struct {
	Paragraphs []string `xml:"div>p"`
	Plain      []string `xml:"p"`
}

type teiLang struct {
	Ident string `xml:"ident,attr"`
}

type teiText struct {
	Divs []teiDiv `xml:"body>div"`
	Back teiBack  `xml:"back"`
}

type teiBack struct {
	Divs []teiBackDiv `xml:"div"`
}

type teiBackDiv struct {
	Type string   `xml:"type,attr"`
	Raw  []string `xml:"listBibl>biblStruct>note"`
	Bibl []string `xml:"listBibl>biblStruct>analytic>title"`
}

type teiDiv struct {
	Head       string   `xml:"head"`
	Paragraphs []string `xml:"p"`
}

func parseTEI(data []byte) (*Result, error) {
	var doc teiDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse tei: %w", err)
	}

	result := &Result{
		Metadata: Metadata{
			Title:     strings.TrimSpace(doc.Header.Title),
			Creator:   joinAuthors(doc.Header.Authors),
			Publisher: strings.TrimSpace(doc.Header.Publisher),
			Date:      strings.TrimSpace(doc.Header.Date.When),
			DOI:       findIdno(doc.Header.Idnos, "DOI"),
			Language:  firstLang(doc.Header.Langs),
		},
	}
	if result.Metadata.Date == "" {
		result.Metadata.Date = strings.TrimSpace(doc.Header.Date.Text)
	}

	abstractParas := doc.Header.Abstract.Paragraphs
	if len(abstractParas) == 0 {
		abstractParas = doc.Header.Abstract.Plain
	}
	result.Abstract = strings.TrimSpace(strings.Join(abstractParas, "\n\n"))

	var sections []model.Section
	if result.Metadata.Title != "" {
		sections = append(sections, model.Section{
			Type:       model.SectionTitle,
			Paragraphs: []string{result.Metadata.Title},
		})
	}
	if result.Abstract != "" {
		sections = append(sections, model.Section{
			Type:       model.SectionAbstract,
			Title:      "Abstract",
			Paragraphs: trimAll(abstractParas),
		})
	}
	for _, div := range doc.Text.Divs {
		paras := trimAll(div.Paragraphs)
		if len(paras) == 0 {
			continue
		}
		sections = append(sections, model.Section{
			Type:       model.SectionBody,
			Title:      strings.TrimSpace(div.Head),
			Paragraphs: paras,
		})
	}
	for _, div := range doc.Text.Back.Divs {
		if div.Type != "references" {
			continue
		}
		refs := trimAll(append(div.Raw, div.Bibl...))
		if len(refs) == 0 {
			continue
		}
		sections = append(sections, model.Section{
			Type:       model.SectionRefs,
			Title:      "References",
			Paragraphs: refs,
		})
	}
	result.Sections = sections
	result.Fulltext = joinSections(sections)
	return result, nil
}

func joinAuthors(authors []teiAuthor) string {
	var names []string
	for _, a := range authors {
		parts := append(trimAll(a.Forenames), strings.TrimSpace(a.Surname))
		name := strings.TrimSpace(strings.Join(trimAll(parts), " "))
		if name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, "; ")
}

func findIdno(idnos []teiIdno, typ string) string {
	for _, idno := range idnos {
		if strings.EqualFold(idno.Type, typ) {
			return strings.TrimSpace(idno.Value)
		}
	}
	return ""
}

func firstLang(langs []teiLang) string {
	for _, l := range langs {
		if ident := strings.TrimSpace(l.Ident); ident != "" {
			return ident
		}
	}
	return ""
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func joinSections(sections []model.Section) string {
	var parts []string
	for _, s := range sections {
		if s.Raw != "" {
			parts = append(parts, s.Raw)
		}
		parts = append(parts, s.Paragraphs...)
	}
	return strings.Join(parts, "\n\n")
}
