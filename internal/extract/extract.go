package extract

import (
	"context"
	"io"

	"github.com/pustaka-ai/pustaka/internal/model"
)

// Metadata is the subset of catalog fields an extractor can recover from
// the document itself. Empty fields stay empty; the upload's own metadata
// wins on conflict.
type Metadata struct {
	Title     string
	Creator   string
	Publisher string
	Date      string
	DOI       string
	Language  string
}

// Result is the structured output of one extraction run. Sections drive
// the chunker; Fulltext backs the fixed-window fallback when Sections is
// empty. Pages may be nil when the source format has no page concept.
type Result struct {
	Metadata Metadata
	Abstract string
	Sections []model.Section
	Pages    []model.Page
	Fulltext string
}

// SectionSource turns an uploaded file into structured sections.
type SectionSource interface {
	Extract(ctx context.Context, r io.Reader, filename string) (*Result, error)
}
