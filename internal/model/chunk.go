package model

// SectionType tags a structured section produced by the extraction service.
type SectionType string

const (
	SectionTitle    SectionType = "title"
	SectionAuthors  SectionType = "authors"
	SectionAbstract SectionType = "abstract"
	SectionKeywords SectionType = "keywords"
	SectionBody     SectionType = "body-section"
	SectionRefs     SectionType = "reference"
)

// Section is one structured block of an extracted document. Paragraphs keep
// their original order. Raw carries the unsplit text for sections the
// extractor could not break into paragraphs.
type Section struct {
	Type       SectionType
	Title      string
	Paragraphs []string
	Raw        string
}

// Page is the raw text of one physical page, 1-based.
type Page struct {
	Number int
	Text   string
}

// ChunkKind classifies a chunk by the section it came from.
type ChunkKind string

const (
	ChunkTitle     ChunkKind = "title"
	ChunkAbstract  ChunkKind = "abstract"
	ChunkParagraph ChunkKind = "paragraph"
	ChunkTable     ChunkKind = "table"
	ChunkReference ChunkKind = "reference"
)

// Chunk is a bounded, independently retrievable unit of document text.
// Immutable after creation; deleted with its document.
type Chunk struct {
	ID         int64     `json:"id"`
	DocumentID int64     `json:"document_id"`
	Index      int       `json:"chunk_index"`
	Content    string    `json:"content"`
	TokenCount int       `json:"token_count"`
	Kind       ChunkKind `json:"kind"`
	PageNumber int       `json:"page_number,omitempty"`

	SectionTitle string   `json:"section_title,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`

	// Embedding of Content; nil until the embedding service succeeded.
	// A chunk with a nil embedding is never a retrieval candidate.
	Embedding []float32 `json:"-"`

	// Hypothetical questions an LLM judged the chunk could answer, and
	// the embedding of their concatenation. Both optional.
	Questions         []string  `json:"questions,omitempty"`
	QuestionEmbedding []float32 `json:"-"`

	Ctime int64 `json:"ctime"`
}
