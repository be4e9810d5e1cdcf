package model

// QueryEntities holds the structured entities detected in a query. Absent
// fields mean "not detected", never "detected as empty"; Year uses 0 as the
// absent value.
type QueryEntities struct {
	Year      int          `json:"year,omitempty"`
	Creator   string       `json:"creator,omitempty"`
	Language  string       `json:"language,omitempty"`
	Publisher string       `json:"publisher,omitempty"`
	Location  string       `json:"location,omitempty"`
	Source    string       `json:"source,omitempty"`
	DOI       string       `json:"doi,omitempty"`
	DocType   DocumentType `json:"doc_type,omitempty"`
}

// Empty reports whether no entity was detected at all.
func (e QueryEntities) Empty() bool {
	return e.Year == 0 && e.Creator == "" && e.Language == "" &&
		e.Publisher == "" && e.Location == "" && e.Source == "" &&
		e.DOI == "" && e.DocType == ""
}

// ProcessedQuery is the cleaned query plus its derived signals. Ephemeral,
// never persisted.
type ProcessedQuery struct {
	Cleaned  string        `json:"cleaned_query"`
	Entities QueryEntities `json:"entities"`
	Keywords []string      `json:"keywords"`
}

// ScoredChunk is the ranking artifact for one candidate. Every score is
// derived from the candidate's own signals only, so ranking is stable given
// fixed inputs.
type ScoredChunk struct {
	Chunk         *Chunk
	Document      *Document
	SemanticScore float64
	KeywordScore  float64
	HybridScore   float64
	FilterMatched bool
}
