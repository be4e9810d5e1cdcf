package model

// DocumentType classifies a catalog entry. Values mirror the enum stored in
// the documents table.
type DocumentType string

const (
	DocumentTypeJournal    DocumentType = "journal"
	DocumentTypeConference DocumentType = "conference"
	DocumentTypeThesis     DocumentType = "thesis"
	DocumentTypeReport     DocumentType = "report"
	DocumentTypeBook       DocumentType = "book"
)

// Processing lifecycle of an uploaded document.
const (
	ProcessingPending   = "pending"
	ProcessingRunning   = "processing"
	ProcessingCompleted = "completed"
	ProcessingFailed    = "failed"
)

// PlaceholderTitle is assigned when extraction could not recover a real
// title. Chunks under a placeholder title are excluded from retrieval.
const PlaceholderTitle = "Untitled"

// Document is the Dublin Core catalog record a chunk belongs to.
type Document struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Creator     string       `json:"creator"`
	Keywords    string       `json:"keywords"`
	Description string       `json:"description"`
	Publisher   string       `json:"publisher"`
	Contributor string       `json:"contributor"`
	Date        string       `json:"date"` // YYYY-MM-DD, may be empty
	Type        DocumentType `json:"type"`
	Format      string       `json:"format"`
	Identifier  string       `json:"identifier"`
	Source      string       `json:"source"`
	Language    string       `json:"language"`
	Relation    string       `json:"relation"`
	Coverage    string       `json:"coverage"`
	Rights      string       `json:"rights"`
	DOI         string       `json:"doi"`
	Abstract    string       `json:"abstract"`

	CitationCount      int    `json:"citation_count"`
	FilePath           string `json:"file_path"`
	ProcessingStatus   string `json:"processing_status"`
	ProcessingError    string `json:"processing_error,omitempty"`
	IsPrivate          bool   `json:"is_private"`
	IsMetadataComplete bool   `json:"is_metadata_complete"`

	Ctime int64 `json:"ctime"`
	Mtime int64 `json:"mtime"`
}

// User is an account allowed to upload documents and chat.
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	Ctime        int64  `json:"ctime"`
}

// Conversation groups the chat turns of one user.
type Conversation struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Title  string `json:"title"`
	Ctime  int64  `json:"ctime"`
	Mtime  int64  `json:"mtime"`
}

// ChatMessage is one turn in a conversation.
type ChatMessage struct {
	ID             int64  `json:"id"`
	ConversationID int64  `json:"conversation_id"`
	Role           string `json:"role"` // "user" or "assistant"
	Message        string `json:"message"`
	Ctime          int64  `json:"ctime"`
}

// ChatReference links an assistant message to a chunk that grounded it.
type ChatReference struct {
	ID         int64   `json:"id"`
	MessageID  int64   `json:"message_id"`
	DocumentID int64   `json:"document_id"`
	ChunkID    int64   `json:"chunk_id"`
	Score      float64 `json:"score"`
	Quote      string  `json:"quote"`
	PageNumber int     `json:"page_number,omitempty"`
}
