package model

// EmbeddingCache is a persisted embedding keyed by model, task type, and
// content hash. Rows age out via the cleanup job.
type EmbeddingCache struct {
	ModelName   string
	TaskType    string
	ContentHash string
	Embedding   []float32
	Ctime       int64
}
