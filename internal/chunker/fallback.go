package chunker

import (
	"strings"

	"github.com/pustaka-ai/pustaka/internal/model"
	"github.com/pustaka-ai/pustaka/internal/textutil"
)

// Fixed-window fallback parameters, in words.
const (
	FallbackWindowWords  = 500
	FallbackOverlapWords = 50
)

// FallbackChunk slices a flat fulltext into overlapping fixed-size windows.
// Used when structured extraction produced no sections. Title and abstract,
// when known, are prepended as their own chunks.
func FallbackChunk(fulltext, title, abstract string, maxKeywords int) []model.Chunk {
	var chunks []model.Chunk
	if t := strings.TrimSpace(title); t != "" {
		chunks = append(chunks, model.Chunk{
			Content:      t,
			TokenCount:   textutil.WordCount(t),
			Kind:         model.ChunkTitle,
			SectionTitle: "Title",
			PageNumber:   1,
		})
	}
	if a := strings.TrimSpace(abstract); a != "" {
		chunks = append(chunks, model.Chunk{
			Content:      a,
			TokenCount:   textutil.WordCount(a),
			Kind:         model.ChunkAbstract,
			SectionTitle: "Abstract",
			PageNumber:   1,
		})
	}

	words := strings.Fields(fulltext)
	for start := 0; start < len(words); {
		end := start + FallbackWindowWords
		if end > len(words) {
			end = len(words)
		}
		window := words[start:end]
		chunks = append(chunks, model.Chunk{
			Content:    strings.Join(window, " "),
			TokenCount: len(window),
			Kind:       model.ChunkParagraph,
			PageNumber: start/WordsPerPage + 1,
		})
		if end == len(words) {
			break
		}
		start = end - FallbackOverlapWords
	}

	for i := range chunks {
		chunks[i].Index = i
		chunks[i].Keywords = textutil.ExtractKeywords(chunks[i].Content, maxKeywords, nil)
	}
	return chunks
}
