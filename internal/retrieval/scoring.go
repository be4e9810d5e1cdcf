package retrieval

import (
	"math"
	"strings"

	"github.com/pustaka-ai/pustaka/internal/model"
)

// CosineSimilarity computes the cosine of two embedding vectors, clamped
// to [0, 1] so downstream blending never sees a negative score. Mismatched
// or empty vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if cos < 0 {
		return 0
	}
	if cos > 1 {
		return 1
	}
	return cos
}

// semanticScore is the better of the content similarity and the
// hypothetical-question similarity. Chunks without a question embedding
// fall back to content alone.
func semanticScore(queryEmb []float32, chunk *model.Chunk) float64 {
	content := CosineSimilarity(queryEmb, chunk.Embedding)
	question := CosineSimilarity(queryEmb, chunk.QuestionEmbedding)
	return math.Max(content, question)
}

// Field weights for lexical keyword scoring. A keyword hit in the title is
// worth six times a hit in the language field.
const (
	weightTitle       = 3.0
	weightKeywords    = 2.5
	weightAbstract    = 2.0
	weightPeople      = 1.5
	weightProvenance  = 1.0
	weightIncidentals = 0.5
	weightContent     = 0.5
	maxFieldWeight    = weightTitle
)

// keywordScore measures how much of the query's keyword set appears in the
// candidate's metadata and content, weighted by field importance and
// normalized to [0, 1]. No keywords means no lexical signal.
func keywordScore(keywords []string, chunk *model.Chunk, doc *model.Document) float64 {
	if len(keywords) == 0 {
		return 0
	}
	fields := []struct {
		text   string
		weight float64
	}{
		{doc.Title, weightTitle},
		{doc.Keywords, weightKeywords},
		{doc.Abstract, weightAbstract},
		{doc.Description, weightPeople},
		{doc.Creator, weightPeople},
		{doc.Contributor, weightPeople},
		{doc.Publisher, weightProvenance},
		{doc.Source, weightProvenance},
		{doc.Relation, weightProvenance},
		{doc.Language, weightIncidentals},
		{doc.Date, weightIncidentals},
	}
	for i := range fields {
		fields[i].text = strings.ToLower(fields[i].text)
	}
	content := strings.ToLower(chunk.Content)

	var total float64
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		best := 0.0
		for _, f := range fields {
			if f.weight > best && f.text != "" && strings.Contains(f.text, kw) {
				best = f.weight
			}
		}
		if best == 0 && strings.Contains(content, kw) {
			best = weightContent
		}
		total += best
	}
	score := total / (float64(len(keywords)) * maxFieldWeight)
	if score > 1 {
		score = 1
	}
	return score
}
