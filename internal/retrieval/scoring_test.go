package retrieval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pustaka-ai/pustaka/internal/model"
)

// vecWithCos builds a unit vector whose cosine against [1,0,0] is c.
func vecWithCos(c float64) []float32 {
	return []float32{float32(c), float32(math.Sqrt(1 - c*c)), 0}
}

var queryVec = []float32{1, 0, 0}

func TestCosineSimilarity(t *testing.T) {
	require.InDelta(t, 1.0, CosineSimilarity(queryVec, queryVec), 1e-6)
	require.InDelta(t, 0.7, CosineSimilarity(queryVec, vecWithCos(0.7)), 1e-6)
	require.InDelta(t, 0.0, CosineSimilarity(queryVec, []float32{0, 1, 0}), 1e-6)
}

func TestCosineSimilarityClampsNegative(t *testing.T) {
	require.Equal(t, 0.0, CosineSimilarity(queryVec, []float32{-1, 0, 0}))
}

func TestCosineSimilarityDegenerateInputs(t *testing.T) {
	require.Equal(t, 0.0, CosineSimilarity(nil, queryVec))
	require.Equal(t, 0.0, CosineSimilarity(queryVec, []float32{1, 0}))
	require.Equal(t, 0.0, CosineSimilarity(queryVec, []float32{0, 0, 0}))
}

func TestSemanticScoreTakesBestOfContentAndQuestion(t *testing.T) {
	chunk := &model.Chunk{
		Embedding:         vecWithCos(0.3),
		QuestionEmbedding: vecWithCos(0.8),
	}
	require.InDelta(t, 0.8, semanticScore(queryVec, chunk), 1e-6)

	noQuestion := &model.Chunk{Embedding: vecWithCos(0.3)}
	require.InDelta(t, 0.3, semanticScore(queryVec, noQuestion), 1e-6)
}

func TestKeywordScore(t *testing.T) {
	doc := &model.Document{
		Title:    "Produktivitas Padi di Jawa Timur",
		Abstract: "Kajian produktivitas dan sistem irigasi sawah.",
		Creator:  "Budi Santoso",
	}
	chunk := &model.Chunk{Content: "hasil panen meningkat setelah perbaikan saluran"}

	tests := []struct {
		name     string
		keywords []string
		want     float64
	}{
		{"title hit is full weight", []string{"padi"}, 1.0},
		{"abstract hit", []string{"irigasi"}, 2.0 / 3.0},
		{"creator hit", []string{"santoso"}, 1.5 / 3.0},
		{"content fallback", []string{"panen"}, 0.5 / 3.0},
		{"absent keyword", []string{"fotosintesis"}, 0},
		{"mixed pair averages", []string{"padi", "fotosintesis"}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, keywordScore(tt.keywords, chunk, doc), 1e-9)
		})
	}
}

func TestKeywordScoreNoKeywords(t *testing.T) {
	require.Equal(t, 0.0, keywordScore(nil, &model.Chunk{}, &model.Document{}))
}
