package retrieval

import "github.com/pustaka-ai/pustaka/internal/model"

// RelevanceFloor is the minimum mean hybrid score a result set must reach
// to be considered grounded enough for answer generation.
const RelevanceFloor = 0.5

// MeanScore is the arithmetic mean of the hybrid scores, 0 for an empty
// set.
func MeanScore(results []model.ScoredChunk) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, sc := range results {
		sum += sc.HybridScore
	}
	return sum / float64(len(results))
}

// Validate reports whether the result set clears the relevance floor. An
// empty set never does, so callers fall back to an "insufficient context"
// answer instead of hallucinating one.
func Validate(results []model.ScoredChunk) bool {
	return MeanScore(results) >= RelevanceFloor
}
