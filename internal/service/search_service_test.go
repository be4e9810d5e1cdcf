package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pustaka-ai/pustaka/internal/queryproc"
	"github.com/pustaka-ai/pustaka/internal/retrieval"
)

type failingEmbedder struct{}

func (failingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("provider down")
}

type emptySource struct{}

func (emptySource) Candidates(ctx context.Context, embedding []float32, filters []queryproc.Filter, limit int) ([]retrieval.Candidate, error) {
	return nil, nil
}

func TestSearchEmbedOutageYieldsEmptyIrrelevantResult(t *testing.T) {
	ranker := retrieval.NewRanker(failingEmbedder{}, emptySource{}, retrieval.Config{})
	svc := NewSearchService(queryproc.NewProcessor(0), ranker)

	result, err := svc.Search(context.Background(), "bagaimana produksi padi di jawa")
	require.NoError(t, err)
	require.Empty(t, result.Results)
	require.False(t, result.Relevant)
	require.Equal(t, 0.0, result.MeanScore)
}
