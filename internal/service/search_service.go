package service

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/pustaka-ai/pustaka/internal/model"
	"github.com/pustaka-ai/pustaka/internal/queryproc"
	"github.com/pustaka-ai/pustaka/internal/retrieval"
)

// SearchResult carries the ranked chunks plus the derived query signals,
// so callers can show why a result matched.
type SearchResult struct {
	Query     model.ProcessedQuery `json:"query"`
	Results   []model.ScoredChunk  `json:"results"`
	MeanScore float64              `json:"mean_score"`
	Relevant  bool                 `json:"relevant"`
}

type SearchService struct {
	processor *queryproc.Processor
	ranker    *retrieval.Ranker
}

func NewSearchService(processor *queryproc.Processor, ranker *retrieval.Ranker) *SearchService {
	return &SearchService{processor: processor, ranker: ranker}
}

// Search runs the full retrieval pass: query processing, filter building,
// ranking, and relevance validation.
func (s *SearchService) Search(ctx context.Context, rawQuery string) (*SearchResult, error) {
	processed := s.processor.Process(rawQuery)
	if processed.Cleaned == "" {
		return &SearchResult{Query: processed}, nil
	}
	filters := queryproc.BuildFilters(processed.Entities)
	results, err := s.ranker.Retrieve(ctx, processed, filters)
	if err != nil {
		return nil, err
	}
	mean := retrieval.MeanScore(results)
	logutil.GetLogger(ctx).Debug("search done",
		zap.String("query", processed.Cleaned),
		zap.Int("results", len(results)),
		zap.Float64("mean_score", mean))
	return &SearchResult{
		Query:     processed,
		Results:   results,
		MeanScore: mean,
		Relevant:  retrieval.Validate(results),
	}, nil
}
