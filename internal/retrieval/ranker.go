package retrieval

import (
	"context"
	"sort"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/pustaka-ai/pustaka/internal/model"
	"github.com/pustaka-ai/pustaka/internal/queryproc"
)

// Ranking defaults. Scores are on [0, 1]; candidates below the threshold
// never reach the caller.
const (
	DefaultThreshold      = 0.55
	DefaultLimit          = 5
	DefaultMaxPerDocument = 10
	DefaultPoolSize       = 50
	FilterBoost           = 1.10
)

// Embedder turns query text into an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Candidate pairs a chunk with its parent document for scoring.
type Candidate struct {
	Chunk    *model.Chunk
	Document *model.Document
}

// CandidateSource fetches the nearest candidate chunks to an embedding,
// optionally narrowed by metadata filters. Implementations must only
// return chunks with a non-nil embedding.
type CandidateSource interface {
	Candidates(ctx context.Context, embedding []float32, filters []queryproc.Filter, limit int) ([]Candidate, error)
}

// Config tunes the ranker. Zero values fall back to the defaults above;
// KeywordWeight stays 0 unless set, which makes ranking purely semantic.
type Config struct {
	Threshold      float64
	Limit          int
	MaxPerDocument int
	PoolSize       int
	KeywordWeight  float64
}

func (c *Config) fill() {
	if c.Threshold <= 0 {
		c.Threshold = DefaultThreshold
	}
	if c.Limit <= 0 {
		c.Limit = DefaultLimit
	}
	if c.MaxPerDocument <= 0 {
		c.MaxPerDocument = DefaultMaxPerDocument
	}
	if c.PoolSize <= 0 {
		c.PoolSize = DefaultPoolSize
	}
}

// Ranker scores and orders candidate chunks for a processed query.
type Ranker struct {
	embedder Embedder
	source   CandidateSource
	c        Config
}

func NewRanker(embedder Embedder, source CandidateSource, c Config) *Ranker {
	c.fill()
	return &Ranker{embedder: embedder, source: source, c: c}
}

// Retrieve embeds the cleaned query, fetches a candidate pool, scores it,
// and returns at most Limit results ordered by hybrid score descending.
// Filters are advisory: when the filtered pool holds fewer than two
// candidates the fetch is retried without them, and surviving filters act
// only as a score boost. An embedding outage is not an error: it yields an
// empty result set, which the relevance validator then rejects.
func (r *Ranker) Retrieve(ctx context.Context, query model.ProcessedQuery, filters []queryproc.Filter) ([]model.ScoredChunk, error) {
	logger := logutil.GetLogger(ctx).With(zap.String("query", query.Cleaned))
	queryEmb, err := r.embedder.Embed(ctx, query.Cleaned)
	if err != nil {
		logger.Error("failed to embed query, returning empty context", zap.Error(err))
		return nil, nil
	}

	candidates, err := r.source.Candidates(ctx, queryEmb, filters, r.c.PoolSize)
	if err != nil {
		logger.Error("failed to fetch candidates", zap.Error(err))
		return nil, err
	}
	if len(candidates) < 2 && len(filters) > 0 {
		logger.Debug("filtered pool too small, refetching unfiltered",
			zap.Int("filtered_count", len(candidates)))
		candidates, err = r.source.Candidates(ctx, queryEmb, nil, r.c.PoolSize)
		if err != nil {
			logger.Error("failed to refetch candidates", zap.Error(err))
			return nil, err
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	scored := make([]model.ScoredChunk, 0, len(candidates))
	for _, cand := range candidates {
		scored = append(scored, r.score(queryEmb, query.Keywords, filters, cand))
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].HybridScore > scored[j].HybridScore
	})

	results := make([]model.ScoredChunk, 0, r.c.Limit)
	perDoc := make(map[int64]int)
	for _, sc := range scored {
		if sc.HybridScore < r.c.Threshold {
			break
		}
		if perDoc[sc.Chunk.DocumentID] >= r.c.MaxPerDocument {
			continue
		}
		perDoc[sc.Chunk.DocumentID]++
		results = append(results, sc)
		if len(results) >= r.c.Limit {
			break
		}
	}
	logger.Debug("retrieval done",
		zap.Int("candidates", len(candidates)), zap.Int("results", len(results)))
	return results, nil
}

func (r *Ranker) score(queryEmb []float32, keywords []string, filters []queryproc.Filter, cand Candidate) model.ScoredChunk {
	semantic := semanticScore(queryEmb, cand.Chunk)
	lexical := keywordScore(keywords, cand.Chunk, cand.Document)
	hybrid := (1-r.c.KeywordWeight)*semantic + r.c.KeywordWeight*lexical

	matched := queryproc.MatchAll(filters, cand.Document)
	if matched {
		hybrid *= FilterBoost
		if hybrid > 1 {
			hybrid = 1
		}
	}
	return model.ScoredChunk{
		Chunk:         cand.Chunk,
		Document:      cand.Document,
		SemanticScore: semantic,
		KeywordScore:  lexical,
		HybridScore:   hybrid,
		FilterMatched: matched,
	}
}
