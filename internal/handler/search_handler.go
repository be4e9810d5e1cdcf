package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pustaka-ai/pustaka/internal/model"
	"github.com/pustaka-ai/pustaka/internal/pkg/errcode"
	"github.com/pustaka-ai/pustaka/internal/pkg/response"
	"github.com/pustaka-ai/pustaka/internal/service"
)

type SearchHandler struct {
	search *service.SearchService
}

func NewSearchHandler(search *service.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

type searchRequest struct {
	Query string `json:"query"`
}

// searchHit is the wire shape of one result. Embeddings never leave the
// server, only the scores derived from them.
type searchHit struct {
	DocumentID    int64   `json:"document_id"`
	Title         string  `json:"title"`
	Creator       string  `json:"creator,omitempty"`
	Date          string  `json:"date,omitempty"`
	ChunkID       int64   `json:"chunk_id"`
	Content       string  `json:"content"`
	PageNumber    int     `json:"page_number,omitempty"`
	SemanticScore float64 `json:"semantic_score"`
	KeywordScore  float64 `json:"keyword_score"`
	HybridScore   float64 `json:"hybrid_score"`
	FilterMatched bool    `json:"filter_matched"`
}

func (h *SearchHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		response.Error(c, errcode.ErrInvalid, "query required")
		return
	}
	result, err := h.search.Search(c.Request.Context(), req.Query)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"query":      result.Query,
		"results":    toSearchHits(result.Results),
		"mean_score": result.MeanScore,
		"relevant":   result.Relevant,
	})
}

func toSearchHits(results []model.ScoredChunk) []searchHit {
	hits := make([]searchHit, 0, len(results))
	for _, sc := range results {
		hits = append(hits, searchHit{
			DocumentID:    sc.Document.ID,
			Title:         sc.Document.Title,
			Creator:       sc.Document.Creator,
			Date:          sc.Document.Date,
			ChunkID:       sc.Chunk.ID,
			Content:       sc.Chunk.Content,
			PageNumber:    sc.Chunk.PageNumber,
			SemanticScore: sc.SemanticScore,
			KeywordScore:  sc.KeywordScore,
			HybridScore:   sc.HybridScore,
			FilterMatched: sc.FilterMatched,
		})
	}
	return hits
}
