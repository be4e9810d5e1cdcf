package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pustaka-ai/pustaka/internal/model"
	"github.com/pustaka-ai/pustaka/internal/pkg/errcode"
	"github.com/pustaka-ai/pustaka/internal/pkg/response"
	"github.com/pustaka-ai/pustaka/internal/service"
)

type DocumentHandler struct {
	documents *service.DocumentService
}

func NewDocumentHandler(documents *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

func (h *DocumentHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "file is required")
		return
	}
	opened, err := file.Open()
	if err != nil {
		response.Error(c, errcode.ErrInvalidFile, "failed to open file")
		return
	}
	defer opened.Close()

	doc := &model.Document{
		Title:    c.PostForm("title"),
		Creator:  c.PostForm("creator"),
		Language: c.PostForm("language"),
	}
	created, err := h.documents.Upload(c.Request.Context(), doc, opened, file.Filename, file.Size)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, created)
}

func (h *DocumentHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.Query("offset"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	docs, err := h.documents.List(c.Request.Context(), offset, limit)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"documents": docs})
}

func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	doc, err := h.documents.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

func (h *DocumentHandler) Chunks(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	chunks, err := h.documents.Chunks(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"chunks": chunks})
}

type metadataRequest struct {
	Title       string `json:"title"`
	Creator     string `json:"creator"`
	Keywords    string `json:"keywords"`
	Description string `json:"description"`
	Publisher   string `json:"publisher"`
	Contributor string `json:"contributor"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Identifier  string `json:"identifier"`
	Source      string `json:"source"`
	Language    string `json:"language"`
	Relation    string `json:"relation"`
	Coverage    string `json:"coverage"`
	Rights      string `json:"rights"`
	DOI         string `json:"doi"`
	Abstract    string `json:"abstract"`
	IsPrivate   bool   `json:"is_private"`
}

func (h *DocumentHandler) UpdateMetadata(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req metadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	doc := &model.Document{
		ID:          id,
		Title:       req.Title,
		Creator:     req.Creator,
		Keywords:    req.Keywords,
		Description: req.Description,
		Publisher:   req.Publisher,
		Contributor: req.Contributor,
		Date:        req.Date,
		Type:        model.DocumentType(req.Type),
		Identifier:  req.Identifier,
		Source:      req.Source,
		Language:    req.Language,
		Relation:    req.Relation,
		Coverage:    req.Coverage,
		Rights:      req.Rights,
		DOI:         req.DOI,
		Abstract:    req.Abstract,
		IsPrivate:   req.IsPrivate,
	}
	if err := h.documents.UpdateMetadata(c.Request.Context(), doc); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *DocumentHandler) Reprocess(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.documents.Reprocess(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.documents.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
