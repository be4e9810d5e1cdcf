package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/pustaka-ai/pustaka/internal/filestore"
	"github.com/pustaka-ai/pustaka/internal/model"
	appErr "github.com/pustaka-ai/pustaka/internal/pkg/errors"
	"github.com/pustaka-ai/pustaka/internal/repo"
)

var allowedUploadExts = map[string]bool{
	".pdf": true,
	".md":  true,
}

type DocumentService struct {
	docs   *repo.DocumentRepo
	chunks *repo.ChunkRepo
	store  filestore.Store
}

func NewDocumentService(docs *repo.DocumentRepo, chunks *repo.ChunkRepo, store filestore.Store) *DocumentService {
	return &DocumentService{docs: docs, chunks: chunks, store: store}
}

// Upload stores the file and registers a pending catalog entry; the
// ingestion job picks it up asynchronously.
func (s *DocumentService) Upload(ctx context.Context, doc *model.Document, file filestore.ReadSeekCloser, filename string, size int64) (*model.Document, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedUploadExts[ext] {
		return nil, appErr.ErrUnsupportedFormat
	}
	now := time.Now().Unix()
	key := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	if err := s.store.Save(ctx, key, file, size); err != nil {
		return nil, err
	}
	doc.FilePath = key
	doc.Format = strings.TrimPrefix(ext, ".")
	doc.ProcessingStatus = model.ProcessingPending
	doc.Ctime = now
	doc.Mtime = now
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("document uploaded",
		zap.Int64("document_id", doc.ID), zap.String("key", key))
	return doc, nil
}

func (s *DocumentService) Get(ctx context.Context, id int64) (*model.Document, error) {
	return s.docs.GetByID(ctx, id)
}

func (s *DocumentService) List(ctx context.Context, offset, limit int) ([]*model.Document, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.docs.List(ctx, offset, limit)
}

func (s *DocumentService) Chunks(ctx context.Context, documentID int64) ([]model.Chunk, error) {
	if _, err := s.docs.GetByID(ctx, documentID); err != nil {
		return nil, err
	}
	return s.chunks.ListByDocument(ctx, documentID)
}

// UpdateMetadata lets librarians fix catalog fields after ingestion.
func (s *DocumentService) UpdateMetadata(ctx context.Context, doc *model.Document) error {
	if _, err := s.docs.GetByID(ctx, doc.ID); err != nil {
		return err
	}
	doc.Mtime = time.Now().Unix()
	doc.IsMetadataComplete = metadataComplete(doc)
	return s.docs.UpdateMetadata(ctx, doc)
}

// Reprocess queues a document for a fresh ingestion run.
func (s *DocumentService) Reprocess(ctx context.Context, id int64) error {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc.ProcessingStatus == model.ProcessingRunning {
		return appErr.ErrStillProcessing
	}
	return s.docs.UpdateProcessing(ctx, id, model.ProcessingPending, "", time.Now().Unix())
}

func (s *DocumentService) Delete(ctx context.Context, id int64) error {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.chunks.DeleteByDocument(ctx, id); err != nil {
		return err
	}
	if err := s.docs.Delete(ctx, id); err != nil {
		return err
	}
	if doc.FilePath != "" {
		if err := s.store.Delete(ctx, doc.FilePath); err != nil {
			logutil.GetLogger(ctx).Warn("failed to delete stored file",
				zap.String("key", doc.FilePath), zap.Error(err))
		}
	}
	return nil
}

func metadataComplete(doc *model.Document) bool {
	return doc.Title != "" && doc.Title != model.PlaceholderTitle &&
		doc.Creator != "" && doc.Date != "" && doc.Type != ""
}
