package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/pustaka-ai/pustaka/internal/ingest"
	"github.com/pustaka-ai/pustaka/internal/model"
	"github.com/pustaka-ai/pustaka/internal/repo"
)

// DocumentIngestJob drains pending documents through the ingestion
// pipeline, one batch per tick. Per-document failures are recorded on the
// document itself and never stop the batch.
type DocumentIngestJob struct {
	docs      *repo.DocumentRepo
	pipeline  *ingest.Pipeline
	batchSize int
}

func NewDocumentIngestJob(docs *repo.DocumentRepo, pipeline *ingest.Pipeline, batchSize int) *DocumentIngestJob {
	if batchSize <= 0 {
		batchSize = 4
	}
	return &DocumentIngestJob{docs: docs, pipeline: pipeline, batchSize: batchSize}
}

func (j *DocumentIngestJob) Name() string {
	return "document_ingest"
}

func (j *DocumentIngestJob) Run(ctx context.Context) error {
	pending, err := j.docs.ListByStatus(ctx, model.ProcessingPending, j.batchSize)
	if err != nil {
		return err
	}
	for _, doc := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := j.pipeline.Process(ctx, doc); err != nil {
			logutil.GetLogger(ctx).Error("ingest document failed",
				zap.Int64("document_id", doc.ID), zap.Error(err))
		}
	}
	return nil
}
