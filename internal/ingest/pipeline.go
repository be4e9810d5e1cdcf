package ingest

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/pustaka-ai/pustaka/internal/ai"
	"github.com/pustaka-ai/pustaka/internal/chunker"
	"github.com/pustaka-ai/pustaka/internal/extract"
	"github.com/pustaka-ai/pustaka/internal/model"
	appErr "github.com/pustaka-ai/pustaka/internal/pkg/errors"
)

// Embedding task types, matching the provider API vocabulary.
const (
	taskTypeDocument = "RETRIEVAL_DOCUMENT"
	taskTypeQuery    = "RETRIEVAL_QUERY"
)

// QuestionGenerator produces hypothetical questions for a chunk.
// *ai.Manager satisfies it.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, chunkText string, maxQuestions int) ([]string, error)
}

type DocumentStore interface {
	UpdateMetadata(ctx context.Context, doc *model.Document) error
	UpdateProcessing(ctx context.Context, id int64, status, processingError string, mtime int64) error
}

type ChunkStore interface {
	ReplaceForDocument(ctx context.Context, documentID int64, chunks []model.Chunk) error
}

type FileOpener interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

type PipelineConfig struct {
	// Extractors keyed by lower-case file extension including the dot.
	Extractors map[string]extract.SectionSource
	Chunker    *chunker.SmartChunker
	Embedder   ai.IEmbedder
	Questions  QuestionGenerator
	Documents  DocumentStore
	Chunks     ChunkStore
	Files      FileOpener

	QuestionCount int
	MaxKeywords   int
}

// Pipeline runs the full ingestion of one uploaded document: extract,
// chunk, generate questions, embed, persist. Question generation and
// embedding are best-effort; extraction and persistence are not.
type Pipeline struct {
	c PipelineConfig
}

func NewPipeline(c PipelineConfig) *Pipeline {
	if c.QuestionCount <= 0 {
		c.QuestionCount = 3
	}
	return &Pipeline{c: c}
}

func (p *Pipeline) Process(ctx context.Context, doc *model.Document) error {
	logger := logutil.GetLogger(ctx).With(zap.Int64("document_id", doc.ID))
	now := time.Now().Unix()
	if err := p.c.Documents.UpdateProcessing(ctx, doc.ID, model.ProcessingRunning, "", now); err != nil {
		return err
	}
	if err := p.process(ctx, doc); err != nil {
		logger.Error("document processing failed", zap.Error(err))
		if ferr := p.c.Documents.UpdateProcessing(ctx, doc.ID, model.ProcessingFailed, err.Error(), time.Now().Unix()); ferr != nil {
			logger.Error("failed to record processing failure", zap.Error(ferr))
		}
		return err
	}
	if err := p.c.Documents.UpdateProcessing(ctx, doc.ID, model.ProcessingCompleted, "", time.Now().Unix()); err != nil {
		return err
	}
	logger.Info("document processing done")
	return nil
}

func (p *Pipeline) process(ctx context.Context, doc *model.Document) error {
	logger := logutil.GetLogger(ctx).With(zap.Int64("document_id", doc.ID))

	ext := strings.ToLower(filepath.Ext(doc.FilePath))
	extractor := p.c.Extractors[ext]
	if extractor == nil {
		return appErr.ErrUnsupportedFormat
	}
	file, err := p.c.Files.Open(ctx, doc.FilePath)
	if err != nil {
		return err
	}
	defer file.Close()

	result, err := extractor.Extract(ctx, file, doc.FilePath)
	if err != nil {
		return err
	}
	mergeMetadata(doc, result)

	chunks := p.c.Chunker.Chunk(ctx, result.Sections, result.Pages)
	if len(chunks) == 0 {
		logger.Warn("no structured sections, using fixed-window fallback")
		title := doc.Title
		if title == model.PlaceholderTitle {
			title = ""
		}
		chunks = chunker.FallbackChunk(result.Fulltext, title, doc.Abstract, p.c.MaxKeywords)
	}
	if len(chunks) == 0 {
		return appErr.ErrEmptyDocument
	}

	now := time.Now().Unix()
	embedded := 0
	for i := range chunks {
		ch := &chunks[i]
		ch.Ctime = now
		if p.c.Embedder == nil {
			continue
		}
		p.enrichQuestions(ctx, ch)
		emb, err := p.c.Embedder.Embed(ctx, ch.Content, taskTypeDocument)
		if err != nil {
			// A chunk without an embedding is stored but stays out of
			// retrieval until reprocessing.
			logger.Warn("failed to embed chunk", zap.Int("index", ch.Index), zap.Error(err))
			continue
		}
		ch.Embedding = emb
		embedded++
	}

	if err := p.c.Chunks.ReplaceForDocument(ctx, doc.ID, chunks); err != nil {
		return err
	}
	doc.Mtime = time.Now().Unix()
	if err := p.c.Documents.UpdateMetadata(ctx, doc); err != nil {
		return err
	}
	logger.Info("chunks persisted",
		zap.Int("total", len(chunks)), zap.Int("embedded", embedded))
	return nil
}

func (p *Pipeline) enrichQuestions(ctx context.Context, ch *model.Chunk) {
	if p.c.Questions == nil {
		return
	}
	if ch.Kind != model.ChunkParagraph && ch.Kind != model.ChunkAbstract {
		return
	}
	questions, err := p.c.Questions.GenerateQuestions(ctx, ch.Content, p.c.QuestionCount)
	if err != nil {
		logutil.GetLogger(ctx).Debug("question generation skipped",
			zap.Int("index", ch.Index), zap.Error(err))
		return
	}
	ch.Questions = questions
	emb, err := p.c.Embedder.Embed(ctx, strings.Join(questions, "\n"), taskTypeQuery)
	if err != nil {
		logutil.GetLogger(ctx).Debug("question embedding skipped",
			zap.Int("index", ch.Index), zap.Error(err))
		return
	}
	ch.QuestionEmbedding = emb
}

// mergeMetadata fills catalog fields the upload left empty with what the
// extractor recovered. Explicit upload metadata always wins.
func mergeMetadata(doc *model.Document, result *extract.Result) {
	if doc.Title == "" || doc.Title == model.PlaceholderTitle {
		doc.Title = result.Metadata.Title
	}
	if doc.Creator == "" {
		doc.Creator = result.Metadata.Creator
	}
	if doc.Publisher == "" {
		doc.Publisher = result.Metadata.Publisher
	}
	if doc.Date == "" {
		doc.Date = result.Metadata.Date
	}
	if doc.DOI == "" {
		doc.DOI = result.Metadata.DOI
	}
	if doc.Language == "" {
		doc.Language = result.Metadata.Language
	}
	if doc.Abstract == "" {
		doc.Abstract = result.Abstract
	}
	if doc.Title == "" {
		doc.Title = model.PlaceholderTitle
	}
}
