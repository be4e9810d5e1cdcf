package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pustaka-ai/pustaka/internal/chunker"
	"github.com/pustaka-ai/pustaka/internal/extract"
	"github.com/pustaka-ai/pustaka/internal/model"
	appErr "github.com/pustaka-ai/pustaka/internal/pkg/errors"
)

type fakeExtractor struct {
	result *extract.Result
	err    error
}

func (f *fakeExtractor) Extract(ctx context.Context, r io.Reader, filename string) (*extract.Result, error) {
	return f.result, f.err
}

type fakeEmbedder struct {
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []float32{1, 0, 0}, nil
}

func (f *fakeEmbedder) ModelName() string { return "fake" }

type fakeQuestions struct{}

func (f *fakeQuestions) GenerateQuestions(ctx context.Context, chunkText string, maxQuestions int) ([]string, error) {
	return []string{"Apa isi teks ini?"}, nil
}

type fakeDocStore struct {
	statuses []string
	metadata *model.Document
}

func (f *fakeDocStore) UpdateMetadata(ctx context.Context, doc *model.Document) error {
	f.metadata = doc
	return nil
}

func (f *fakeDocStore) UpdateProcessing(ctx context.Context, id int64, status, processingError string, mtime int64) error {
	f.statuses = append(f.statuses, status)
	return nil
}

type fakeChunkStore struct {
	chunks []model.Chunk
}

func (f *fakeChunkStore) ReplaceForDocument(ctx context.Context, documentID int64, chunks []model.Chunk) error {
	f.chunks = chunks
	return nil
}

type fakeOpener struct{}

func (f *fakeOpener) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("raw file bytes")), nil
}

func words(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("kata%d", i)
	}
	return strings.Join(out, " ")
}

func newTestPipeline(extractor extract.SectionSource, embedder *fakeEmbedder, docs *fakeDocStore, chunks *fakeChunkStore) *Pipeline {
	return NewPipeline(PipelineConfig{
		Extractors: map[string]extract.SectionSource{".pdf": extractor},
		Chunker:    chunker.NewSmartChunker(chunker.Config{}),
		Embedder:   embedder,
		Questions:  &fakeQuestions{},
		Documents:  docs,
		Chunks:     chunks,
		Files:      &fakeOpener{},
	})
}

func TestProcessHappyPath(t *testing.T) {
	extractor := &fakeExtractor{result: &extract.Result{
		Metadata: extract.Metadata{Title: "Produktivitas Padi", Creator: "Budi Santoso"},
		Abstract: "Ringkasan.",
		Sections: []model.Section{
			{Type: model.SectionBody, Title: "Hasil", Paragraphs: []string{words(150)}},
		},
	}}
	embedder := &fakeEmbedder{}
	docs := &fakeDocStore{}
	chunks := &fakeChunkStore{}
	p := newTestPipeline(extractor, embedder, docs, chunks)

	doc := &model.Document{ID: 7, FilePath: "paper.pdf"}
	require.NoError(t, p.Process(context.Background(), doc))

	require.Equal(t, []string{model.ProcessingRunning, model.ProcessingCompleted}, docs.statuses)
	require.Equal(t, "Produktivitas Padi", doc.Title)
	require.Equal(t, "Budi Santoso", doc.Creator)
	require.Equal(t, "Ringkasan.", doc.Abstract)
	require.Len(t, chunks.chunks, 1)
	require.NotNil(t, chunks.chunks[0].Embedding)
	require.Equal(t, []string{"Apa isi teks ini?"}, chunks.chunks[0].Questions)
	require.NotNil(t, chunks.chunks[0].QuestionEmbedding)
}

func TestProcessEmbedFailureKeepsChunk(t *testing.T) {
	extractor := &fakeExtractor{result: &extract.Result{
		Sections: []model.Section{
			{Type: model.SectionBody, Paragraphs: []string{words(150)}},
		},
	}}
	embedder := &fakeEmbedder{err: errors.New("provider down")}
	docs := &fakeDocStore{}
	chunks := &fakeChunkStore{}
	p := newTestPipeline(extractor, embedder, docs, chunks)

	doc := &model.Document{ID: 7, FilePath: "paper.pdf"}
	require.NoError(t, p.Process(context.Background(), doc))

	require.Equal(t, []string{model.ProcessingRunning, model.ProcessingCompleted}, docs.statuses)
	require.Len(t, chunks.chunks, 1)
	require.Nil(t, chunks.chunks[0].Embedding)
	require.Equal(t, model.PlaceholderTitle, doc.Title)
}

func TestProcessUnsupportedFormat(t *testing.T) {
	docs := &fakeDocStore{}
	p := newTestPipeline(&fakeExtractor{}, &fakeEmbedder{}, docs, &fakeChunkStore{})

	doc := &model.Document{ID: 7, FilePath: "scan.xyz"}
	err := p.Process(context.Background(), doc)
	require.ErrorIs(t, err, appErr.ErrUnsupportedFormat)
	require.Equal(t, []string{model.ProcessingRunning, model.ProcessingFailed}, docs.statuses)
}

func TestProcessFallbackToWindows(t *testing.T) {
	extractor := &fakeExtractor{result: &extract.Result{
		Fulltext: words(600),
	}}
	docs := &fakeDocStore{}
	chunks := &fakeChunkStore{}
	p := newTestPipeline(extractor, &fakeEmbedder{}, docs, chunks)

	doc := &model.Document{ID: 7, FilePath: "paper.pdf", Title: "Judul Asli"}
	require.NoError(t, p.Process(context.Background(), doc))

	require.NotEmpty(t, chunks.chunks)
	require.Equal(t, model.ChunkTitle, chunks.chunks[0].Kind)
	require.Equal(t, "Judul Asli", chunks.chunks[0].Content)
}

func TestProcessEmptyDocument(t *testing.T) {
	extractor := &fakeExtractor{result: &extract.Result{}}
	docs := &fakeDocStore{}
	p := newTestPipeline(extractor, &fakeEmbedder{}, docs, &fakeChunkStore{})

	doc := &model.Document{ID: 7, FilePath: "paper.pdf"}
	err := p.Process(context.Background(), doc)
	require.ErrorIs(t, err, appErr.ErrEmptyDocument)
	require.Equal(t, []string{model.ProcessingRunning, model.ProcessingFailed}, docs.statuses)
}
