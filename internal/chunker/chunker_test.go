package chunker

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pustaka-ai/pustaka/internal/model"
	"github.com/pustaka-ai/pustaka/internal/textutil"
)

// sentencesOfWords builds a paragraph of n sentences with wordsEach words,
// every sentence starting uppercase so the splitter finds the boundaries.
func sentencesOfWords(n, wordsEach int) string {
	var sentences []string
	for i := 0; i < n; i++ {
		words := make([]string, wordsEach)
		words[0] = fmt.Sprintf("Kalimat%d", i)
		for j := 1; j < wordsEach; j++ {
			words[j] = fmt.Sprintf("kata%d", j)
		}
		sentences = append(sentences, strings.Join(words, " ")+".")
	}
	return strings.Join(sentences, " ")
}

func wordsOf(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("kata%d", i)
	}
	return strings.Join(words, " ")
}

func TestChunkMergesSmallParagraphsAndSplitsLarge(t *testing.T) {
	// 20 + 30 word paragraphs merge; the 900-word paragraph splits in two
	// at sentence boundaries.
	sections := []model.Section{{
		Type:  model.SectionBody,
		Title: "Hasil",
		Paragraphs: []string{
			wordsOf(20),
			wordsOf(30),
			sentencesOfWords(30, 30), // 900 words
		},
	}}
	chunks := NewSmartChunker(Config{}).Chunk(context.Background(), sections, nil)
	require.Len(t, chunks, 3)
	require.Equal(t, 50, chunks[0].TokenCount)
	require.LessOrEqual(t, chunks[1].TokenCount, DefaultMaxChunkWords)
	require.LessOrEqual(t, chunks[2].TokenCount, DefaultMaxChunkWords)
	require.Equal(t, 900, chunks[1].TokenCount+chunks[2].TokenCount)
	for _, ch := range chunks {
		require.Equal(t, "Hasil", ch.SectionTitle)
		require.Equal(t, model.ChunkParagraph, ch.Kind)
	}
}

func TestChunkNoContentLoss(t *testing.T) {
	sections := []model.Section{
		{Type: model.SectionTitle, Paragraphs: []string{"Produktivitas Padi di Blitar"}},
		{Type: model.SectionAbstract, Title: "Abstract", Paragraphs: []string{wordsOf(120)}},
		{Type: model.SectionBody, Title: "Metode", Paragraphs: []string{wordsOf(40), wordsOf(300), sentencesOfWords(40, 25)}},
		{Type: model.SectionRefs, Title: "Daftar Pustaka", Paragraphs: []string{wordsOf(60)}},
	}
	var inputWords int
	for _, s := range sections {
		for _, p := range s.Paragraphs {
			inputWords += textutil.WordCount(p)
		}
	}
	chunks := NewSmartChunker(Config{}).Chunk(context.Background(), sections, nil)
	var outputWords int
	for _, ch := range chunks {
		require.NotEmpty(t, strings.TrimSpace(ch.Content))
		outputWords += textutil.WordCount(ch.Content)
	}
	require.Equal(t, inputWords, outputWords)

	// Every input paragraph's normalized text survives inside some chunk
	// or across the split pieces; spot-check the small ones.
	joined := textutil.NormalizeSpace(strings.Join(collectContents(chunks), " "))
	for _, p := range []string{sections[0].Paragraphs[0], sections[1].Paragraphs[0]} {
		require.Contains(t, joined, textutil.NormalizeSpace(p))
	}
}

func collectContents(chunks []model.Chunk) []string {
	out := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		out = append(out, ch.Content)
	}
	return out
}

func TestChunkIndexContiguity(t *testing.T) {
	sections := []model.Section{
		{Type: model.SectionBody, Title: "A", Paragraphs: []string{wordsOf(90), wordsOf(90)}},
		{Type: model.SectionBody, Title: "B", Paragraphs: []string{sentencesOfWords(35, 30)}},
	}
	chunks := NewSmartChunker(Config{}).Chunk(context.Background(), sections, nil)
	require.NotEmpty(t, chunks)
	for i, ch := range chunks {
		require.Equal(t, i, ch.Index)
	}
}

func TestChunkKindsFollowSectionTypes(t *testing.T) {
	sections := []model.Section{
		{Type: model.SectionTitle, Paragraphs: []string{"Judul Artikel Ilmiah"}},
		{Type: model.SectionAbstract, Paragraphs: []string{wordsOf(100)}},
		{Type: model.SectionBody, Paragraphs: []string{wordsOf(100)}},
		{Type: model.SectionRefs, Paragraphs: []string{wordsOf(50)}},
	}
	chunks := NewSmartChunker(Config{}).Chunk(context.Background(), sections, nil)
	require.Len(t, chunks, 4)
	require.Equal(t, model.ChunkTitle, chunks[0].Kind)
	require.Equal(t, model.ChunkAbstract, chunks[1].Kind)
	require.Equal(t, model.ChunkParagraph, chunks[2].Kind)
	require.Equal(t, model.ChunkReference, chunks[3].Kind)
}

func TestChunkRawOnlySectionAndEmptyParagraphs(t *testing.T) {
	sections := []model.Section{
		{Type: model.SectionBody, Title: "Pendahuluan", Raw: wordsOf(150)},
		{Type: model.SectionBody, Title: "Kosong", Paragraphs: []string{"", "   "}},
	}
	chunks := NewSmartChunker(Config{}).Chunk(context.Background(), sections, nil)
	require.Len(t, chunks, 1)
	require.Equal(t, "Pendahuluan", chunks[0].SectionTitle)
	require.Equal(t, 150, chunks[0].TokenCount)
}

func TestChunkEmptySectionsSignalFallback(t *testing.T) {
	require.Nil(t, NewSmartChunker(Config{}).Chunk(context.Background(), nil, nil))
	require.Nil(t, NewSmartChunker(Config{}).Chunk(context.Background(), []model.Section{
		{Type: model.SectionBody, Paragraphs: []string{"  "}},
	}, nil))
}

func TestChunkPageResolution(t *testing.T) {
	para1 := wordsOf(120)
	para2 := "Pembahasan lanjutan mengenai hasil panen padi di wilayah Blitar " + wordsOf(100)
	sections := []model.Section{
		{Type: model.SectionBody, Title: "Hasil", Paragraphs: []string{para1}},
		{Type: model.SectionBody, Title: "Pembahasan", Paragraphs: []string{para2}},
	}
	pages := []model.Page{
		{Number: 1, Text: para1},
		{Number: 2, Text: para2},
	}
	chunks := NewSmartChunker(Config{}).Chunk(context.Background(), sections, pages)
	require.Len(t, chunks, 2)
	require.Equal(t, 1, chunks[0].PageNumber)
	require.Equal(t, 2, chunks[1].PageNumber)
}

func TestChunkProvisionalPageEstimate(t *testing.T) {
	// Without pages the estimate comes from word position: the second
	// chunk starts after 600 words, so page 2.
	sections := []model.Section{
		{Type: model.SectionBody, Title: "A", Paragraphs: []string{wordsOf(600)}},
		{Type: model.SectionBody, Title: "B", Paragraphs: []string{wordsOf(100)}},
	}
	chunks := NewSmartChunker(Config{}).Chunk(context.Background(), sections, nil)
	require.Len(t, chunks, 2)
	require.Equal(t, 1, chunks[0].PageNumber)
	require.Equal(t, 2, chunks[1].PageNumber)
}

func TestChunkKeywordsAttached(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("produktivitas padi meningkat karena irigasi ", 30))
	sections := []model.Section{{Type: model.SectionBody, Paragraphs: []string{text}}}
	chunks := NewSmartChunker(Config{}).Chunk(context.Background(), sections, nil)
	require.Len(t, chunks, 1)
	require.Contains(t, chunks[0].Keywords, "padi")
	require.Contains(t, chunks[0].Keywords, "produktivitas")
}

func TestFallbackChunkWindows(t *testing.T) {
	fulltext := wordsOf(1200)
	chunks := FallbackChunk(fulltext, "Judul Dokumen", "Ringkasan singkat dokumen ini", 7)
	require.Equal(t, model.ChunkTitle, chunks[0].Kind)
	require.Equal(t, model.ChunkAbstract, chunks[1].Kind)
	body := chunks[2:]
	require.Len(t, body, 3)
	require.Equal(t, FallbackWindowWords, body[0].TokenCount)
	require.Equal(t, FallbackWindowWords, body[1].TokenCount)
	for i, ch := range chunks {
		require.Equal(t, i, ch.Index)
	}
}

func TestFallbackChunkEmptyText(t *testing.T) {
	require.Nil(t, FallbackChunk("", "", "", 7))
}
