package service

import (
	"strings"
	"testing"

	"github.com/pustaka-ai/pustaka/internal/model"
)

func TestBuildAnswerPrompt(t *testing.T) {
	results := []model.ScoredChunk{
		{
			Chunk:    &model.Chunk{Content: "Produksi padi naik 5 persen.", PageNumber: 3},
			Document: &model.Document{Title: "Laporan Pertanian"},
		},
		{
			Chunk:    &model.Chunk{Content: "Irigasi diperbaiki pada 2019."},
			Document: &model.Document{Title: "Studi Irigasi"},
		},
	}
	prompt := buildAnswerPrompt("bagaimana produksi padi?", results)

	for _, want := range []string{
		"[1] (Laporan Pertanian, hlm. 3)",
		"Produksi padi naik 5 persen.",
		"[2] (Studi Irigasi)",
		"PERTANYAAN:\nbagaimana produksi padi?",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestConversationTitle(t *testing.T) {
	short := "apa itu fotosintesis"
	if got := conversationTitle(short); got != short {
		t.Errorf("conversationTitle(%q) = %q", short, got)
	}
	long := strings.Repeat("padi ", 30)
	got := conversationTitle(long)
	if len([]rune(got)) != 63 || !strings.HasSuffix(got, "...") {
		t.Errorf("long title not truncated: %q", got)
	}
}

func TestTruncateQuote(t *testing.T) {
	short := "kutipan pendek"
	if got := truncateQuote(short); got != short {
		t.Errorf("truncateQuote(%q) = %q", short, got)
	}
	long := strings.Repeat("a", maxQuoteChars+50)
	got := truncateQuote(long)
	if len([]rune(got)) != maxQuoteChars+3 {
		t.Errorf("quote length = %d", len([]rune(got)))
	}
}

func TestMetadataComplete(t *testing.T) {
	doc := &model.Document{
		Title:   "Judul",
		Creator: "Budi",
		Date:    "2020-01-01",
		Type:    model.DocumentTypeJournal,
	}
	if !metadataComplete(doc) {
		t.Error("expected complete metadata")
	}
	doc.Title = model.PlaceholderTitle
	if metadataComplete(doc) {
		t.Error("placeholder title must not count as complete")
	}
}
