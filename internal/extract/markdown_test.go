package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pustaka-ai/pustaka/internal/model"
)

const sampleMarkdown = `# Laporan Produksi Padi

## Abstrak

Ringkasan singkat laporan ini.

## Metode

Survei dilakukan di tiga desa.

### Pengumpulan Data

Data dikumpulkan selama enam bulan.

## Daftar Pustaka

Santoso, B. 2020. Irigasi dan Produksi Beras.
`

func TestMarkdownExtract(t *testing.T) {
	result, err := NewMarkdownExtractor().Extract(context.Background(), strings.NewReader(sampleMarkdown), "laporan.md")
	require.NoError(t, err)

	require.Equal(t, "Laporan Produksi Padi", result.Metadata.Title)
	require.Equal(t, "Ringkasan singkat laporan ini.", result.Abstract)

	require.Len(t, result.Sections, 4)
	require.Equal(t, model.SectionTitle, result.Sections[0].Type)
	require.Equal(t, model.SectionAbstract, result.Sections[1].Type)

	metode := result.Sections[2]
	require.Equal(t, model.SectionBody, metode.Type)
	require.Equal(t, "Metode", metode.Title)
	// The H3 heading and its paragraph stay inside the Metode section.
	require.Contains(t, metode.Paragraphs, "Pengumpulan Data")
	require.Contains(t, metode.Paragraphs, "Data dikumpulkan selama enam bulan.")

	refs := result.Sections[3]
	require.Equal(t, model.SectionRefs, refs.Type)
	require.Len(t, refs.Paragraphs, 1)
}

func TestMarkdownExtractNoHeadings(t *testing.T) {
	result, err := NewMarkdownExtractor().Extract(context.Background(), strings.NewReader("Hanya satu paragraf polos."), "catatan.md")
	require.NoError(t, err)
	require.Empty(t, result.Metadata.Title)
	require.Len(t, result.Sections, 1)
	require.Equal(t, model.SectionBody, result.Sections[0].Type)
}

func TestMarkdownExtractEmpty(t *testing.T) {
	result, err := NewMarkdownExtractor().Extract(context.Background(), strings.NewReader(""), "kosong.md")
	require.NoError(t, err)
	require.Empty(t, result.Sections)
	require.Empty(t, result.Fulltext)
}
