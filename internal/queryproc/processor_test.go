package queryproc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pustaka-ai/pustaka/internal/model"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase and trim", "  Apa Itu Fotosintesis?  ", "apa itu fotosintesis"},
		{"trailing punctuation run", "jelaskan metode penelitian!!!", "jelaskan metode penelitian"},
		{"collapse whitespace", "padi   di\tblitar", "padi di blitar"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestProcessEntities(t *testing.T) {
	p := NewProcessor(0)
	tests := []struct {
		name string
		in   string
		want model.QueryEntities
	}{
		{
			name: "year only despite author-like words",
			in:   "siapa penulis artikel tentang padi tahun 2020",
			want: model.QueryEntities{Year: 2020},
		},
		{
			name: "creator after indonesian marker",
			in:   "artikel yang ditulis oleh budi santoso tentang irigasi",
			want: model.QueryEntities{Creator: "budi santoso"},
		},
		{
			name: "publisher wins over bare oleh",
			in:   "buku yang diterbitkan oleh gramedia",
			want: model.QueryEntities{Publisher: "gramedia", DocType: model.DocumentTypeBook},
		},
		{
			name: "language name to code",
			in:   "dokumen dalam bahasa inggris tentang ekonomi",
			want: model.QueryEntities{Language: "en"},
		},
		{
			name: "location after di",
			in:   "produksi padi di blitar pada tahun 2019",
			want: model.QueryEntities{Location: "blitar", Year: 2019},
		},
		{
			name: "doc type from skripsi",
			in:   "skripsi tentang pembelajaran mesin",
			want: model.QueryEntities{DocType: model.DocumentTypeThesis},
		},
		{
			name: "doi extracted verbatim",
			in:   "cari 10.1234/jurnal.v5.678",
			want: model.QueryEntities{DOI: "10.1234/jurnal.v5.678"},
		},
		{
			name: "source after dalam jurnal",
			in:   "dipublikasikan dalam jurnal agronomi indonesia",
			want: model.QueryEntities{Source: "agronomi indonesia", DocType: model.DocumentTypeJournal},
		},
		{
			name: "nothing detected",
			in:   "bagaimana cara kerja fotosintesis",
			want: model.QueryEntities{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Process(tt.in)
			require.Equal(t, tt.want, got.Entities)
		})
	}
}

func TestProcessDeterministic(t *testing.T) {
	p := NewProcessor(0)
	raw := "Artikel tentang produktivitas padi di Blitar tahun 2020, ditulis oleh Budi Santoso."
	first := p.Process(raw)
	second := p.Process(raw)
	require.Equal(t, first, second)
}

func TestProcessKeywordsExcludeEntityValues(t *testing.T) {
	p := NewProcessor(0)
	got := p.Process("penelitian irigasi sawah oleh budi santoso tahun 2021")
	require.Equal(t, "budi santoso", got.Entities.Creator)
	require.Equal(t, 2021, got.Entities.Year)
	require.Contains(t, got.Keywords, "irigasi")
	require.NotContains(t, got.Keywords, "budi")
	require.NotContains(t, got.Keywords, "santoso")
	require.NotContains(t, got.Keywords, "2021")
}

func TestProcessEmptyQuery(t *testing.T) {
	got := NewProcessor(0).Process("   ")
	require.Equal(t, "", got.Cleaned)
	require.True(t, got.Entities.Empty())
	require.Empty(t, got.Keywords)
}

func TestExtractYearBounds(t *testing.T) {
	require.Equal(t, 0, extractYear("dokumen nomor 1850"))
	require.Equal(t, 1999, extractYear("terbit 1999"))
	require.Equal(t, 2099, extractYear("proyeksi 2099"))
	require.Equal(t, 0, extractYear("kode 21000 bukan tahun"))
}
