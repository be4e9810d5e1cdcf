package textutil

import (
	"reflect"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "single sentence without terminator",
			text: "padi adalah tanaman pangan utama",
			want: []string{"padi adalah tanaman pangan utama"},
		},
		{
			name: "basic boundaries",
			text: "Padi ditanam di sawah. Hasil panen meningkat! Mengapa demikian? Karena irigasi membaik.",
			want: []string{
				"Padi ditanam di sawah.",
				"Hasil panen meningkat!",
				"Mengapa demikian?",
				"Karena irigasi membaik.",
			},
		},
		{
			name: "no split before lowercase",
			text: "Sampel diukur 2.5 cm dari pangkal. Pengukuran diulang tiga kali.",
			want: []string{
				"Sampel diukur 2.5 cm dari pangkal.",
				"Pengukuran diulang tiga kali.",
			},
		},
		{
			name: "paragraph break splits without punctuation",
			text: "paragraf pertama tanpa titik\n\nParagraf kedua juga",
			want: []string{"paragraf pertama tanpa titik", "Paragraf kedua juga"},
		},
		{
			name: "punctuation run stays with sentence",
			text: "Benarkah demikian?! Ya.",
			want: []string{"Benarkah demikian?!", "Ya."},
		},
		{
			name: "accented uppercase starts a sentence",
			text: "Hasilnya baik. Étude lanjutan diperlukan.",
			want: []string{"Hasilnya baik.", "Étude lanjutan diperlukan."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSentences() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestSplitSentencesKeepsAllContent(t *testing.T) {
	text := "Pertama. Kedua kalimat lebih panjang. Ketiga!\n\nEmpat di paragraf baru."
	total := 0
	for _, s := range SplitSentences(text) {
		total += WordCount(s)
	}
	if total != WordCount(text) {
		t.Errorf("word count after split = %d, want %d", total, WordCount(text))
	}
}

func TestNormalizeSpace(t *testing.T) {
	got := NormalizeSpace("  Produktivitas\tPadi\n di  Blitar ")
	want := "produktivitas padi di blitar"
	if got != want {
		t.Errorf("NormalizeSpace() = %q, want %q", got, want)
	}
}
