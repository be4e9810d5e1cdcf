package textutil

import (
	"reflect"
	"testing"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want []string
	}{
		{
			name: "short input rejected",
			text: "padi",
			max:  7,
			want: nil,
		},
		{
			name: "all stopwords",
			text: "yang dengan untuk dalam adalah",
			max:  7,
			want: nil,
		},
		{
			name: "frequency order",
			text: "padi padi padi sawah sawah irigasi",
			max:  7,
			want: []string{"padi", "sawah", "irigasi"},
		},
		{
			name: "ties broken alphabetically",
			text: "zirkon apel zirkon apel mangga",
			max:  7,
			want: []string{"apel", "zirkon", "mangga"},
		},
		{
			name: "limit respected",
			text: "alpha beta gamma delta epsilon zeta theta iota kappa",
			max:  3,
			want: []string{"alpha", "beta", "delta"},
		},
		{
			name: "short tokens and case folding",
			text: "Produktivitas PADI di DI an ab",
			max:  7,
			want: []string{"padi", "produktivitas"},
		},
		{
			// 9 runes but 11 bytes; the length gate counts runes.
			name: "short accented input rejected",
			text: "kérétaapi",
			max:  7,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeywords(tt.text, tt.max, nil)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractKeywords() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractKeywordsDefaultLimit(t *testing.T) {
	text := "satu dua tiga empat lima enam tujuh delapan sembilan sepuluh sebelas duabelas"
	got := ExtractKeywords(text, 0, nil)
	if len(got) != DefaultMaxKeywords {
		t.Errorf("len = %d, want %d", len(got), DefaultMaxKeywords)
	}
}
