package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseQuestions(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		max     int
		want    []string
		wantErr bool
	}{
		{
			name:   "plain json array",
			output: `["Apa itu fotosintesis?", "Bagaimana prosesnya?"]`,
			max:    5,
			want:   []string{"Apa itu fotosintesis?", "Bagaimana prosesnya?"},
		},
		{
			name: "fenced json block",
			output: "```json\n[\"Apa dampak irigasi?\"]\n```",
			max:  5,
			want: []string{"Apa dampak irigasi?"},
		},
		{
			name:   "prose around the array",
			output: `Berikut pertanyaannya: ["Siapa penulisnya?"] Semoga membantu.`,
			max:    5,
			want:   []string{"Siapa penulisnya?"},
		},
		{
			name:   "duplicates and blanks dropped",
			output: `["Apa itu padi?", "apa itu padi?", "  ", "Kapan panen?"]`,
			max:    5,
			want:   []string{"Apa itu padi?", "Kapan panen?"},
		},
		{
			name:   "truncated to max",
			output: `["a?", "b?", "c?", "d?"]`,
			max:    2,
			want:   []string{"a?", "b?"},
		},
		{
			name:    "not json",
			output:  "maaf, saya tidak bisa",
			max:     5,
			wantErr: true,
		},
		{
			name:    "empty array",
			output:  "[]",
			max:     5,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseQuestions(tt.output, tt.max)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
