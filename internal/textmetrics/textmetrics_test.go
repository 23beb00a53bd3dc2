package textmetrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Counts
	}{
		{
			name: "empty",
			text: "",
			want: Counts{},
		},
		{
			name: "single sentence",
			text: "The sky is blue.",
			want: Counts{Characters: 16, Words: 4, Sentences: 1},
		},
		{
			name: "multiple sentences and terminators",
			text: "Really?! Yes. Absolutely...",
			want: Counts{Characters: 27, Words: 3, Sentences: 3},
		},
		{
			name: "unterminated trailing sentence",
			text: "First sentence. second without a period",
			want: Counts{Characters: 39, Words: 6, Sentences: 2},
		},
		{
			name: "unicode runes counted once",
			text: "héllo wörld.",
			want: Counts{Characters: 12, Words: 2, Sentences: 1},
		},
		{
			name: "whitespace only",
			text: "  \n\t ",
			want: Counts{Characters: 5, Words: 0, Sentences: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.text))
		})
	}
}
