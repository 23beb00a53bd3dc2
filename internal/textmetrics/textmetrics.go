// Package textmetrics computes the lightweight text-analysis figures
// attached to each successful comparison result.
package textmetrics

import (
	"strings"
	"unicode/utf8"
)

// Counts summarizes a generated response.
type Counts struct {
	Characters int `json:"characters"`
	Words      int `json:"words"`
	Sentences  int `json:"sentences"`
}

// Analyze counts characters (runes), whitespace-separated words, and
// sentences in text. A sentence is a run of text terminated by one or more
// of ". ! ?"; trailing unterminated text counts as a sentence.
func Analyze(text string) Counts {
	c := Counts{
		Characters: utf8.RuneCountInString(text),
		Words:      len(strings.Fields(text)),
	}

	inSentence := false
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			if inSentence {
				c.Sentences++
				inSentence = false
			}
		default:
			if !isSpace(r) {
				inSentence = true
			}
		}
	}
	if inSentence {
		c.Sentences++
	}

	return c
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
