package tools

import (
	"strings"
	"unicode"

	"adalyze/internal/analysis"
)

// splitSentences breaks text on terminal punctuation, dropping empties.
func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	sentences := parts[:0]
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			sentences = append(sentences, strings.TrimSpace(part))
		}
	}
	return sentences
}

// splitWords returns the words of text with surrounding punctuation
// stripped and lowercased.
func splitWords(text string) []string {
	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))
	for _, field := range fields {
		word := strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if word != "" {
			words = append(words, strings.ToLower(word))
		}
	}
	return words
}

// clampScore bounds a raw score to the 0-100 scale at one-decimal
// precision.
func clampScore(score float64) float64 {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return analysis.RoundScore(score)
}

// containsFold reports whether text contains phrase, case-insensitively.
func containsFold(text, phrase string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(phrase))
}

// countMatches counts how many of the given cue words appear in words.
func countMatches(words []string, cues []string) int {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	count := 0
	for _, cue := range cues {
		if set[cue] {
			count++
		}
	}
	return count
}
