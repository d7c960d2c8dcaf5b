package tools

import (
	"context"
	"fmt"
	"math"

	"adalyze/internal/analysis"
)

// ReadabilityTool scores how easily the headline and body read: sentence
// length against the ad-copy sweet spot and the share of long words.
type ReadabilityTool struct {
	cfg *ToolConfig
}

func NewReadabilityTool(cfg *ToolConfig) *ReadabilityTool {
	return &ReadabilityTool{cfg: cfg}
}

func (t *ReadabilityTool) Metadata() analysis.ToolMetadata {
	return analysis.ToolMetadata{
		ID:          "readability",
		Name:        "Readability",
		Category:    "readability",
		Description: "Scores sentence length and word complexity of the headline and body.",
		Timeout:     t.cfg.DefaultTimeout,
	}
}

func (t *ReadabilityTool) Execute(ctx context.Context, input *analysis.ToolInput) (*analysis.ToolOutput, error) {
	text := input.Headline + ". " + input.BodyText
	sentences := splitSentences(text)
	words := splitWords(text)
	if len(words) == 0 {
		return nil, fmt.Errorf("no scorable text in headline or body")
	}

	avgWords := float64(len(words)) / float64(len(sentences))
	sentenceScore := clampScore(100 - 4*math.Abs(avgWords-float64(t.cfg.IdealSentenceWords)))

	longWords := 0
	for _, word := range words {
		if len(word) >= t.cfg.LongWordLength {
			longWords++
		}
	}
	longShare := float64(longWords) / float64(len(words))
	complexityScore := clampScore(100 - 200*longShare)

	output := &analysis.ToolOutput{
		Score: clampScore(0.6*sentenceScore + 0.4*complexityScore),
		SubScores: map[string]float64{
			"sentence_length": sentenceScore,
			"word_complexity": complexityScore,
		},
		Metadata: map[string]any{
			"sentences":  len(sentences),
			"words":      len(words),
			"long_words": longWords,
		},
	}

	if avgWords > float64(t.cfg.IdealSentenceWords)+4 {
		output.Insights = append(output.Insights,
			fmt.Sprintf("Sentences average %.0f words; ad copy reads best near %d.", avgWords, t.cfg.IdealSentenceWords))
		output.Recommendations = append(output.Recommendations,
			"Break long sentences into shorter, punchier statements.")
	}
	if longShare > 0.25 {
		output.Insights = append(output.Insights,
			fmt.Sprintf("%.0f%% of words are %d+ characters.", longShare*100, t.cfg.LongWordLength))
		output.Recommendations = append(output.Recommendations,
			"Swap complex words for everyday alternatives.")
	}
	if len(output.Insights) == 0 {
		output.Insights = append(output.Insights, "Copy reads at a comfortable pace for ad placements.")
	}

	return output, nil
}
