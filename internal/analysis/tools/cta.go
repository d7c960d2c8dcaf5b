package tools

import (
	"context"
	"fmt"
	"strings"

	"adalyze/internal/analysis"
	"adalyze/internal/analysis/rules"
)

var ctaActionVerbs = []string{
	"shop", "buy", "get", "start", "try", "join", "discover", "learn",
	"download", "claim", "book", "subscribe", "explore", "grab", "unlock",
}

var ctaUrgencyWords = []string{
	"now", "today", "free", "instantly", "limited",
}

// CTATool scores the call-to-action: whether it leads with an action verb,
// carries urgency, and fits the platform's button length.
type CTATool struct {
	cfg      *ToolConfig
	rulesets *rules.Registry
}

func NewCTATool(cfg *ToolConfig, rulesets *rules.Registry) *CTATool {
	return &CTATool{cfg: cfg, rulesets: rulesets}
}

func (t *CTATool) Metadata() analysis.ToolMetadata {
	return analysis.ToolMetadata{
		ID:          "cta",
		Name:        "Call to Action",
		Category:    "persuasion",
		Description: "Scores action-verb strength, urgency, and length of the CTA.",
		Timeout:     t.cfg.DefaultTimeout,
	}
}

func (t *CTATool) Execute(ctx context.Context, input *analysis.ToolInput) (*analysis.ToolOutput, error) {
	words := splitWords(input.CTAText)
	if len(words) == 0 {
		return nil, fmt.Errorf("cta text is empty")
	}

	verbScore := 30.0
	switch {
	case matchesAny(words[0], ctaActionVerbs):
		verbScore = 100
	case countMatches(words, ctaActionVerbs) > 0:
		verbScore = 70
	}

	urgencyScore := 60.0
	if countMatches(words, ctaUrgencyWords) > 0 {
		urgencyScore = 100
	}

	lengthScore := 100.0
	if len(words) > t.cfg.MaxCTAWords {
		lengthScore = clampScore(100 - 15*float64(len(words)-t.cfg.MaxCTAWords))
	}
	if limits, err := t.rulesets.PlatformLimits(string(input.Platform)); err == nil {
		if over := len(input.CTAText) - limits.CTAMax; over > 0 {
			lengthScore = clampScore(lengthScore - t.cfg.OverflowPenaltyPerChar*float64(over))
		}
	}

	output := &analysis.ToolOutput{
		Score: clampScore(0.5*verbScore + 0.25*urgencyScore + 0.25*lengthScore),
		SubScores: map[string]float64{
			"action_verb": clampScore(verbScore),
			"urgency":     clampScore(urgencyScore),
			"length":      clampScore(lengthScore),
		},
		Metadata: map[string]any{
			"cta_words": len(words),
			"cta_chars": len(input.CTAText),
		},
	}

	if verbScore < 100 {
		output.Insights = append(output.Insights, "The CTA does not lead with an action verb.")
		output.Recommendations = append(output.Recommendations,
			fmt.Sprintf("Open the CTA with a verb like %q or %q.", "Get", "Start"))
	}
	if urgencyScore < 100 {
		output.Recommendations = append(output.Recommendations,
			"Add a time or value cue (now, today, free) to prompt immediate action.")
	}
	if lengthScore < 100 {
		output.Insights = append(output.Insights, "The CTA is longer than the platform's button comfortably fits.")
	}
	if len(output.Insights) == 0 {
		output.Insights = append(output.Insights, "The CTA is direct and action-oriented.")
	}

	return output, nil
}

func matchesAny(word string, candidates []string) bool {
	for _, candidate := range candidates {
		if strings.EqualFold(word, candidate) {
			return true
		}
	}
	return false
}
