package tools

import (
	"context"
	"fmt"

	"adalyze/internal/analysis"
	"adalyze/internal/analysis/rules"
)

// ComplianceTool flags prohibited or risky phrases from the embedded
// ruleset. Industry-restricted categories (financial, health) apply only
// when the input declares a matching industry.
type ComplianceTool struct {
	cfg      *ToolConfig
	rulesets *rules.Registry
}

func NewComplianceTool(cfg *ToolConfig, rulesets *rules.Registry) *ComplianceTool {
	return &ComplianceTool{cfg: cfg, rulesets: rulesets}
}

func (t *ComplianceTool) Metadata() analysis.ToolMetadata {
	return analysis.ToolMetadata{
		ID:          "compliance",
		Name:        "Compliance",
		Category:    "compliance",
		Description: "Flags prohibited and risky phrases per the compliance ruleset.",
		Timeout:     t.cfg.DefaultTimeout,
	}
}

// Health confirms the compliance ruleset loaded; without it the tool would
// silently pass everything.
func (t *ComplianceTool) Health(ctx context.Context) error {
	if t.rulesets.CategoryCount() == 0 {
		return fmt.Errorf("compliance ruleset is empty")
	}
	return nil
}

func (t *ComplianceTool) Execute(ctx context.Context, input *analysis.ToolInput) (*analysis.ToolOutput, error) {
	text := input.Headline + " " + input.BodyText + " " + input.CTAText

	score := 100.0
	flagged := 0
	var insights, recommendations []string
	flaggedCategories := make(map[string]bool)

	for _, category := range t.rulesets.ComplianceCategories(input.Industry) {
		for _, phrase := range category.Phrases {
			if !containsFold(text, phrase) {
				continue
			}
			flagged++
			score -= category.Penalty
			insights = append(insights,
				fmt.Sprintf("Flagged %q (%s, %s severity).", phrase, category.Name, category.Severity))
			if !flaggedCategories[category.Name] {
				flaggedCategories[category.Name] = true
				recommendations = append(recommendations, category.Advice)
			}
		}
	}

	if flagged == 0 {
		insights = append(insights, "No compliance issues found.")
	}

	return &analysis.ToolOutput{
		Score: clampScore(score),
		SubScores: map[string]float64{
			"phrase_safety": clampScore(score),
		},
		Insights:        insights,
		Recommendations: recommendations,
		Metadata: map[string]any{
			"flagged_phrases":    flagged,
			"flagged_categories": len(flaggedCategories),
		},
	}, nil
}
