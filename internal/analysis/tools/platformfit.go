package tools

import (
	"context"
	"fmt"
	"strings"

	"adalyze/internal/analysis"
	"adalyze/internal/analysis/rules"
)

// PlatformFitTool checks the copy against the target platform's length
// limits and conventions from the embedded platform ruleset.
type PlatformFitTool struct {
	cfg      *ToolConfig
	rulesets *rules.Registry
}

func NewPlatformFitTool(cfg *ToolConfig, rulesets *rules.Registry) *PlatformFitTool {
	return &PlatformFitTool{cfg: cfg, rulesets: rulesets}
}

func (t *PlatformFitTool) Metadata() analysis.ToolMetadata {
	return analysis.ToolMetadata{
		ID:          "platform_fit",
		Name:        "Platform Fit",
		Category:    "platform-fit",
		Description: "Checks length limits and conventions for the target platform.",
		Timeout:     t.cfg.DefaultTimeout,
	}
}

// Health confirms the platform ruleset loaded.
func (t *PlatformFitTool) Health(ctx context.Context) error {
	if t.rulesets.PlatformCount() == 0 {
		return fmt.Errorf("platform ruleset is empty")
	}
	return nil
}

func (t *PlatformFitTool) Execute(ctx context.Context, input *analysis.ToolInput) (*analysis.ToolOutput, error) {
	limits, err := t.rulesets.PlatformLimits(string(input.Platform))
	if err != nil {
		return nil, err
	}

	output := &analysis.ToolOutput{
		SubScores: map[string]float64{},
		Metadata: map[string]any{
			"platform":     string(input.Platform),
			"headline_max": limits.HeadlineMax,
			"body_max":     limits.BodyMax,
			"cta_max":      limits.CTAMax,
		},
	}

	fields := []struct {
		name  string
		text  string
		limit int
	}{
		{"headline_length", input.Headline, limits.HeadlineMax},
		{"body_length", input.BodyText, limits.BodyMax},
		{"cta_length", input.CTAText, limits.CTAMax},
	}

	total := 0.0
	for _, field := range fields {
		score := 100.0
		if over := len(field.text) - field.limit; over > 0 {
			score = clampScore(100 - t.cfg.OverflowPenaltyPerChar*float64(over))
			output.Insights = append(output.Insights,
				fmt.Sprintf("%s exceeds the %s limit by %d characters.",
					strings.TrimSuffix(field.name, "_length"), limits.DisplayName, over))
			output.Recommendations = append(output.Recommendations,
				fmt.Sprintf("Trim the %s to at most %d characters for %s.",
					strings.TrimSuffix(field.name, "_length"), field.limit, limits.DisplayName))
		}
		output.SubScores[field.name] = score
		total += score
	}

	conventionScore := 100.0
	hashtags := strings.Count(input.Headline+" "+input.BodyText, "#")
	if hashtags > 0 && !limits.HashtagFriendly {
		conventionScore = clampScore(100 - 20*float64(hashtags))
		output.Insights = append(output.Insights,
			fmt.Sprintf("Hashtags add no reach on %s.", limits.DisplayName))
		output.Recommendations = append(output.Recommendations,
			fmt.Sprintf("Drop hashtags for %s placements.", limits.DisplayName))
	}
	output.SubScores["conventions"] = conventionScore
	total += conventionScore

	output.Score = clampScore(total / 4)
	if len(output.Insights) == 0 {
		output.Insights = append(output.Insights,
			fmt.Sprintf("Copy fits %s placements as written.", limits.DisplayName))
	}

	return output, nil
}
