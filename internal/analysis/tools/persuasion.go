package tools

import (
	"context"
	"fmt"

	"adalyze/internal/analysis"
)

var (
	socialProofCues = []string{
		"customers", "reviews", "trusted", "rated", "join", "thousands",
		"millions", "loved", "recommended",
	}
	urgencyCues = []string{
		"now", "today", "limited", "ends", "hurry", "last", "soon",
	}
	benefitCues = []string{
		"free", "save", "you", "your", "more", "easy", "faster", "better",
	}
)

// PersuasionTool counts persuasion cues (social proof, urgency, benefit
// framing) across the full copy.
type PersuasionTool struct {
	cfg *ToolConfig
}

func NewPersuasionTool(cfg *ToolConfig) *PersuasionTool {
	return &PersuasionTool{cfg: cfg}
}

func (t *PersuasionTool) Metadata() analysis.ToolMetadata {
	return analysis.ToolMetadata{
		ID:          "persuasion",
		Name:        "Persuasion",
		Category:    "persuasion",
		Description: "Counts social proof, urgency, and benefit cues across the copy.",
		Timeout:     t.cfg.DefaultTimeout,
	}
}

func (t *PersuasionTool) Execute(ctx context.Context, input *analysis.ToolInput) (*analysis.ToolOutput, error) {
	words := splitWords(input.Headline + " " + input.BodyText + " " + input.CTAText)
	if len(words) == 0 {
		return nil, fmt.Errorf("no scorable text")
	}

	cueScore := func(cues []string) (float64, int) {
		hits := countMatches(words, cues)
		return clampScore(t.cfg.CueBaseScore + t.cfg.CueHitWeight*float64(hits)), hits
	}

	socialScore, socialHits := cueScore(socialProofCues)
	urgencyScore, urgencyHits := cueScore(urgencyCues)
	benefitScore, benefitHits := cueScore(benefitCues)

	output := &analysis.ToolOutput{
		Score: clampScore((socialScore + urgencyScore + benefitScore) / 3),
		SubScores: map[string]float64{
			"social_proof":    socialScore,
			"urgency":         urgencyScore,
			"benefit_framing": benefitScore,
		},
		Metadata: map[string]any{
			"social_proof_hits": socialHits,
			"urgency_hits":      urgencyHits,
			"benefit_hits":      benefitHits,
		},
	}

	if socialHits == 0 {
		output.Insights = append(output.Insights, "No social proof cues found.")
		output.Recommendations = append(output.Recommendations,
			"Reference customer counts, ratings, or reviews to build trust.")
	}
	if urgencyHits == 0 {
		output.Recommendations = append(output.Recommendations,
			"Introduce a time-bound reason to act.")
	}
	if benefitHits == 0 {
		output.Insights = append(output.Insights, "The copy talks features, not benefits.")
		output.Recommendations = append(output.Recommendations,
			"Address the reader directly and lead with what they gain.")
	}
	if len(output.Insights) == 0 {
		output.Insights = append(output.Insights, "Copy carries a healthy mix of persuasion cues.")
	}

	return output, nil
}
