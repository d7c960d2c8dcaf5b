package tools

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"adalyze/internal/analysis"
)

// BrandVoiceTool measures whether the headline and body speak in the same
// register: energy (exclamations, all-caps) and informality (second person,
// contractions). It declares a dependency on the readability tool so that
// in sequential and mixed modes voice runs after basic readability has been
// established; it still receives the original input, not readability's
// output.
type BrandVoiceTool struct {
	cfg *ToolConfig
}

func NewBrandVoiceTool(cfg *ToolConfig) *BrandVoiceTool {
	return &BrandVoiceTool{cfg: cfg}
}

func (t *BrandVoiceTool) Metadata() analysis.ToolMetadata {
	return analysis.ToolMetadata{
		ID:          "brand_voice",
		Name:        "Brand Voice",
		Category:    "brand-voice",
		Description: "Measures tone consistency between headline and body.",
		DependsOn:   []string{"readability"},
		Timeout:     t.cfg.DefaultTimeout,
	}
}

func (t *BrandVoiceTool) Execute(ctx context.Context, input *analysis.ToolInput) (*analysis.ToolOutput, error) {
	if strings.TrimSpace(input.Headline) == "" || strings.TrimSpace(input.BodyText) == "" {
		return nil, fmt.Errorf("both headline and body are required for voice comparison")
	}

	headEnergy := energyLevel(input.Headline)
	bodyEnergy := energyLevel(input.BodyText)
	energyScore := clampScore(100 - 100*math.Abs(headEnergy-bodyEnergy))

	headInformal := informality(input.Headline)
	bodyInformal := informality(input.BodyText)
	informalityScore := clampScore(100 - 100*math.Abs(headInformal-bodyInformal))

	output := &analysis.ToolOutput{
		Score: clampScore(0.5*energyScore + 0.5*informalityScore),
		SubScores: map[string]float64{
			"energy_consistency": energyScore,
			"register_match":     informalityScore,
		},
		Metadata: map[string]any{
			"headline_energy": analysis.RoundScore(headEnergy * 100),
			"body_energy":     analysis.RoundScore(bodyEnergy * 100),
		},
	}

	if energyScore < 70 {
		output.Insights = append(output.Insights,
			"Headline and body carry noticeably different energy levels.")
		output.Recommendations = append(output.Recommendations,
			"Match punctuation and capitalization intensity across headline and body.")
	}
	if informalityScore < 70 {
		output.Insights = append(output.Insights,
			"Headline and body address the reader in different registers.")
		output.Recommendations = append(output.Recommendations,
			"Use the same person and formality throughout the ad.")
	}
	if len(output.Insights) == 0 {
		output.Insights = append(output.Insights, "Headline and body speak with one voice.")
	}

	return output, nil
}

// energyLevel estimates how loud a piece of text is, 0..1.
func energyLevel(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	exclamations := strings.Count(text, "!")
	capsWords := 0
	for _, word := range words {
		letters := 0
		upper := 0
		for _, r := range word {
			if unicode.IsLetter(r) {
				letters++
				if unicode.IsUpper(r) {
					upper++
				}
			}
		}
		if letters >= 2 && upper == letters {
			capsWords++
		}
	}

	level := float64(exclamations)/float64(len(words)) + float64(capsWords)/float64(len(words))
	return math.Min(level, 1)
}

// informality estimates how conversational a piece of text is, 0..1.
func informality(text string) float64 {
	words := splitWords(text)
	if len(words) == 0 {
		return 0
	}

	markers := countMatches(words, []string{"you", "your", "we", "let's", "yeah", "hey"})
	contractions := strings.Count(strings.ToLower(text), "'")
	level := float64(markers+contractions) / float64(len(words))
	return math.Min(level*3, 1)
}
