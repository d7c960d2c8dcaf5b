package tools

import "time"

// ToolConfig centralizes the numeric knobs shared by the built-in tools.
// Replaces magic numbers scattered throughout tool implementations.
type ToolConfig struct {
	// DefaultTimeout is stamped into each tool's metadata so the
	// orchestrator bounds executions consistently. The built-in tools are
	// pure CPU heuristics, so this is generous.
	DefaultTimeout time.Duration

	// Readability tool configuration
	IdealSentenceWords int // target average words per sentence
	LongWordLength     int // characters before a word counts as complex

	// CTA tool configuration
	MaxCTAWords int // CTAs longer than this read as sentences, not buttons

	// Persuasion tool configuration
	CueHitWeight float64 // score added per matched persuasion cue
	CueBaseScore float64 // sub-score floor when no cues match

	// Platform fit tool configuration
	OverflowPenaltyPerChar float64 // score lost per character over a limit
}

// DefaultToolConfig returns the default tool configuration.
func DefaultToolConfig() *ToolConfig {
	return &ToolConfig{
		DefaultTimeout: 10 * time.Second,

		// Readability defaults: ad copy reads best around 12-word sentences
		IdealSentenceWords: 12,
		LongWordLength:     8,

		// CTA defaults
		MaxCTAWords: 6,

		// Persuasion defaults
		CueHitWeight: 20,
		CueBaseScore: 40,

		// Platform fit defaults
		OverflowPenaltyPerChar: 2,
	}
}
