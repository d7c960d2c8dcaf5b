package analysis

import "time"

// Platform identifies the ad network the copy targets.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformGoogle    Platform = "google"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformTwitter   Platform = "twitter"
	PlatformYouTube   Platform = "youtube"
)

// Platforms lists every supported platform, in display order.
var Platforms = []Platform{
	PlatformFacebook,
	PlatformGoogle,
	PlatformLinkedIn,
	PlatformTikTok,
	PlatformInstagram,
	PlatformTwitter,
	PlatformYouTube,
}

// Valid reports whether p is a supported platform.
func (p Platform) Valid() bool {
	for _, known := range Platforms {
		if p == known {
			return true
		}
	}
	return false
}

// ToolInput is the normalized ad copy handed to every tool in a run.
// It is shared by pointer across concurrently running tools and must never
// be mutated after construction.
type ToolInput struct {
	Headline string            `json:"headline"`
	BodyText string            `json:"body_text"`
	CTAText  string            `json:"cta_text"`
	Platform Platform          `json:"platform"`
	Industry string            `json:"industry,omitempty"`
	Audience string            `json:"audience,omitempty"`
	Context  map[string]string `json:"context,omitempty"`
}

// ToolOutput is the normalized result of one successful tool execution.
// Score is on a 0-100 scale with one decimal of precision; the semantics of
// the score and sub-scores are tool-defined.
type ToolOutput struct {
	Score           float64            `json:"score"`
	SubScores       map[string]float64 `json:"sub_scores,omitempty"`
	Insights        []string           `json:"insights,omitempty"`
	Recommendations []string           `json:"recommendations,omitempty"`
	Metadata        map[string]any     `json:"metadata,omitempty"`
}

// Status is the terminal state of one tool within one run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusTimedOut  Status = "timed_out"
	StatusSkipped   Status = "skipped"
)

// ToolOutcome records how a single tool finished. Output is present only
// when Status is StatusSucceeded; Error carries the failure description
// otherwise (empty for StatusSkipped dependents, which name the missing
// prerequisite instead).
type ToolOutcome struct {
	ToolID     string      `json:"tool_id"`
	Status     Status      `json:"status"`
	Output     *ToolOutput `json:"output,omitempty"`
	Error      string      `json:"error,omitempty"`
	DurationMS int64       `json:"duration_ms"`
}

// Mode selects how a run schedules its tools.
type Mode string

const (
	// ModeParallel launches every tool concurrently.
	ModeParallel Mode = "parallel"
	// ModeSequential executes tools one at a time, in dependency order when
	// any tool declares dependencies, otherwise in requested order.
	ModeSequential Mode = "sequential"
	// ModeMixed partitions tools into dependency layers; layers run in
	// sequence, tools within a layer run in parallel.
	ModeMixed Mode = "mixed"
)

// ParseMode converts the wire representation of a mode. The empty string
// defaults to ModeParallel.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeParallel, nil
	case ModeParallel, ModeSequential, ModeMixed:
		return Mode(s), nil
	default:
		return "", &InvalidModeError{Mode: s}
	}
}

// HealthStatus is the result of a registry health probe for one tool.
type HealthStatus string

const (
	HealthHealthy     HealthStatus = "healthy"
	HealthDegraded    HealthStatus = "degraded"
	HealthUnavailable HealthStatus = "unavailable"
)

// ToolMetadata is the static descriptor a tool publishes at registration.
type ToolMetadata struct {
	// ID uniquely identifies the tool within a registry.
	ID string `json:"id"`
	// Name is the human-readable display name.
	Name string `json:"name"`
	// Category is the capability the tool scores (readability, persuasion,
	// compliance, ...).
	Category string `json:"category"`
	// Description explains what the tool evaluates.
	Description string `json:"description,omitempty"`
	// DependsOn lists tool IDs that must reach a terminal state before this
	// tool starts, in sequential and mixed modes. Ordering only: dependents
	// still receive the original ToolInput, never another tool's output.
	DependsOn []string `json:"depends_on,omitempty"`
	// Timeout overrides the orchestrator's default per-tool deadline when
	// non-zero.
	Timeout time.Duration `json:"-"`
}
