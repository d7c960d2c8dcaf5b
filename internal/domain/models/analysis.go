package models

import (
	"time"

	"adalyze/internal/analysis"
)

// Analysis is one persisted orchestration run: the ad copy as submitted,
// the execution mode, and the aggregate result with every tool outcome.
type Analysis struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Headline string `json:"headline"`
	BodyText string `json:"body_text"`
	CTAText  string `json:"cta_text"`
	Platform string `json:"platform"`
	Industry string `json:"industry,omitempty"`
	Audience string `json:"audience,omitempty"`

	Mode   string                    `json:"mode"`
	Result *analysis.AggregateResult `json:"result"`

	CreatedAt time.Time `json:"created_at"`
}
