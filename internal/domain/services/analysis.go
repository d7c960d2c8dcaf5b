package services

import (
	"context"

	"adalyze/internal/domain/models"
)

// AnalyzeRequest is the normalized request to run an analysis. UserID is
// populated from the authenticated context by the handler, never from the
// request body.
type AnalyzeRequest struct {
	Headline string            `json:"headline"`
	BodyText string            `json:"body_text"`
	CTAText  string            `json:"cta_text"`
	Platform string            `json:"platform"`
	Industry string            `json:"industry,omitempty"`
	Audience string            `json:"audience,omitempty"`
	Context  map[string]string `json:"context,omitempty"`

	// ToolIDs selects which tools to run; empty means every registered
	// tool.
	ToolIDs []string `json:"tool_ids,omitempty"`
	// Mode is parallel (default), sequential, or mixed.
	Mode string `json:"mode,omitempty"`

	UserID string `json:"-"`
}

// AnalysisService runs the orchestrator and manages stored runs.
type AnalysisService interface {
	// Analyze validates the request, runs the requested tools, persists
	// the run, and returns it. Partial tool failure is not an error; only
	// caller mistakes (validation, unknown tool, invalid mode) are.
	Analyze(ctx context.Context, req *AnalyzeRequest) (*models.Analysis, error)

	// GetAnalysis retrieves one stored run, owner-scoped.
	GetAnalysis(ctx context.Context, id, userID string) (*models.Analysis, error)

	// ListAnalyses returns the user's stored runs, newest first.
	ListAnalyses(ctx context.Context, userID string) ([]models.Analysis, error)
}
