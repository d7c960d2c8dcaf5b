package repositories

import (
	"context"

	"adalyze/internal/domain/models"
)

// AnalysisRepository persists orchestration runs.
type AnalysisRepository interface {
	// Create stores a completed analysis run.
	Create(ctx context.Context, analysis *models.Analysis) error

	// GetByID retrieves a run by ID, scoped to its owner. Returns
	// domain.ErrNotFound (wrapped) when the run does not exist or belongs
	// to another user.
	GetByID(ctx context.Context, id, userID string) (*models.Analysis, error)

	// ListByUser returns the user's runs, newest first, capped at limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Analysis, error)
}
