package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"adalyze/internal/domain"
	"adalyze/internal/domain/models"
	"adalyze/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresAnalysisRepository implements the AnalysisRepository interface.
// The aggregate result is stored as JSONB next to the denormalized request
// fields and overall score, so listings never need to unpack outcomes.
type PostgresAnalysisRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(config *RepositoryConfig) repositories.AnalysisRepository {
	return &PostgresAnalysisRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create stores a completed analysis run
func (r *PostgresAnalysisRepository) Create(ctx context.Context, a *models.Analysis) error {
	resultJSON, err := json.Marshal(a.Result)
	if err != nil {
		return fmt.Errorf("marshal analysis result: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, headline, body_text, cta_text, platform,
			industry, audience, mode, overall_score, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, r.tables.Analyses)

	_, err = r.pool.Exec(ctx, query,
		a.ID,
		a.UserID,
		a.Headline,
		a.BodyText,
		a.CTAText,
		a.Platform,
		a.Industry,
		a.Audience,
		a.Mode,
		a.Result.OverallScore,
		resultJSON,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create analysis: %w", err)
	}

	return nil
}

// GetByID retrieves an analysis run by ID, scoped to its owner
func (r *PostgresAnalysisRepository) GetByID(ctx context.Context, id, userID string) (*models.Analysis, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, headline, body_text, cta_text, platform,
			industry, audience, mode, result, created_at
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.tables.Analyses)

	var a models.Analysis
	var resultJSON []byte
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&a.ID,
		&a.UserID,
		&a.Headline,
		&a.BodyText,
		&a.CTAText,
		&a.Platform,
		&a.Industry,
		&a.Audience,
		&a.Mode,
		&resultJSON,
		&a.CreatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("analysis %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get analysis: %w", err)
	}

	if err := json.Unmarshal(resultJSON, &a.Result); err != nil {
		return nil, fmt.Errorf("unmarshal analysis result: %w", err)
	}

	return &a, nil
}

// ListByUser returns the user's analysis runs, newest first
func (r *PostgresAnalysisRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Analysis, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, headline, body_text, cta_text, platform,
			industry, audience, mode, result, created_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, r.tables.Analyses)

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var analyses []models.Analysis
	for rows.Next() {
		var a models.Analysis
		var resultJSON []byte
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Headline,
			&a.BodyText,
			&a.CTAText,
			&a.Platform,
			&a.Industry,
			&a.Audience,
			&a.Mode,
			&resultJSON,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		if err := json.Unmarshal(resultJSON, &a.Result); err != nil {
			return nil, fmt.Errorf("unmarshal analysis result: %w", err)
		}
		analyses = append(analyses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}

	return analyses, nil
}
