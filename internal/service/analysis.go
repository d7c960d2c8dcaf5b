package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"adalyze/internal/analysis"
	"adalyze/internal/config"
	"adalyze/internal/domain"
	"adalyze/internal/domain/models"
	"adalyze/internal/domain/repositories"
	"adalyze/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// analysisService implements the AnalysisService interface
type analysisService struct {
	orchestrator *analysis.Orchestrator
	registry     *analysis.Registry
	analysisRepo repositories.AnalysisRepository
	listMax      int
	logger       *slog.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	orchestrator *analysis.Orchestrator,
	registry *analysis.Registry,
	analysisRepo repositories.AnalysisRepository,
	listMax int,
	logger *slog.Logger,
) services.AnalysisService {
	return &analysisService{
		orchestrator: orchestrator,
		registry:     registry,
		analysisRepo: analysisRepo,
		listMax:      listMax,
		logger:       logger,
	}
}

// Analyze validates the request, runs the requested tools against the
// normalized input, and persists the run for the authenticated user.
func (s *analysisService) Analyze(ctx context.Context, req *services.AnalyzeRequest) (*models.Analysis, error) {
	if err := s.validateAnalyzeRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	mode, err := analysis.ParseMode(req.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	toolIDs := req.ToolIDs
	if len(toolIDs) == 0 {
		// Default to every registered tool, in registration order.
		toolIDs = s.registry.IDs()
	}

	input := &analysis.ToolInput{
		Headline: strings.TrimSpace(req.Headline),
		BodyText: strings.TrimSpace(req.BodyText),
		CTAText:  strings.TrimSpace(req.CTAText),
		Platform: analysis.Platform(req.Platform),
		Industry: strings.TrimSpace(req.Industry),
		Audience: strings.TrimSpace(req.Audience),
		Context:  req.Context,
	}

	result, err := s.orchestrator.Run(ctx, input, toolIDs, mode)
	if err != nil {
		if analysis.IsRequestError(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		return nil, err
	}

	run := &models.Analysis{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Headline:  input.Headline,
		BodyText:  input.BodyText,
		CTAText:   input.CTAText,
		Platform:  req.Platform,
		Industry:  input.Industry,
		Audience:  input.Audience,
		Mode:      string(mode),
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.analysisRepo.Create(ctx, run); err != nil {
		return nil, err
	}

	s.logger.Info("analysis stored",
		"id", run.ID,
		"user_id", run.UserID,
		"platform", run.Platform,
		"mode", run.Mode,
		"succeeded", result.Succeeded,
		"partial_failure", result.HasPartialFailure,
	)

	return run, nil
}

// GetAnalysis retrieves one stored run, owner-scoped
func (s *analysisService) GetAnalysis(ctx context.Context, id, userID string) (*models.Analysis, error) {
	return s.analysisRepo.GetByID(ctx, id, userID)
}

// ListAnalyses returns the user's stored runs, newest first
func (s *analysisService) ListAnalyses(ctx context.Context, userID string) ([]models.Analysis, error) {
	return s.analysisRepo.ListByUser(ctx, userID, s.listMax)
}

func (s *analysisService) validateAnalyzeRequest(req *services.AnalyzeRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Headline,
			validation.Required,
			validation.Length(1, config.MaxHeadlineLength),
		),
		validation.Field(&req.BodyText,
			validation.Required,
			validation.Length(1, config.MaxBodyLength),
		),
		validation.Field(&req.CTAText,
			validation.Required,
			validation.Length(1, config.MaxCTALength),
		),
		validation.Field(&req.Platform,
			validation.Required,
			validation.By(validPlatform),
		),
		validation.Field(&req.Context,
			validation.Length(0, config.MaxContextEntries),
		),
	)
}

func validPlatform(value interface{}) error {
	platform, _ := value.(string)
	if !analysis.Platform(platform).Valid() {
		return fmt.Errorf("must be one of: %s", joinPlatforms())
	}
	return nil
}

func joinPlatforms() string {
	names := make([]string, len(analysis.Platforms))
	for i, p := range analysis.Platforms {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
