package handler

import (
	"log/slog"
	"net/http"

	"adalyze/internal/domain/models"
	"adalyze/internal/domain/services"
	"adalyze/internal/httputil"
)

// AnalysisHandler handles analysis HTTP requests
type AnalysisHandler struct {
	analysisService services.AnalysisService
	logger          *slog.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService services.AnalysisService, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		logger:          logger,
	}
}

// CreateAnalysis runs the requested tools against the submitted ad copy and
// stores the result.
// POST /api/analyses
//
// Partial tool failure still returns 201 with has_partial_failure set; only
// caller mistakes (validation, unknown tool, bad mode) produce 4xx.
func (h *AnalysisHandler) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req services.AnalyzeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = userID

	run, err := h.analysisService.Analyze(r.Context(), &req)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, run)
}

// GetAnalysis retrieves a stored run by ID
// GET /api/analyses/{id}
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "analysis ID is required")
		return
	}

	run, err := h.analysisService.GetAnalysis(r.Context(), id, userID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, run)
}

// ListAnalyses returns the user's stored runs, newest first
// GET /api/analyses
func (h *AnalysisHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	runs, err := h.analysisService.ListAnalyses(r.Context(), userID)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}
	if runs == nil {
		runs = []models.Analysis{}
	}

	httputil.RespondJSON(w, http.StatusOK, runs)
}
