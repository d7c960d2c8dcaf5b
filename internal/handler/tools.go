package handler

import (
	"log/slog"
	"net/http"

	"adalyze/internal/analysis"
	"adalyze/internal/httputil"
)

// ToolsHandler exposes the tool registry for introspection and monitoring.
// It never executes a tool.
type ToolsHandler struct {
	registry *analysis.Registry
	logger   *slog.Logger
}

// NewToolsHandler creates a new tools handler
func NewToolsHandler(registry *analysis.Registry, logger *slog.Logger) *ToolsHandler {
	return &ToolsHandler{
		registry: registry,
		logger:   logger,
	}
}

// ListTools returns metadata for every registered tool
// GET /api/tools
func (h *ToolsHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"tools": h.registry.ListAvailable(),
	})
}

// ToolsHealth runs each tool's lightweight self-check
// GET /api/tools/health
func (h *ToolsHandler) ToolsHealth(w http.ResponseWriter, r *http.Request) {
	report := h.registry.HealthCheck(r.Context())

	status := http.StatusOK
	for _, health := range report {
		if health == analysis.HealthUnavailable {
			status = http.StatusServiceUnavailable
			break
		}
	}

	httputil.RespondJSON(w, status, map[string]any{
		"tools": report,
	})
}

// HealthCheck is the liveness probe
// GET /health
func (h *ToolsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
