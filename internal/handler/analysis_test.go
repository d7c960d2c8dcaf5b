package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"adalyze/internal/analysis"
	"adalyze/internal/domain"
	"adalyze/internal/domain/models"
	"adalyze/internal/domain/services"
	"adalyze/internal/httputil"
)

// stubAnalysisService implements services.AnalysisService for handler tests.
type stubAnalysisService struct {
	analyzeFn func(ctx context.Context, req *services.AnalyzeRequest) (*models.Analysis, error)
	getFn     func(ctx context.Context, id, userID string) (*models.Analysis, error)
	listFn    func(ctx context.Context, userID string) ([]models.Analysis, error)
}

func (s *stubAnalysisService) Analyze(ctx context.Context, req *services.AnalyzeRequest) (*models.Analysis, error) {
	return s.analyzeFn(ctx, req)
}

func (s *stubAnalysisService) GetAnalysis(ctx context.Context, id, userID string) (*models.Analysis, error) {
	return s.getFn(ctx, id, userID)
}

func (s *stubAnalysisService) ListAnalyses(ctx context.Context, userID string) ([]models.Analysis, error) {
	return s.listFn(ctx, userID)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleRun() *models.Analysis {
	score := 85.0
	return &models.Analysis{
		ID:       "run-1",
		UserID:   "user-1",
		Headline: "Buy Now",
		Platform: "facebook",
		Mode:     "parallel",
		Result: &analysis.AggregateResult{
			OverallScore: &score,
			Outcomes: []analysis.ToolOutcome{
				{ToolID: "readability", Status: analysis.StatusSucceeded, Output: &analysis.ToolOutput{Score: 85}},
			},
			Succeeded: 1,
			Mode:      analysis.ModeParallel,
		},
	}
}

func authedRequest(method, path, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, path, reader)
	return httputil.WithUserID(r, "user-1")
}

func TestCreateAnalysis_Success(t *testing.T) {
	var captured *services.AnalyzeRequest
	svc := &stubAnalysisService{
		analyzeFn: func(ctx context.Context, req *services.AnalyzeRequest) (*models.Analysis, error) {
			captured = req
			return sampleRun(), nil
		},
	}
	h := NewAnalysisHandler(svc, testLogger())

	body := `{"headline":"Buy Now","body_text":"Limited offer","cta_text":"Shop Now","platform":"facebook"}`
	w := httptest.NewRecorder()
	h.CreateAnalysis(w, authedRequest(http.MethodPost, "/api/analyses", body))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if captured.UserID != "user-1" {
		t.Errorf("user ID must come from auth context, got %q", captured.UserID)
	}

	var got models.Analysis
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != "run-1" {
		t.Errorf("expected run-1, got %s", got.ID)
	}
	if got.Result == nil || got.Result.OverallScore == nil || *got.Result.OverallScore != 85 {
		t.Error("response must embed the aggregate result")
	}
}

func TestCreateAnalysis_ValidationErrorIs400(t *testing.T) {
	svc := &stubAnalysisService{
		analyzeFn: func(ctx context.Context, req *services.AnalyzeRequest) (*models.Analysis, error) {
			return nil, fmt.Errorf("%w: headline: cannot be blank", domain.ErrValidation)
		},
	}
	h := NewAnalysisHandler(svc, testLogger())

	w := httptest.NewRecorder()
	h.CreateAnalysis(w, authedRequest(http.MethodPost, "/api/analyses", `{"platform":"facebook"}`))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected problem+json, got %s", ct)
	}
}

func TestCreateAnalysis_MalformedBodyIs400(t *testing.T) {
	h := NewAnalysisHandler(&stubAnalysisService{}, testLogger())

	w := httptest.NewRecorder()
	h.CreateAnalysis(w, authedRequest(http.MethodPost, "/api/analyses", `{not json`))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCreateAnalysis_MissingAuthIs401(t *testing.T) {
	h := NewAnalysisHandler(&stubAnalysisService{}, testLogger())

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/analyses", strings.NewReader(`{}`))
	h.CreateAnalysis(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestGetAnalysis_NotFoundIs404(t *testing.T) {
	svc := &stubAnalysisService{
		getFn: func(ctx context.Context, id, userID string) (*models.Analysis, error) {
			return nil, fmt.Errorf("analysis %s: %w", id, domain.ErrNotFound)
		},
	}
	h := NewAnalysisHandler(svc, testLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/analyses/{id}", h.GetAnalysis)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authedRequest(http.MethodGet, "/api/analyses/ghost", ""))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestListAnalyses_EmptyIsJSONArray(t *testing.T) {
	svc := &stubAnalysisService{
		listFn: func(ctx context.Context, userID string) ([]models.Analysis, error) {
			return nil, nil
		},
	}
	h := NewAnalysisHandler(svc, testLogger())

	w := httptest.NewRecorder()
	h.ListAnalyses(w, authedRequest(http.MethodGet, "/api/analyses", ""))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("expected empty JSON array, got %s", body)
	}
}
