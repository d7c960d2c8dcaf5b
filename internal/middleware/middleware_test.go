package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"adalyze/internal/domain"
	"adalyze/internal/domain/models"
	"adalyze/internal/httputil"
)

type fakeVerifier struct {
	userID string
	err    error
}

func (f *fakeVerifier) VerifyToken(tokenString string) (*models.SupabaseClaims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.SupabaseClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: f.userID},
		Role:             "authenticated",
	}, nil
}

func (f *fakeVerifier) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthMiddleware_ValidTokenSetsUserID(t *testing.T) {
	var seenUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = httputil.GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})

	handler := AuthMiddleware(&fakeVerifier{userID: "user-42"})(next)

	r := httptest.NewRequest(http.MethodGet, "/api/analyses", nil)
	r.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if seenUserID != "user-42" {
		t.Errorf("expected user-42 in context, got %q", seenUserID)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc123"},
		{"empty bearer", "Bearer "},
	}

	handler := AuthMiddleware(&fakeVerifier{userID: "user-42"})(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not run without a valid token")
		}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/analyses", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	verifier := &fakeVerifier{err: domain.ErrUnauthorized}
	handler := AuthMiddleware(verifier)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not run with a rejected token")
		}))

	r := httptest.NewRequest(http.MethodGet, "/api/analyses", nil)
	r.Header.Set("Authorization", "Bearer expired-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddleware_HealthIsExempt(t *testing.T) {
	handler := AuthMiddleware(&fakeVerifier{err: errors.New("should not be called")})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("health must bypass auth, got %d", w.Code)
	}
}

func TestRecovery_PanicReturns500(t *testing.T) {
	handler := Recovery(discardLogger())(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			panic("handler blew up")
		}))

	r := httptest.NewRequest(http.MethodGet, "/api/analyses", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected problem+json, got %s", ct)
	}
}
