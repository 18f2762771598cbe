package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Mihailob5017/codegames/internal/adapter/logging"
	"github.com/Mihailob5017/codegames/internal/domain"
	"github.com/Mihailob5017/codegames/internal/static/errs"
)

type stubJWT struct{}

func (stubJWT) GenerateTokenHMAC(context.Context, string, map[string]interface{}) (string, error) {
	return "good", nil
}

func (stubJWT) VerifyTokenHMAC(_ context.Context, token, _ string) (bool, error) {
	return token == "good", nil
}

func (stubJWT) ParseTokenHMAC(_ context.Context, token string) (domain.AuthPayload, error) {
	if token != "good" {
		return domain.AuthPayload{}, errs.ErrInvalidToken
	}
	return domain.AuthPayload{UserID: "user-42"}, nil
}

func TestJWTMiddleware(t *testing.T) {
	var seen string
	h := New(stubJWT{}, logging.NewNopLogger()).JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		status int
		userID string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"not bearer", "Basic abc", http.StatusUnauthorized, ""},
		{"bad token", "Bearer nope", http.StatusUnauthorized, ""},
		{"valid token", "Bearer good", http.StatusNoContent, "user-42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodPost, "/api/grading/submit", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if seen != tt.userID {
				t.Errorf("user id = %q, want %q", seen, tt.userID)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	healthy := NewHealthHandler("codegames", map[string]HealthCheck{
		"postgres": func(context.Context) error { return nil },
	})
	rec := httptest.NewRecorder()
	healthy.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("healthy status = %d", rec.Code)
	}

	broken := NewHealthHandler("codegames", map[string]HealthCheck{
		"redis": func(context.Context) error { return errs.InternalError },
	})
	rec = httptest.NewRecorder()
	broken.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("degraded status = %d", rec.Code)
	}
}
