package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/Mihailob5017/codegames/internal/core/ports/primary"
	"github.com/Mihailob5017/codegames/internal/handlers/response"
)

type contextKey string

const userIDKey contextKey = "userID"

type MiddlewareProvider struct {
	jwtService primary.JWTService
	logger     primary.Logger
}

func New(jwtService primary.JWTService, logger primary.Logger) *MiddlewareProvider {
	return &MiddlewareProvider{
		jwtService: jwtService,
		logger:     logger,
	}
}

// JWTMiddleware rejects requests without a valid bearer token and stores the
// token subject as the user id of the request
func (m *MiddlewareProvider) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.WriteError(w, response.ErrorMessage{Message: "Authorization header missing", StatusCode: http.StatusUnauthorized})
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			response.WriteError(w, response.ErrorMessage{Message: "Invalid authorization header", StatusCode: http.StatusUnauthorized})
			return
		}

		payload, err := m.jwtService.ParseTokenHMAC(r.Context(), tokenString)
		if err != nil {
			m.logger.Debug("Rejected token", "error", err)
			response.WriteError(w, response.ErrorMessage{Message: "Invalid token", StatusCode: http.StatusUnauthorized})
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, payload.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
