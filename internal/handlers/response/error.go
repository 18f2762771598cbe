package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Mihailob5017/codegames/internal/core/ports/primary"
	"github.com/Mihailob5017/codegames/internal/domain"
	"github.com/Mihailob5017/codegames/internal/static/errs"
)

type ErrorMessage struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
	Category   string `json:"category,omitempty"`
}

func WriteError(w http.ResponseWriter, err ErrorMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	_ = json.NewEncoder(w).Encode(err)
}

// WriteSuccess answers 200 with data as JSON
func WriteSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

// WriteServiceError maps a service error to its HTTP response. Infrastructure
// errors are logged and answered without detail.
func WriteServiceError(w http.ResponseWriter, err error, logger primary.Logger) {
	var violation *domain.SecurityViolation
	switch {
	case errors.As(err, &violation):
		WriteError(w, ErrorMessage{
			Message:    violation.Description,
			StatusCode: http.StatusBadRequest,
			Category:   string(violation.Category),
		})
	case errors.Is(err, errs.ErrValidation):
		WriteError(w, ErrorMessage{Message: err.Error(), StatusCode: http.StatusBadRequest})
	case errors.Is(err, errs.ErrNotFound):
		WriteError(w, ErrorMessage{Message: err.Error(), StatusCode: http.StatusNotFound})
	case errors.Is(err, errs.ErrUnauthorized), errors.Is(err, errs.ErrInvalidToken):
		WriteError(w, ErrorMessage{Message: "unauthorized", StatusCode: http.StatusUnauthorized})
	default:
		logger.Error("Request failed", "error", err)
		WriteError(w, ErrorMessage{Message: errs.InternalError.Error(), StatusCode: http.StatusInternalServerError})
	}
}
