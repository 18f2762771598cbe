package execute

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Mihailob5017/codegames/internal/core/ports/primary"
	gradingservice "github.com/Mihailob5017/codegames/internal/core/services/grading"
	"github.com/Mihailob5017/codegames/internal/domain"
	"github.com/Mihailob5017/codegames/internal/handlers/response"
	"github.com/Mihailob5017/codegames/internal/static/errs"
)

const maxBodyBytes = 1 << 20

type ExecuteRequest struct {
	SourceCode string `json:"source_code"`
	Language   string `json:"language"`
	Stdin      string `json:"stdin,omitempty"`
}

// Handler runs standalone scripts without grading them
type Handler struct {
	gradingService gradingservice.IGradingService
	logger         primary.Logger
}

func NewHandler(gradingService gradingservice.IGradingService, logger primary.Logger) *Handler {
	return &Handler{
		gradingService: gradingService,
		logger:         logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/execute", h.Execute).Methods("POST")
}

func (h *Handler) Execute(w http.ResponseWriter, r *http.Request) {
	var req ExecuteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.Debug("Failed to decode request", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Invalid request", StatusCode: http.StatusBadRequest})
		return
	}

	language, ok := domain.ParseLanguage(req.Language)
	if !ok {
		response.WriteServiceError(w, fmt.Errorf("%w: %q", errs.ErrUnsupportedLanguage, req.Language), h.logger)
		return
	}

	result, err := h.gradingService.Execute(r.Context(), domain.ExecutionRequest{
		SourceCode: req.SourceCode,
		Language:   language,
		Stdin:      req.Stdin,
	})
	if err != nil {
		response.WriteServiceError(w, err, h.logger)
		return
	}

	response.WriteSuccess(w, result)
}
