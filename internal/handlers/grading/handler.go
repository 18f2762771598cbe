package grading

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Mihailob5017/codegames/internal/core/ports/primary"
	gradingservice "github.com/Mihailob5017/codegames/internal/core/services/grading"
	"github.com/Mihailob5017/codegames/internal/domain"
	"github.com/Mihailob5017/codegames/internal/handlers"
	"github.com/Mihailob5017/codegames/internal/handlers/response"
)

const maxBodyBytes = 1 << 20

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

// RegisterRoutes mounts the grading endpoints; submit additionally goes through auth
func (h *Handler) RegisterRoutes(router *mux.Router, auth mux.MiddlewareFunc) {
	router.HandleFunc("/api/grading/run", h.Run).Methods("POST")
	router.HandleFunc("/api/grading/run-all", h.RunAll).Methods("POST")
	router.Handle("/api/grading/submit", auth(http.HandlerFunc(h.Submit))).Methods("POST")
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (GradeRequest, domain.Language, bool) {
	var req GradeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.Debug("Failed to decode request", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Invalid request", StatusCode: http.StatusBadRequest})
		return req, "", false
	}
	language, err := req.validate()
	if err != nil {
		response.WriteServiceError(w, err, h.logger)
		return req, "", false
	}
	return req, language, true
}

func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	req, language, ok := h.decode(w, r)
	if !ok {
		return
	}

	result, err := h.gradingService.RunSingleTestCase(r.Context(), req.ProblemID, req.UserCode, language)
	if err != nil {
		response.WriteServiceError(w, err, h.logger)
		return
	}
	response.WriteSuccess(w, result)
}

func (h *Handler) RunAll(w http.ResponseWriter, r *http.Request) {
	req, language, ok := h.decode(w, r)
	if !ok {
		return
	}

	result, err := h.gradingService.RunAllTestCases(r.Context(), req.ProblemID, req.UserCode, language)
	if err != nil {
		response.WriteServiceError(w, err, h.logger)
		return
	}
	response.WriteSuccess(w, result)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, response.ErrorMessage{Message: "unauthorized", StatusCode: http.StatusUnauthorized})
		return
	}

	req, language, ok := h.decode(w, r)
	if !ok {
		return
	}

	submission, err := h.gradingService.SubmitSolution(r.Context(), userID, req.ProblemID, req.UserCode, language)
	if err != nil {
		response.WriteServiceError(w, err, h.logger)
		return
	}
	response.WriteSuccess(w, submission)
}
