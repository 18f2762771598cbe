package grading

import (
	"fmt"
	"strings"

	"github.com/Mihailob5017/codegames/internal/domain"
	"github.com/Mihailob5017/codegames/internal/static/errs"
)

// GradeRequest is the body of every grading endpoint
type GradeRequest struct {
	ProblemID string `json:"problemId"`
	UserCode  string `json:"userCode"`
	Language  string `json:"language"`
}

func (r GradeRequest) validate() (domain.Language, error) {
	if strings.TrimSpace(r.ProblemID) == "" {
		return "", fmt.Errorf("%w: problemId is required", errs.ErrInvalidRequest)
	}
	language, ok := domain.ParseLanguage(r.Language)
	if !ok {
		return "", fmt.Errorf("%w: %q", errs.ErrUnsupportedLanguage, r.Language)
	}
	return language, nil
}
