package secondary

import (
	"context"

	"github.com/Mihailob5017/codegames/internal/domain"
)

// ResultCache stores grading results of identical (problem, language, code) runs
// against an identical set of test cases
type ResultCache interface {
	// GetResult returns nil, nil on a miss
	GetResult(ctx context.Context, problemID string, language domain.Language, code string, cases []*domain.TestCase) (*domain.GradingResult, error)

	SaveResult(ctx context.Context, problemID string, language domain.Language, code string, cases []*domain.TestCase, result *domain.GradingResult) error
}
