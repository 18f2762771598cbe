package secondary

import (
	"context"

	"github.com/Mihailob5017/codegames/internal/domain"
)

// ProblemRepository returns nil, nil when the requested rows do not exist
type ProblemRepository interface {
	GetProblem(ctx context.Context, problemID string) (*domain.Problem, error)

	// GetExampleTestCase returns the first example test case of a problem
	GetExampleTestCase(ctx context.Context, problemID string) (*domain.TestCase, error)

	// GetAllTestCases returns examples and hidden cases in authoring order
	GetAllTestCases(ctx context.Context, problemID string) ([]*domain.TestCase, error)
}
