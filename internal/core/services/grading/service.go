package grading

import (
	"context"

	"github.com/Mihailob5017/codegames/internal/domain"
)

// IGradingService drives screening, harness building and execution for
// problem test cases, and keeps the best submission per user and problem
type IGradingService interface {
	// RunSingleTestCase grades code against the problem's example test case
	RunSingleTestCase(ctx context.Context, problemID, code string, language domain.Language) (*domain.TestCaseResult, error)

	// RunAllTestCases grades code against every test case of the problem
	RunAllTestCases(ctx context.Context, problemID, code string, language domain.Language) (*domain.GradingResult, error)

	// SubmitSolution grades code and stores it when it beats the user's best score
	SubmitSolution(ctx context.Context, userID, problemID, code string, language domain.Language) (*domain.Submission, error)

	// Execute runs a standalone script without a harness
	Execute(ctx context.Context, req domain.ExecutionRequest) (*domain.ExecutionResult, error)
}
