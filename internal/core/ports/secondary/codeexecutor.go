package secondary

import (
	"context"

	"github.com/Mihailob5017/codegames/internal/domain"
)

// CodeExecutor runs one program in a bounded subprocess.
// Execution failures are reported in the result, never as an error.
type CodeExecutor interface {
	Run(ctx context.Context, req domain.ExecutionRequest) domain.ExecutionResult
}
