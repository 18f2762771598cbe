package secondary

import (
	"context"

	"github.com/Mihailob5017/codegames/internal/domain"
)

type SubmissionRepository interface {
	// FindSubmission returns nil, nil when the user has no submission for the problem
	FindSubmission(ctx context.Context, userID, problemID string) (*domain.Submission, error)

	// CreateSubmission inserts the row unless one already exists for (user, problem).
	// It returns nil, nil when the insert lost to an existing row.
	CreateSubmission(ctx context.Context, submission *domain.Submission) (*domain.Submission, error)

	// UpdateSubmission replaces the stored row for (user, problem) only when the
	// candidate score is strictly greater. It returns nil, nil when nothing changed.
	UpdateSubmission(ctx context.Context, submission *domain.Submission) (*domain.Submission, error)
}
