package grading

import (
	"context"
	"fmt"

	"github.com/Mihailob5017/codegames/internal/domain"
	"github.com/Mihailob5017/codegames/internal/static/errs"
)

// saveBest stores candidate when the user has no submission for the problem
// yet, or when it scores strictly higher than the stored one. Otherwise the
// stored submission is returned unchanged.
func (s *GradingService) saveBest(ctx context.Context, candidate *domain.Submission) (*domain.Submission, error) {
	existing, err := s.submissions.FindSubmission(ctx, candidate.UserID, candidate.ProblemID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find submission: %w", errs.ErrPersistence, err)
	}

	if existing == nil {
		created, err := s.submissions.CreateSubmission(ctx, candidate)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to create submission: %w", errs.ErrPersistence, err)
		}
		if created != nil {
			return created, nil
		}

		// a concurrent request inserted first
		existing, err = s.reread(ctx, candidate)
		if err != nil {
			return nil, err
		}
	}

	if candidate.Score <= existing.Score {
		s.logger.Debug("Keeping best submission",
			"userId", candidate.UserID,
			"problemId", candidate.ProblemID,
			"stored", existing.Score,
			"candidate", candidate.Score)
		return existing, nil
	}

	updated, err := s.submissions.UpdateSubmission(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to update submission: %w", errs.ErrPersistence, err)
	}
	if updated != nil {
		return updated, nil
	}

	// a concurrent request stored an equal or better score
	return s.reread(ctx, candidate)
}

func (s *GradingService) reread(ctx context.Context, candidate *domain.Submission) (*domain.Submission, error) {
	stored, err := s.submissions.FindSubmission(ctx, candidate.UserID, candidate.ProblemID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find submission: %w", errs.ErrPersistence, err)
	}
	if stored == nil {
		return nil, fmt.Errorf("%w: submission for user %s and problem %s disappeared", errs.ErrPersistence, candidate.UserID, candidate.ProblemID)
	}
	return stored, nil
}
