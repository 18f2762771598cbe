package submissionrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Mihailob5017/codegames/internal/core/ports/primary"
	"github.com/Mihailob5017/codegames/internal/core/ports/secondary"
	"github.com/Mihailob5017/codegames/internal/domain"
	querybuilder "github.com/Mihailob5017/codegames/internal/utils"
)

var _ secondary.SubmissionRepository = &submissionRepo{}

type submissionRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.SubmissionRepository {
	return &submissionRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func (r *submissionRepo) FindSubmission(ctx context.Context, userID, problemID string) (*domain.Submission, error) {
	query, args := findQuery(r.schema, userID, problemID)

	var s domain.Submission
	err := r.db.GetContext(ctx, &s, sqlx.Rebind(sqlx.DOLLAR, query), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to find submission", "userId", userID, "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	return &s, nil
}

// CreateSubmission relies on the (user_id, problem_id) unique constraint: when
// another request already inserted the row nothing is returned
func (r *submissionRepo) CreateSubmission(ctx context.Context, s *domain.Submission) (*domain.Submission, error) {
	query, args := createQuery(r.schema, s)
	return r.returningOne(ctx, "create", query, args)
}

// UpdateSubmission only touches the row while the stored score is lower than
// the candidate's, so concurrent updates cannot lower the best score
func (r *submissionRepo) UpdateSubmission(ctx context.Context, s *domain.Submission) (*domain.Submission, error) {
	query, args := updateQuery(r.schema, s)
	return r.returningOne(ctx, "update", query, args)
}

func (r *submissionRepo) returningOne(ctx context.Context, op, query string, args []interface{}) (*domain.Submission, error) {
	var saved domain.Submission
	err := r.db.GetContext(ctx, &saved, sqlx.Rebind(sqlx.DOLLAR, query), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to "+op+" submission", "error", err)
		return nil, fmt.Errorf("failed to %s submission: %w", op, err)
	}
	return &saved, nil
}

func findQuery(schema, userID, problemID string) (string, []interface{}) {
	tbl := domain.GetSubmissionTable()
	return querybuilder.NewQueryBuilder(schema).
		Select(tbl.Columns()...).
		From(tbl.TableName()).
		Where(tbl.UserID+" = ?", userID).
		And(tbl.ProblemID+" = ?", problemID).
		Build()
}

func createQuery(schema string, s *domain.Submission) (string, []interface{}) {
	tbl := domain.GetSubmissionTable()
	return querybuilder.NewQueryBuilder(schema).
		Insert(tbl.Columns()...).
		Into(tbl.TableName()).
		Values(
			s.ID, s.UserID, s.ProblemID, s.Code, s.Language, s.Status,
			s.ExecutionTimeMs, s.MemoryUsed, s.Score, s.TestCasesPassed,
			s.TotalTestCases, s.ErrorMessage, s.CreditsEarned, s.SubmittedAt,
		).
		OnConflict(tbl.UserID, tbl.ProblemID).
		DoNothing().
		Returning(tbl.Columns()...).
		Build()
}

// updateQuery keeps the row id and owner; everything describing the attempt is replaced
func updateQuery(schema string, s *domain.Submission) (string, []interface{}) {
	tbl := domain.GetSubmissionTable()
	return querybuilder.NewQueryBuilder(schema).
		Update(tbl.TableName(), querybuilder.UpdateData{
			tbl.Code:            s.Code,
			tbl.Language:        s.Language,
			tbl.Status:          s.Status,
			tbl.ExecutionTimeMs: s.ExecutionTimeMs,
			tbl.MemoryUsed:      s.MemoryUsed,
			tbl.Score:           s.Score,
			tbl.TestCasesPassed: s.TestCasesPassed,
			tbl.TotalTestCases:  s.TotalTestCases,
			tbl.ErrorMessage:    s.ErrorMessage,
			tbl.CreditsEarned:   s.CreditsEarned,
			tbl.SubmittedAt:     s.SubmittedAt,
		}).
		Where(tbl.UserID+" = ?", s.UserID).
		And(tbl.ProblemID+" = ?", s.ProblemID).
		And(tbl.Score+" < ?", s.Score).
		Returning(tbl.Columns()...).
		Build()
}
