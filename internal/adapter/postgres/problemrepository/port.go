package problemrepository

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

var _ secondary.ProblemRepository = &problemRepo{}

type problemRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.ProblemRepository {
	return &problemRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

func testCaseColumns() []string {
	tbl := domain.GetTestCaseTable()
	return []string{
		tbl.ID, tbl.ProblemID, tbl.Input, tbl.ExpectedOutput,
		tbl.IsExample, tbl.IsHidden, tbl.TimeLimit, tbl.MemoryLimit,
	}
}

func (r *problemRepo) GetProblem(ctx context.Context, problemID string) (*domain.Problem, error) {
	tbl := domain.GetProblemTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.ID, tbl.Title, tbl.RewardCredits).
		From(tbl.TableName()).
		Where(tbl.ID+" = ?", problemID).
		Build()

	var problem domain.Problem
	err := r.db.GetContext(ctx, &problem, sqlx.Rebind(sqlx.DOLLAR, query), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get problem", "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}
	return &problem, nil
}

func (r *problemRepo) GetExampleTestCase(ctx context.Context, problemID string) (*domain.TestCase, error) {
	tbl := domain.GetTestCaseTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(testCaseColumns()...).
		From(tbl.TableName()).
		Where(tbl.ProblemID+" = ?", problemID).
		And(tbl.IsExample+" = ?", true).
		OrderBy(tbl.Position, true).
		Limit(1).
		Build()

	var tc domain.TestCase
	err := r.db.GetContext(ctx, &tc, sqlx.Rebind(sqlx.DOLLAR, query), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get example test case", "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to get example test case: %w", err)
	}
	return &tc, nil
}

func (r *problemRepo) GetAllTestCases(ctx context.Context, problemID string) ([]*domain.TestCase, error) {
	tbl := domain.GetTestCaseTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(testCaseColumns()...).
		From(tbl.TableName()).
		Where(tbl.ProblemID+" = ?", problemID).
		OrderBy(tbl.Position, true).
		Build()

	var cases []*domain.TestCase
	if err := r.db.SelectContext(ctx, &cases, sqlx.Rebind(sqlx.DOLLAR, query), args...); err != nil {
		r.logger.Error("Failed to get test cases", "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to get test cases: %w", err)
	}
	return cases, nil
}
