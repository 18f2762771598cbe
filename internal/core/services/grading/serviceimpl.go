package grading

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Mihailob5017/codegames/internal/adapter/metrics"
	"github.com/Mihailob5017/codegames/internal/config"
	"github.com/Mihailob5017/codegames/internal/core/ports/primary"
	"github.com/Mihailob5017/codegames/internal/core/ports/secondary"
	"github.com/Mihailob5017/codegames/internal/core/services/harness"
	"github.com/Mihailob5017/codegames/internal/core/services/screening"
	"github.com/Mihailob5017/codegames/internal/domain"
	"github.com/Mihailob5017/codegames/internal/static/errs"
)

var _ IGradingService = (*GradingService)(nil)

type Options struct {
	// MaxParallelTests bounds how many test cases of one request run at once
	MaxParallelTests int
	// DefaultTimeLimitMs applies to Execute requests without a limit
	DefaultTimeLimitMs int
}

func OptionsFromConfig(grading *config.GradingConfig, sandbox *config.SandboxConfig) Options {
	return Options{
		MaxParallelTests:   grading.MaxParallelTests,
		DefaultTimeLimitMs: sandbox.DefaultTimeLimitMs,
	}
}

type GradingService struct {
	problems    secondary.ProblemRepository
	submissions secondary.SubmissionRepository
	cache       secondary.ResultCache
	screener    screening.IScreeningService
	builder     harness.IHarnessService
	executor    secondary.CodeExecutor
	logger      primary.Logger
	opts        Options
}

func NewGradingService(
	problems secondary.ProblemRepository,
	submissions secondary.SubmissionRepository,
	screener screening.IScreeningService,
	builder harness.IHarnessService,
	executor secondary.CodeExecutor,
	logger primary.Logger,
	opts Options,
) *GradingService {
	if opts.MaxParallelTests <= 0 {
		opts.MaxParallelTests = 1
	}
	if opts.DefaultTimeLimitMs <= 0 {
		opts.DefaultTimeLimitMs = domain.DefaultTimeLimitMs
	}
	return &GradingService{
		problems:    problems,
		submissions: submissions,
		screener:    screener,
		builder:     builder,
		executor:    executor,
		logger:      logger,
		opts:        opts,
	}
}

// SetResultCache enables caching of RunAllTestCases results
func (s *GradingService) SetResultCache(cache secondary.ResultCache) {
	s.cache = cache
}

func (s *GradingService) RunSingleTestCase(ctx context.Context, problemID, code string, language domain.Language) (*domain.TestCaseResult, error) {
	if err := s.screen(code, language, true); err != nil {
		return nil, err
	}

	if _, err := s.loadProblem(ctx, problemID); err != nil {
		return nil, err
	}
	tc, err := s.problems.GetExampleTestCase(ctx, problemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load example test case: %w", err)
	}
	if tc == nil {
		return nil, fmt.Errorf("%w: problem %s has no example test case", errs.ErrNotFound, problemID)
	}

	s.logger.Debug("Running example test case", "problemId", problemID, "language", language)

	result := s.gradeCase(ctx, code, language, tc)
	metrics.GradingRuns.WithLabelValues("run", passLabel(result.Passed)).Inc()
	if result.Hidden {
		maskCase(&result)
	}
	return &result, nil
}

func (s *GradingService) RunAllTestCases(ctx context.Context, problemID, code string, language domain.Language) (*domain.GradingResult, error) {
	_, result, err := s.runAll(ctx, problemID, code, language)
	if err != nil {
		return nil, err
	}
	metrics.GradingRuns.WithLabelValues("run_all", passLabel(result.Success)).Inc()
	return maskHidden(result), nil
}

func (s *GradingService) SubmitSolution(ctx context.Context, userID, problemID, code string, language domain.Language) (*domain.Submission, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user id", errs.ErrInvalidRequest)
	}

	problem, result, err := s.runAll(ctx, problemID, code, language)
	if err != nil {
		return nil, err
	}

	candidate := domain.NewSubmission(userID, problem, code, language, result)
	metrics.GradingRuns.WithLabelValues("submit", string(candidate.Status)).Inc()

	s.logger.Info("Graded submission",
		"userId", userID,
		"problemId", problemID,
		"status", candidate.Status,
		"score", candidate.Score)

	saved, err := s.saveBest(ctx, candidate)
	if err != nil {
		s.logger.Error("Failed to persist submission", "userId", userID, "problemId", problemID, "error", err)
		return nil, err
	}
	return saved, nil
}

func (s *GradingService) Execute(ctx context.Context, req domain.ExecutionRequest) (*domain.ExecutionResult, error) {
	if err := s.screen(req.SourceCode, req.Language, false); err != nil {
		return nil, err
	}
	if req.TimeLimitMs <= 0 {
		req.TimeLimitMs = s.opts.DefaultTimeLimitMs
	}

	result := s.executor.Run(ctx, req)
	metrics.GradingRuns.WithLabelValues("execute", passLabel(result.Success)).Inc()
	return &result, nil
}

// screen rejects code before anything is loaded or spawned. The entry point
// check only applies to graded code.
func (s *GradingService) screen(code string, language domain.Language, graded bool) error {
	var err error
	if graded {
		err = s.screener.ValidateCodeSecurity(code, language)
	} else {
		err = s.screener.ValidateScript(code, language)
	}
	if err == nil {
		return nil
	}

	var violation *domain.SecurityViolation
	if errors.As(err, &violation) {
		metrics.ScreeningRejections.WithLabelValues(string(language), string(violation.Category)).Inc()
		s.logger.Info("Rejected code", "language", language, "category", violation.Category, "reason", violation.Description)
	}
	return err
}

func (s *GradingService) loadProblem(ctx context.Context, problemID string) (*domain.Problem, error) {
	problem, err := s.problems.GetProblem(ctx, problemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load problem: %w", err)
	}
	if problem == nil {
		return nil, fmt.Errorf("%w: problem %s", errs.ErrNotFound, problemID)
	}
	return problem, nil
}

// runAll returns the unmasked result; callers decide what leaves the service
func (s *GradingService) runAll(ctx context.Context, problemID, code string, language domain.Language) (*domain.Problem, *domain.GradingResult, error) {
	if err := s.screen(code, language, true); err != nil {
		return nil, nil, err
	}

	problem, err := s.loadProblem(ctx, problemID)
	if err != nil {
		return nil, nil, err
	}
	cases, err := s.problems.GetAllTestCases(ctx, problemID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load test cases: %w", err)
	}
	if len(cases) == 0 {
		return nil, nil, fmt.Errorf("%w: problem %s has no test cases", errs.ErrNotFound, problemID)
	}

	if cached := s.cachedResult(ctx, problemID, code, language, cases); cached != nil {
		return problem, cached, nil
	}

	results := make([]domain.TestCaseResult, len(cases))
	var g errgroup.Group
	g.SetLimit(s.opts.MaxParallelTests)
	for i, tc := range cases {
		i, tc := i, tc
		g.Go(func() error {
			results[i] = s.gradeCase(ctx, code, language, tc)
			return nil
		})
	}
	_ = g.Wait()

	result := domain.NewGradingResult(results)
	s.logger.Debug("Graded test cases",
		"problemId", problemID,
		"passed", result.PassedTests,
		"total", result.TotalTests,
		"timeMs", result.OverallExecutionTimeMs)

	if ctx.Err() == nil && !result.Transient() {
		s.storeResult(ctx, problemID, code, language, cases, result)
	}
	return problem, result, nil
}

// gradeCase never fails: every problem with the run is reported on the result
func (s *GradingService) gradeCase(ctx context.Context, code string, language domain.Language, tc *domain.TestCase) domain.TestCaseResult {
	result := domain.TestCaseResult{
		TestCaseID:     tc.ID,
		Input:          tc.Input,
		ExpectedOutput: tc.ExpectedOutput,
		Hidden:         tc.IsHidden,
	}

	program, err := s.builder.Build(code, tc, language)
	if err != nil {
		s.logger.Warn("Failed to build harness", "testCaseId", tc.ID, "error", err)
		result.Error = err.Error()
		return result
	}

	run := s.executor.Run(ctx, domain.ExecutionRequest{
		SourceCode:  program,
		Language:    language,
		TimeLimitMs: tc.TimeLimitMs(),
	})
	result.ExecutionTimeMs = run.ExecutionTimeMs
	result.MemoryUsedKB = run.MemoryUsedKB

	if !run.Success {
		result.Error = run.Error
		return result
	}

	verdict, err := harness.ParseVerdict(run.Stdout)
	if err != nil {
		result.Error = fmt.Sprintf("failed to parse program output: %v", err)
		return result
	}

	result.ActualOutput = verdict.Output
	result.Passed = verdict.Success && verdict.Passed
	if !verdict.Success {
		result.Error = verdict.Error
		if result.Error == "" {
			result.Error = "solution raised an error"
		}
	}
	return result
}

func (s *GradingService) cachedResult(ctx context.Context, problemID, code string, language domain.Language, cases []*domain.TestCase) *domain.GradingResult {
	if s.cache == nil {
		return nil
	}
	cached, err := s.cache.GetResult(ctx, problemID, language, code, cases)
	if err != nil {
		metrics.ResultCacheLookups.WithLabelValues("error").Inc()
		s.logger.Warn("Failed to read cached result", "problemId", problemID, "error", err)
		return nil
	}
	if cached == nil {
		metrics.ResultCacheLookups.WithLabelValues("miss").Inc()
		return nil
	}
	metrics.ResultCacheLookups.WithLabelValues("hit").Inc()
	return cached
}

func (s *GradingService) storeResult(ctx context.Context, problemID, code string, language domain.Language, cases []*domain.TestCase, result *domain.GradingResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SaveResult(ctx, problemID, language, code, cases, result); err != nil {
		s.logger.Warn("Failed to cache result", "problemId", problemID, "error", err)
	}
}

func passLabel(ok bool) string {
	if ok {
		return "passed"
	}
	return "failed"
}
