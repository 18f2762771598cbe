package domain

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Errors reported by the executor when it stops a program itself
const (
	ExecutionTimeoutError   = "Execution timeout exceeded"
	ExecutionCancelledError = "Execution cancelled"
)

// ExecutionRequest describes one subprocess run
type ExecutionRequest struct {
	SourceCode  string   `json:"sourceCode"`
	Language    Language `json:"language"`
	Stdin       string   `json:"stdin,omitempty"`
	TimeLimitMs int      `json:"timeLimitMs"`
}

// ExecutionResult is produced once per subprocess run. Success reflects the
// exit status, not the correctness of the output.
type ExecutionResult struct {
	Success         bool   `json:"success"`
	Stdout          string `json:"stdout,omitempty"`
	Stderr          string `json:"stderr,omitempty"`
	Error           string `json:"error,omitempty"`
	ExecutionTimeMs int64  `json:"executionTimeMs"`
	MemoryUsedKB    int64  `json:"memoryUsedKb,omitempty"`
}

// TestCaseResult represents the result of a single test case execution
type TestCaseResult struct {
	TestCaseID      uuid.UUID       `json:"testCaseId"`
	Passed          bool            `json:"passed"`
	Input           string          `json:"input,omitempty"`
	ExpectedOutput  string          `json:"expectedOutput,omitempty"`
	ActualOutput    json.RawMessage `json:"actualOutput,omitempty"`
	ExecutionTimeMs int64           `json:"executionTimeMs"`
	MemoryUsedKB    int64           `json:"memoryUsedKb,omitempty"`
	Error           string          `json:"error,omitempty"`
	Hidden          bool            `json:"hidden,omitempty"`
}

// GradingResult aggregates every test case of a problem
type GradingResult struct {
	Success                bool             `json:"success"`
	TotalTests             int              `json:"totalTests"`
	PassedTests            int              `json:"passedTests"`
	TestResults            []TestCaseResult `json:"testResults"`
	OverallExecutionTimeMs int64            `json:"overallExecutionTimeMs"`
}

// NewGradingResult aggregates per-case results, keeping their order
func NewGradingResult(results []TestCaseResult) *GradingResult {
	g := &GradingResult{
		TotalTests:  len(results),
		TestResults: results,
	}
	for _, r := range results {
		if r.Passed {
			g.PassedTests++
		}
		g.OverallExecutionTimeMs += r.ExecutionTimeMs
	}
	g.Success = g.TotalTests > 0 && g.PassedTests == g.TotalTests
	return g
}

// Score is round(passed/total*100)
func (g *GradingResult) Score() int {
	return CalculateScore(g.PassedTests, g.TotalTests)
}

// Status derives the submission status from the per-case results
func (g *GradingResult) Status() SubmissionStatus {
	return DetermineStatus(g.TestResults)
}

// PeakMemoryKB returns the largest memory reading over all cases
func (g *GradingResult) PeakMemoryKB() int64 {
	var peak int64
	for _, r := range g.TestResults {
		if r.MemoryUsedKB > peak {
			peak = r.MemoryUsedKB
		}
	}
	return peak
}

// Transient reports whether some case was stopped by the executor rather than
// finishing on its own
func (g *GradingResult) Transient() bool {
	for _, r := range g.TestResults {
		if r.Error == ExecutionTimeoutError || r.Error == ExecutionCancelledError {
			return true
		}
	}
	return false
}

// FirstError returns the first per-case error message, if any
func (g *GradingResult) FirstError() string {
	for _, r := range g.TestResults {
		if r.Error != "" {
			return r.Error
		}
	}
	return ""
}
