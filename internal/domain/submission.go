package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus is the final verdict stored with a submission
type SubmissionStatus string

const (
	StatusAccepted     SubmissionStatus = "accepted"
	StatusWrongAnswer  SubmissionStatus = "wrong_answer"
	StatusRuntimeError SubmissionStatus = "runtime_error"
)

// Submission is the best graded attempt of a user on a problem
type Submission struct {
	ID              uuid.UUID        `db:"id" json:"id"`
	UserID          string           `db:"user_id" json:"userId"`
	ProblemID       string           `db:"problem_id" json:"problemId"`
	Code            string           `db:"code" json:"code"`
	Language        Language         `db:"language" json:"language"`
	Status          SubmissionStatus `db:"status" json:"status"`
	ExecutionTimeMs int64            `db:"execution_time_ms" json:"executionTimeMs"`
	MemoryUsed      int64            `db:"memory_used" json:"memoryUsed"`
	Score           int              `db:"score" json:"score"`
	TestCasesPassed int              `db:"test_cases_passed" json:"testCasesPassed"`
	TotalTestCases  int              `db:"total_test_cases" json:"totalTestCases"`
	ErrorMessage    *string          `db:"error_message" json:"errorMessage,omitempty"`
	CreditsEarned   int              `db:"credits_earned" json:"creditsEarned"`
	SubmittedAt     time.Time        `db:"submitted_at" json:"submittedAt"`
}

type SubmissionTable struct {
	ID              string
	UserID          string
	ProblemID       string
	Code            string
	Language        string
	Status          string
	ExecutionTimeMs string
	MemoryUsed      string
	Score           string
	TestCasesPassed string
	TotalTestCases  string
	ErrorMessage    string
	CreditsEarned   string
	SubmittedAt     string
}

func GetSubmissionTable() SubmissionTable {
	return SubmissionTable{
		ID:              "id",
		UserID:          "user_id",
		ProblemID:       "problem_id",
		Code:            "code",
		Language:        "language",
		Status:          "status",
		ExecutionTimeMs: "execution_time_ms",
		MemoryUsed:      "memory_used",
		Score:           "score",
		TestCasesPassed: "test_cases_passed",
		TotalTestCases:  "total_test_cases",
		ErrorMessage:    "error_message",
		CreditsEarned:   "credits_earned",
		SubmittedAt:     "submitted_at",
	}
}

func (SubmissionTable) TableName() string {
	return "submissions"
}

// Columns lists every column in the order used for inserts and scans
func (t SubmissionTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.ProblemID, t.Code, t.Language, t.Status,
		t.ExecutionTimeMs, t.MemoryUsed, t.Score, t.TestCasesPassed,
		t.TotalTestCases, t.ErrorMessage, t.CreditsEarned, t.SubmittedAt,
	}
}

// CalculateScore returns round(passed/total*100), 0 when there are no tests.
// From 200 tests upward a single failure still rounds to 100; the status, not
// the score, tells such a run apart from an accepted one.
func CalculateScore(passed, total int) int {
	if total <= 0 || passed <= 0 {
		return 0
	}
	if passed >= total {
		return 100
	}
	return int(math.Round(float64(passed) / float64(total) * 100))
}

// DetermineStatus: accepted when everything passed, runtime_error when some
// case carries an error, wrong_answer otherwise
func DetermineStatus(results []TestCaseResult) SubmissionStatus {
	allPassed := len(results) > 0
	hasError := false
	for _, r := range results {
		if !r.Passed {
			allPassed = false
		}
		if r.Error != "" {
			hasError = true
		}
	}
	switch {
	case allPassed:
		return StatusAccepted
	case hasError:
		return StatusRuntimeError
	default:
		return StatusWrongAnswer
	}
}

// CreditsFor returns the credits a submission with the given status earns
func CreditsFor(status SubmissionStatus, problem *Problem) int {
	if status != StatusAccepted || problem == nil {
		return 0
	}
	return problem.RewardCredits
}

// NewSubmission builds the candidate row for a graded attempt
func NewSubmission(userID string, problem *Problem, code string, language Language, result *GradingResult) *Submission {
	status := result.Status()
	s := &Submission{
		ID:              uuid.New(),
		UserID:          userID,
		ProblemID:       problem.ID,
		Code:            code,
		Language:        language,
		Status:          status,
		ExecutionTimeMs: result.OverallExecutionTimeMs,
		MemoryUsed:      result.PeakMemoryKB(),
		Score:           result.Score(),
		TestCasesPassed: result.PassedTests,
		TotalTestCases:  result.TotalTests,
		CreditsEarned:   CreditsFor(status, problem),
		SubmittedAt:     time.Now().UTC(),
	}
	if msg := result.FirstError(); msg != "" && status != StatusAccepted {
		s.ErrorMessage = &msg
	}
	return s
}
