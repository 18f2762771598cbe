package domain

import "github.com/google/uuid"

const (
	DefaultTimeLimitMs   = 2000
	DefaultMemoryLimitMB = 128
)

// TestCase is an input/expected-output pair with its own time and memory budget.
// Input and ExpectedOutput hold the stored text: a JSON value, or for Input a
// newline-delimited list of JSON values (one per positional argument).
type TestCase struct {
	ID             uuid.UUID `db:"id" json:"id"`
	ProblemID      string    `db:"problem_id" json:"problemId"`
	Input          string    `db:"input" json:"input"`
	ExpectedOutput string    `db:"expected_output" json:"expectedOutput"`
	IsExample      bool      `db:"is_example" json:"isExample"`
	IsHidden       bool      `db:"is_hidden" json:"isHidden"`
	TimeLimit      int       `db:"time_limit" json:"timeLimit"`
	MemoryLimit    int       `db:"memory_limit" json:"memoryLimit"`
}

// TimeLimitMs returns the configured limit or the default when unset
func (t *TestCase) TimeLimitMs() int {
	if t.TimeLimit <= 0 {
		return DefaultTimeLimitMs
	}
	return t.TimeLimit
}

type TestCaseTable struct {
	ID             string
	ProblemID      string
	Input          string
	ExpectedOutput string
	IsExample      string
	IsHidden       string
	TimeLimit      string
	MemoryLimit    string
	Position       string
}

func GetTestCaseTable() TestCaseTable {
	return TestCaseTable{
		ID:             "id",
		ProblemID:      "problem_id",
		Input:          "input",
		ExpectedOutput: "expected_output",
		IsExample:      "is_example",
		IsHidden:       "is_hidden",
		TimeLimit:      "time_limit",
		MemoryLimit:    "memory_limit",
		Position:       "position",
	}
}

func (TestCaseTable) TableName() string {
	return "test_cases"
}
