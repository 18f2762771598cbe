package harness

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNoVerdict = errors.New("program produced no output")

// Verdict is the single JSON line a harness program prints
type Verdict struct {
	Success  bool            `json:"success"`
	Output   json.RawMessage `json:"output"`
	Expected json.RawMessage `json:"expected"`
	Passed   bool            `json:"passed"`
	Error    string          `json:"error,omitempty"`
}

// ParseVerdict reads the verdict from the last non-empty stdout line, so
// anything the user code printed before it is ignored
func ParseVerdict(stdout string) (*Verdict, error) {
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" {
		return nil, ErrNoVerdict
	}

	var raw struct {
		Verdict
		Passed *bool `json:"passed"`
	}
	if err := json.Unmarshal([]byte(last), &raw); err != nil {
		return nil, fmt.Errorf("malformed program output: %w", err)
	}
	if raw.Passed == nil {
		return nil, fmt.Errorf("malformed program output: missing verdict in %q", truncate(last, 80))
	}

	v := raw.Verdict
	v.Passed = *raw.Passed
	if string(v.Output) == "null" {
		v.Output = nil
	}
	return &v, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
