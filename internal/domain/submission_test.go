package domain

import (
	"testing"
)

func TestCalculateScore(t *testing.T) {
	tests := []struct {
		name   string
		passed int
		total  int
		want   int
	}{
		{"all passed", 10, 10, 100},
		{"none passed", 0, 10, 0},
		{"nine of ten", 9, 10, 90},
		{"six of ten", 6, 10, 60},
		{"one of three rounds down", 1, 3, 33},
		{"two of three rounds up", 2, 3, 67},
		{"half rounds up", 1, 8, 13},
		{"no tests", 0, 0, 0},
		{"one failure in 200 rounds to full score", 199, 200, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateScore(tt.passed, tt.total)
			if got != tt.want {
				t.Errorf("CalculateScore(%d, %d) = %d, want %d", tt.passed, tt.total, got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("CalculateScore(%d, %d) = %d, out of range", tt.passed, tt.total, got)
			}
		})
	}
}

func TestCalculateScoreRange(t *testing.T) {
	for total := 1; total <= 40; total++ {
		for passed := 0; passed <= total; passed++ {
			got := CalculateScore(passed, total)
			if got < 0 || got > 100 {
				t.Fatalf("CalculateScore(%d, %d) = %d, out of range", passed, total, got)
			}
			// below 200 tests a single failure can never round up to 100
			if (got == 100) != (passed == total) {
				t.Fatalf("CalculateScore(%d, %d) = %d, full score mismatch", passed, total, got)
			}
		}
	}
}

func TestFullScoreWithoutAcceptance(t *testing.T) {
	results := make([]TestCaseResult, 200)
	for i := 1; i < len(results); i++ {
		results[i].Passed = true
	}
	g := NewGradingResult(results)
	if g.Score() != 100 || g.Status() != StatusWrongAnswer {
		t.Errorf("score/status = %d/%s, want 100/%s", g.Score(), g.Status(), StatusWrongAnswer)
	}
	if credits := CreditsFor(g.Status(), &Problem{RewardCredits: 10}); credits != 0 {
		t.Errorf("credits = %d, want 0 for a run that is not accepted", credits)
	}
}

func TestDetermineStatus(t *testing.T) {
	tests := []struct {
		name    string
		results []TestCaseResult
		want    SubmissionStatus
	}{
		{
			name:    "all passed",
			results: []TestCaseResult{{Passed: true}, {Passed: true}},
			want:    StatusAccepted,
		},
		{
			name:    "one failed without error",
			results: []TestCaseResult{{Passed: true}, {Passed: false}},
			want:    StatusWrongAnswer,
		},
		{
			name:    "one failed with error",
			results: []TestCaseResult{{Passed: true}, {Passed: false, Error: "boom"}},
			want:    StatusRuntimeError,
		},
		{
			name:    "timeout counts as error",
			results: []TestCaseResult{{Passed: false, Error: "Execution timeout exceeded"}},
			want:    StatusRuntimeError,
		},
		{
			name:    "no results",
			results: nil,
			want:    StatusWrongAnswer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineStatus(tt.results); got != tt.want {
				t.Errorf("DetermineStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewSubmission(t *testing.T) {
	problem := &Problem{ID: "two-sum", RewardCredits: 25}

	accepted := NewGradingResult([]TestCaseResult{
		{Passed: true, ExecutionTimeMs: 10, MemoryUsedKB: 2048},
		{Passed: true, ExecutionTimeMs: 15, MemoryUsedKB: 4096},
	})
	s := NewSubmission("user-1", problem, "code", LanguagePython, accepted)
	if s.Status != StatusAccepted {
		t.Errorf("Status = %v, want %v", s.Status, StatusAccepted)
	}
	if s.Score != 100 {
		t.Errorf("Score = %d, want 100", s.Score)
	}
	if s.CreditsEarned != 25 {
		t.Errorf("CreditsEarned = %d, want 25", s.CreditsEarned)
	}
	if s.ExecutionTimeMs != 25 {
		t.Errorf("ExecutionTimeMs = %d, want 25", s.ExecutionTimeMs)
	}
	if s.MemoryUsed != 4096 {
		t.Errorf("MemoryUsed = %d, want 4096", s.MemoryUsed)
	}
	if s.ErrorMessage != nil {
		t.Errorf("ErrorMessage = %q, want nil", *s.ErrorMessage)
	}

	failed := NewGradingResult([]TestCaseResult{
		{Passed: true},
		{Passed: false, Error: "ZeroDivisionError: division by zero"},
	})
	s = NewSubmission("user-1", problem, "code", LanguagePython, failed)
	if s.Status != StatusRuntimeError {
		t.Errorf("Status = %v, want %v", s.Status, StatusRuntimeError)
	}
	if s.Score != 50 {
		t.Errorf("Score = %d, want 50", s.Score)
	}
	if s.CreditsEarned != 0 {
		t.Errorf("CreditsEarned = %d, want 0", s.CreditsEarned)
	}
	if s.ErrorMessage == nil || *s.ErrorMessage != "ZeroDivisionError: division by zero" {
		t.Errorf("ErrorMessage = %v, want the first case error", s.ErrorMessage)
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in     string
		want   Language
		wantOK bool
	}{
		{"javascript", LanguageJavaScript, true},
		{"JS", LanguageJavaScript, true},
		{" python ", LanguagePython, true},
		{"python3", LanguagePython, true},
		{"ruby", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseLanguage(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLanguage(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
