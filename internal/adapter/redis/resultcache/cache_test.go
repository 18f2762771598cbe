package resultcache

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/Mihailob5017/codegames/internal/domain"
)

const code = "function solution() {}"

func twoSumCases() []*domain.TestCase {
	id := uuid.MustParse("6f1c1f84-2f0c-4a55-9d5d-3f2f5d7e0a11")
	return []*domain.TestCase{{ID: id, Input: "[2,7,11,15]\n9", ExpectedOutput: "[0,1]", TimeLimit: 1000}}
}

func TestKey(t *testing.T) {
	a := Key("two-sum", domain.LanguageJavaScript, code, twoSumCases())
	b := Key("two-sum", domain.LanguageJavaScript, code, twoSumCases())
	if a != b {
		t.Fatalf("Key is not deterministic: %q != %q", a, b)
	}
	if !strings.HasPrefix(a, "grading:result:two-sum:javascript:") {
		t.Errorf("Key = %q, want the problem and language in the prefix", a)
	}
	// 64 hex characters of blake2b-256
	if digest := a[strings.LastIndex(a, ":")+1:]; len(digest) != 64 {
		t.Errorf("digest %q has length %d, want 64", digest, len(digest))
	}
}

func TestKeyChangesWithInputs(t *testing.T) {
	base := Key("two-sum", domain.LanguageJavaScript, code, twoSumCases())

	edit := func(f func(tc *domain.TestCase)) []*domain.TestCase {
		cases := twoSumCases()
		f(cases[0])
		return cases
	}
	added := append(twoSumCases(), &domain.TestCase{ID: uuid.New(), Input: "1", ExpectedOutput: "1"})

	tests := []struct {
		name string
		key  string
	}{
		{"code", Key("two-sum", domain.LanguageJavaScript, "function solution() { }", twoSumCases())},
		{"language", Key("two-sum", domain.LanguagePython, code, twoSumCases())},
		{"problem", Key("three-sum", domain.LanguageJavaScript, code, twoSumCases())},
		{"expected output", Key("two-sum", domain.LanguageJavaScript, code, edit(func(tc *domain.TestCase) { tc.ExpectedOutput = "[1,0]" }))},
		{"input", Key("two-sum", domain.LanguageJavaScript, code, edit(func(tc *domain.TestCase) { tc.Input = "[3,3]\n6" }))},
		{"hidden flag", Key("two-sum", domain.LanguageJavaScript, code, edit(func(tc *domain.TestCase) { tc.IsHidden = true }))},
		{"time limit", Key("two-sum", domain.LanguageJavaScript, code, edit(func(tc *domain.TestCase) { tc.TimeLimit = 2000 }))},
		{"added case", Key("two-sum", domain.LanguageJavaScript, code, added)},
		{"no cases", Key("two-sum", domain.LanguageJavaScript, code, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.key == base {
				t.Errorf("changing the %s kept key %q", tt.name, base)
			}
		})
	}
}

func TestKeyFieldsDoNotRunTogether(t *testing.T) {
	a := Key("p", domain.LanguagePython, "ab", []*domain.TestCase{{Input: "c"}})
	b := Key("p", domain.LanguagePython, "a", []*domain.TestCase{{Input: "bc"}})
	if a == b {
		t.Errorf("keys for shifted field boundaries collide: %q", a)
	}
}
