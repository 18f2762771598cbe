package screening

import (
	"errors"
	"strings"
	"testing"

	"github.com/Mihailob5017/codegames/internal/domain"
	"github.com/Mihailob5017/codegames/internal/static/errs"
)

const jsTwoSum = `function solution(nums, target) {
  const seen = new Map();
  for (let i = 0; i < nums.length; i++) {
    const need = target - nums[i];
    if (seen.has(need)) {
      return [seen.get(need), i];
    }
    seen.set(nums[i], i);
  }
  return [];
}`

const pyTwoSum = `from collections import defaultdict
import math

def solution(nums, target):
    seen = {}
    for i, n in enumerate(nums):
        if target - n in seen:
            return [seen[target - n], i]
        seen[n] = i
    return []
`

func violationCategory(t *testing.T, err error) domain.ViolationCategory {
	t.Helper()
	var v *domain.SecurityViolation
	if !errors.As(err, &v) {
		t.Fatalf("error = %v, want a *domain.SecurityViolation", err)
	}
	return v.Category
}

func TestValidateCodeSecurityAcceptsOrdinarySolutions(t *testing.T) {
	s := NewScreener(DefaultLimits())

	tests := []struct {
		name     string
		source   string
		language domain.Language
	}{
		{"javascript two sum", jsTwoSum, domain.LanguageJavaScript},
		{"javascript one liner", "function solution(nums, target){return [0,1];}", domain.LanguageJavaScript},
		{"javascript arrow", "const solution = (a, b) => a + b;", domain.LanguageJavaScript},
		{"javascript module exports", "function solution(s) { return s.split('').reverse().join(''); }\nmodule.exports = solution;", domain.LanguageJavaScript},
		{"python two sum", pyTwoSum, domain.LanguagePython},
		{"python regex compile", "import re\n\ndef solution(s):\n    return bool(re.compile(r'^a+$').match(s))\n", domain.LanguagePython},
		{"python lambda", "solution = lambda a, b: a + b\n", domain.LanguagePython},
		{"python bounded while", "def solution(n):\n    i = 0\n    while i < n:\n        i += 1\n    return i\n", domain.LanguagePython},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.ValidateCodeSecurity(tt.source, tt.language); err != nil {
				t.Errorf("ValidateCodeSecurity() = %v, want nil", err)
			}
		})
	}
}

func TestValidateCodeSecurityRejects(t *testing.T) {
	s := NewScreener(DefaultLimits())

	tests := []struct {
		name     string
		source   string
		language domain.Language
		want     domain.ViolationCategory
	}{
		{"python import os", "import os\n\ndef solution():\n    return os.listdir('.')\n", domain.LanguagePython, domain.ViolationInjection},
		{"python import list", "import math, subprocess\n\ndef solution():\n    pass\n", domain.LanguagePython, domain.ViolationInjection},
		{"python from import", "from os import path\n\ndef solution():\n    pass\n", domain.LanguagePython, domain.ViolationInjection},
		{"python dunder import", "def solution():\n    return __import__('os')\n", domain.LanguagePython, domain.ViolationInjection},
		{"python eval", "def solution(s):\n    return eval(s)\n", domain.LanguagePython, domain.ViolationInjection},
		{"python open", "def solution():\n    return open('x').read()\n", domain.LanguagePython, domain.ViolationInjection},
		{"python subclasses", "def solution():\n    return ().__class__.__bases__[0].__subclasses__()\n", domain.LanguagePython, domain.ViolationInjection},
		{"javascript require fs", "const fs = require('fs');\nfunction solution() { return 1; }", domain.LanguageJavaScript, domain.ViolationInjection},
		{"javascript process", "function solution() { process.exit(1); }", domain.LanguageJavaScript, domain.ViolationInjection},
		{"javascript eval", "function solution(s) { return eval(s); }", domain.LanguageJavaScript, domain.ViolationInjection},
		{"javascript new Function", "function solution(s) { return new Function(s)(); }", domain.LanguageJavaScript, domain.ViolationInjection},
		{"javascript constructor escape", "function solution() { return [].constructor.constructor('return 1')(); }", domain.LanguageJavaScript, domain.ViolationInjection},
		{"javascript fetch", "function solution() { fetch('http://example.com'); }", domain.LanguageJavaScript, domain.ViolationInjection},
		{"python while true", "while True:\n    pass", domain.LanguagePython, domain.ViolationDoS},
		{"python while paren", "def solution():\n    while (1):\n        pass\n", domain.LanguagePython, domain.ViolationDoS},
		{"python huge range", "def solution():\n    for i in range(10**9):\n        pass\n", domain.LanguagePython, domain.ViolationDoS},
		{"python huge literal range", "def solution():\n    return sum(range(1000000000))\n", domain.LanguagePython, domain.ViolationDoS},
		{"python sleep", "import time\n\ndef solution():\n    time.sleep(10)\n", domain.LanguagePython, domain.ViolationDoS},
		{"javascript while true", "function solution() { while(true) {} }", domain.LanguageJavaScript, domain.ViolationDoS},
		{"javascript empty for", "function solution() { for(;;) {} }", domain.LanguageJavaScript, domain.ViolationDoS},
		{"javascript interval", "function solution() { setInterval(() => {}, 1); }", domain.LanguageJavaScript, domain.ViolationDoS},
		{"javascript huge bound", "function solution() { for (let i = 0; i < 1e10; i++) {} }", domain.LanguageJavaScript, domain.ViolationDoS},
		{"credentials", "def solution():\n    api_key = 'x'\n    return api_key\n", domain.LanguagePython, domain.ViolationMalicious},
		{"privilege escalation", "function solution() { return 'sudo rm -rf /'; }", domain.LanguageJavaScript, domain.ViolationMalicious},
		{"sensitive path", "function solution() { return '/etc/shadow'; }", domain.LanguageJavaScript, domain.ViolationMalicious},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.ValidateCodeSecurity(tt.source, tt.language)
			if got := violationCategory(t, err); got != tt.want {
				t.Errorf("category = %v, want %v (%v)", got, tt.want, err)
			}
		})
	}
}

func TestValidateCodeSecurityReportsFirstCategory(t *testing.T) {
	s := NewScreener(DefaultLimits())

	// injection, dos and malicious all match; injection is checked first
	source := "import os\n\ndef solution():\n    password = 1\n    while True:\n        pass\n"
	if got := violationCategory(t, s.ValidateCodeSecurity(source, domain.LanguagePython)); got != domain.ViolationInjection {
		t.Errorf("category = %v, want %v", got, domain.ViolationInjection)
	}

	// dos is checked before malicious
	source = "def solution():\n    password = 1\n    while True:\n        pass\n"
	if got := violationCategory(t, s.ValidateCodeSecurity(source, domain.LanguagePython)); got != domain.ViolationDoS {
		t.Errorf("category = %v, want %v", got, domain.ViolationDoS)
	}
}

func TestValidateCodeSecurityResourceLimits(t *testing.T) {
	s := NewScreener(Limits{MaxLines: 5, MaxChars: 200, MaxLoopNesting: 3})

	tooManyLines := "def solution():\n" + strings.Repeat("    x = 1\n", 10) + "    return x\n"
	if got := violationCategory(t, s.ValidateCodeSecurity(tooManyLines, domain.LanguagePython)); got != domain.ViolationResource {
		t.Errorf("lines: category = %v, want %v", got, domain.ViolationResource)
	}

	tooManyChars := "function solution() { return '" + strings.Repeat("a", 300) + "'; }"
	if got := violationCategory(t, s.ValidateCodeSecurity(tooManyChars, domain.LanguageJavaScript)); got != domain.ViolationResource {
		t.Errorf("chars: category = %v, want %v", got, domain.ViolationResource)
	}
}

func TestValidateCodeSecurityEntryPoint(t *testing.T) {
	s := NewScreener(DefaultLimits())

	tests := []struct {
		name     string
		source   string
		language domain.Language
	}{
		{"javascript other name", "function solve(a) { return a; }", domain.LanguageJavaScript},
		{"javascript name in comment", "// solution\nfunction main() {}", domain.LanguageJavaScript},
		{"python other name", "def solve(a):\n    return a\n", domain.LanguagePython},
		{"python method only", "class A:\n    def solution(self):\n        return 1\n", domain.LanguagePython},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.ValidateCodeSecurity(tt.source, tt.language)
			if !errors.Is(err, errs.ErrMissingEntryPoint) {
				t.Errorf("ValidateCodeSecurity() = %v, want %v", err, errs.ErrMissingEntryPoint)
			}
			if !errors.Is(err, errs.ErrValidation) {
				t.Errorf("ValidateCodeSecurity() = %v, want a validation error", err)
			}
			if err := s.ValidateScript(tt.source, tt.language); err != nil {
				t.Errorf("ValidateScript() = %v, want nil", err)
			}
		})
	}
}

func TestValidateCodeSecurityInvalidInput(t *testing.T) {
	s := NewScreener(DefaultLimits())

	if err := s.ValidateCodeSecurity("   \n", domain.LanguagePython); !errors.Is(err, errs.ErrEmptySource) {
		t.Errorf("empty source: got %v, want %v", err, errs.ErrEmptySource)
	}
	if err := s.ValidateCodeSecurity("def solution(): pass", domain.Language("ruby")); !errors.Is(err, errs.ErrUnsupportedLanguage) {
		t.Errorf("unsupported language: got %v, want %v", err, errs.ErrUnsupportedLanguage)
	}
}

func TestLoopNesting(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		language domain.Language
		want     int
	}{
		{
			name:     "python flat",
			source:   "def solution(a):\n    for x in a:\n        pass\n    for y in a:\n        pass\n",
			language: domain.LanguagePython,
			want:     1,
		},
		{
			name:     "python nested three",
			source:   "def solution(a):\n    for x in a:\n        for y in a:\n            while y:\n                y -= 1\n",
			language: domain.LanguagePython,
			want:     3,
		},
		{
			name:     "python nesting with blank lines and comments",
			source:   "def solution(a):\n    for x in a:\n\n        # inner\n        for y in a:\n            pass\n    return 0\n",
			language: domain.LanguagePython,
			want:     2,
		},
		{
			name:     "javascript braced",
			source:   "function solution(a) {\n  for (let i = 0; i < a; i++) {\n    for (let j = 0; j < a; j++) {\n      if (i) { continue; }\n    }\n  }\n  while (a > 0) { a--; }\n}",
			language: domain.LanguageJavaScript,
			want:     2,
		},
		{
			name:     "javascript braceless chain",
			source:   "function solution(a) { let s = 0; for (let i = 0; i < a; i++) for (let j = 0; j < a; j++) for (let k = 0; k < a; k++) s++; return s; }",
			language: domain.LanguageJavaScript,
			want:     3,
		},
		{
			name:     "javascript do while",
			source:   "function solution(a) { do { a--; } while (a > 0); for (const x of [1]) { x; } }",
			language: domain.LanguageJavaScript,
			want:     1,
		},
		{
			name:     "javascript loops in strings and comments",
			source:   "function solution() { // for (;;) { for(;;) {} }\n  const s = 'for (x) { while (y) {} }';\n  return s; }",
			language: domain.LanguageJavaScript,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := loopNesting(tt.source, tt.language); got != tt.want {
				t.Errorf("loopNesting() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidateCodeSecurityLoopNestingLimit(t *testing.T) {
	s := NewScreener(Limits{MaxLoopNesting: 2})

	source := "def solution(a):\n    for x in a:\n        for y in a:\n            for z in a:\n                pass\n"
	if got := violationCategory(t, s.ValidateCodeSecurity(source, domain.LanguagePython)); got != domain.ViolationDoS {
		t.Errorf("category = %v, want %v", got, domain.ViolationDoS)
	}
}

func BenchmarkValidateCodeSecurity(b *testing.B) {
	s := NewScreener(DefaultLimits())
	for i := 0; i < b.N; i++ {
		_ = s.ValidateCodeSecurity(pyTwoSum, domain.LanguagePython)
	}
}
