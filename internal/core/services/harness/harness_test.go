package harness

import (
	"errors"
	"strings"
	"testing"

	"github.com/Mihailob5017/codegames/internal/domain"
	"github.com/Mihailob5017/codegames/internal/static/errs"
)

func TestResolveInput(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		shape domain.InputShape
		args  []string
	}{
		{"newline separated values", "[2,7,11,15]\n9", domain.InputPositional, []string{"[2,7,11,15]", "9"}},
		{"array is spread", "[[2,7,11,15], 9]", domain.InputPositional, []string{"[2,7,11,15]", "9"}},
		{"empty array", "[]", domain.InputPositional, []string{}},
		{"number", "42", domain.InputScalar, []string{"42"}},
		{"json string", `"hello"`, domain.InputScalar, []string{`"hello"`}},
		{"plain text", "hello world", domain.InputScalar, []string{`"hello world"`}},
		{"object", `{"a": 1}`, domain.InputScalar, []string{`{"a":1}`}},
		{"large integer keeps precision", "12345678901234567890", domain.InputScalar, []string{"12345678901234567890"}},
		{"json string with newline is split", `"1\n2"`, domain.InputPositional, []string{"1", "2"}},
		{"newline separated strings", "\"abc\"\n\"def\"", domain.InputPositional, []string{`"abc"`, `"def"`}},
		{"html characters are not escaped", `"<a&b>"`, domain.InputScalar, []string{`"<a&b>"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveInput(tt.raw)
			if err != nil {
				t.Fatalf("ResolveInput(%q) error = %v", tt.raw, err)
			}
			if got.Shape != tt.shape {
				t.Errorf("shape = %s, want %s", got.Shape, tt.shape)
			}
			if len(got.Args) != len(tt.args) {
				t.Fatalf("got %d args, want %d", len(got.Args), len(tt.args))
			}
			for i, want := range tt.args {
				if string(got.Args[i]) != want {
					t.Errorf("arg %d = %s, want %s", i, got.Args[i], want)
				}
			}
		})
	}
}

func TestResolveInputRejectsInvalidLines(t *testing.T) {
	for _, raw := range []string{"1\nnot json", "[1,2]\n{oops"} {
		if _, err := ResolveInput(raw); err == nil {
			t.Errorf("ResolveInput(%q) succeeded, want an error", raw)
		}
	}
}

func TestResolveInputEmptyLines(t *testing.T) {
	tests := []struct {
		raw  string
		line string
	}{
		{"[2,7,11,15]\n9\n", "input line 3 "},
		{"[2,7,11,15]\n\n9", "input line 2 "},
	}
	for _, tt := range tests {
		_, err := ResolveInput(tt.raw)
		if err == nil || !strings.Contains(err.Error(), tt.line) {
			t.Errorf("ResolveInput(%q) error = %v, want it to name %q", tt.raw, err, tt.line)
		}
	}
}

func TestResolveExpected(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"[0, 1]", "[0,1]"},
		{"true", "true"},
		{`"olleh"`, `"olleh"`},
		{"olleh", `"olleh"`},
		{"null", "null"},
	}
	for _, tt := range tests {
		got, err := ResolveExpected(tt.raw)
		if err != nil {
			t.Fatalf("ResolveExpected(%q) error = %v", tt.raw, err)
		}
		if string(got) != tt.want {
			t.Errorf("ResolveExpected(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestBuildJavaScript(t *testing.T) {
	code := "function solution(nums, target) { return [0, 1]; }"
	tc := &domain.TestCase{Input: "[2,7,11,15]\n9", ExpectedOutput: "[0,1]"}

	program, err := NewBuilder().Build(code, tc, domain.LanguageJavaScript)
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}

	for _, want := range []string{
		code,
		`JSON.parse("[[2,7,11,15],9]")`,
		`JSON.parse("[0,1]")`,
		"solution(...__harnessArgs)",
		"console.log('\\n' + JSON.stringify(",
	} {
		if !strings.Contains(program, want) {
			t.Errorf("program does not contain %q:\n%s", want, program)
		}
	}
	if !strings.HasPrefix(program, code) {
		t.Errorf("user code should come first")
	}
}

func TestBuildPython(t *testing.T) {
	code := "def solution(s):\n    return s[::-1]\n"
	tc := &domain.TestCase{Input: `"hello"`, ExpectedOutput: `"olleh"`}

	program, err := NewBuilder().Build(code, tc, domain.LanguagePython)
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}

	for _, want := range []string{
		code,
		`__harness_json.loads("[\"hello\"]")`,
		`__harness_json.loads("\"olleh\"")`,
		"solution(*__harness_args)",
		"allow_nan=False",
		`print("\n" + __harness_verdict)`,
	} {
		if !strings.Contains(program, want) {
			t.Errorf("program does not contain %q:\n%s", want, program)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	b := NewBuilder()
	tc := &domain.TestCase{Input: "1", ExpectedOutput: "1"}

	if _, err := b.Build("function solution(){}", tc, domain.Language("ruby")); !errors.Is(err, errs.ErrUnsupportedLanguage) {
		t.Errorf("unsupported language error = %v", err)
	}

	bad := &domain.TestCase{Input: "1\n{", ExpectedOutput: "1"}
	if _, err := b.Build("function solution(){}", bad, domain.LanguageJavaScript); err == nil {
		t.Error("expected an error for an unparsable input line")
	}
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name    string
		stdout  string
		passed  bool
		success bool
		output  string
		errMsg  string
	}{
		{
			name:    "passing",
			stdout:  `{"success":true,"output":[0,1],"expected":[0,1],"passed":true}` + "\n",
			passed:  true,
			success: true,
			output:  "[0,1]",
		},
		{
			name:    "user prints before the verdict",
			stdout:  "debugging\n[1, 2]\n" + `{"success":true,"output":3,"expected":4,"passed":false}` + "\n\n",
			success: true,
			output:  "3",
		},
		{
			name:   "solution threw",
			stdout: `{"success":false,"error":"boom","output":null,"expected":1,"passed":false}`,
			errMsg: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseVerdict(tt.stdout)
			if err != nil {
				t.Fatalf("ParseVerdict error = %v", err)
			}
			if v.Passed != tt.passed || v.Success != tt.success {
				t.Errorf("passed/success = %v/%v, want %v/%v", v.Passed, v.Success, tt.passed, tt.success)
			}
			if string(v.Output) != tt.output {
				t.Errorf("output = %s, want %s", v.Output, tt.output)
			}
			if v.Error != tt.errMsg {
				t.Errorf("error = %q, want %q", v.Error, tt.errMsg)
			}
		})
	}
}

func TestParseVerdictFailures(t *testing.T) {
	if _, err := ParseVerdict("  \n"); !errors.Is(err, ErrNoVerdict) {
		t.Errorf("empty stdout error = %v, want ErrNoVerdict", err)
	}
	for _, stdout := range []string{"hello", `{"success":true}`, "[1,2,3]"} {
		if _, err := ParseVerdict(stdout); err == nil {
			t.Errorf("ParseVerdict(%q) succeeded, want an error", stdout)
		}
	}
}
