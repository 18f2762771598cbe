package harness

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Mihailob5017/codegames/internal/domain"
	"github.com/Mihailob5017/codegames/internal/static/errs"
)

var _ IHarnessService = (*Builder)(nil)

// Builder is stateless; the zero value is ready to use
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Build(userCode string, testCase *domain.TestCase, language domain.Language) (string, error) {
	tmpl, ok := programs[language]
	if !ok {
		return "", fmt.Errorf("%w: %q", errs.ErrUnsupportedLanguage, language)
	}

	input, err := ResolveInput(testCase.Input)
	if err != nil {
		return "", fmt.Errorf("invalid test input: %w", err)
	}
	expected, err := ResolveExpected(testCase.ExpectedOutput)
	if err != nil {
		return "", fmt.Errorf("invalid expected output: %w", err)
	}

	args, err := json.Marshal(input.Args)
	if err != nil {
		return "", fmt.Errorf("failed to encode arguments: %w", err)
	}

	var sb strings.Builder
	err = tmpl.Execute(&sb, programData{
		UserCode: userCode,
		Args:     stringLiteral(string(args)),
		Expected: stringLiteral(string(expected)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render harness: %w", err)
	}
	return sb.String(), nil
}

// stringLiteral quotes s as a JSON string, which both interpreters accept as
// a source string literal
func stringLiteral(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
