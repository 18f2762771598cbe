package harness

import "github.com/Mihailob5017/codegames/internal/domain"

// IHarnessService turns user code plus one test case into a program whose only
// stdout line (after anything the user prints) is a JSON Verdict
type IHarnessService interface {
	Build(userCode string, testCase *domain.TestCase, language domain.Language) (string, error)
}
