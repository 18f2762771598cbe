package screening

import "github.com/Mihailob5017/codegames/internal/domain"

// IScreeningService statically rejects source code before anything runs it.
// Both methods return a *domain.SecurityViolation or a validation error from
// the errs package on the first failing check, and nil otherwise.
type IScreeningService interface {
	// ValidateCodeSecurity runs every check, including the presence of a
	// function named solution that graded code must define
	ValidateCodeSecurity(source string, language domain.Language) error

	// ValidateScript runs every check except the solution entry point one
	ValidateScript(source string, language domain.Language) error
}
