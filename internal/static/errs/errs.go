package errs

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrUnsupportedLanguage = fmt.Errorf("%w: unsupported language", ErrValidation)
	ErrEmptySource         = fmt.Errorf("%w: source code is empty", ErrValidation)
	ErrMissingEntryPoint   = fmt.Errorf("%w: code must define a function named solution", ErrValidation)
	ErrInvalidRequest      = fmt.Errorf("%w: invalid request", ErrValidation)
)

var (
	ErrNotFound    = errors.New("not found")
	ErrPersistence = errors.New("persistence error")
	InternalError  = errors.New("internal error")
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
)
