package screening

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Mihailob5017/codegames/internal/config"
	"github.com/Mihailob5017/codegames/internal/domain"
	"github.com/Mihailob5017/codegames/internal/static/errs"
)

var _ IScreeningService = (*Screener)(nil)

// Limits bounds the size and shape of accepted source code
type Limits struct {
	MaxLines       int
	MaxChars       int
	MaxLoopNesting int
}

func DefaultLimits() Limits {
	return Limits{
		MaxLines:       500,
		MaxChars:       20000,
		MaxLoopNesting: 3,
	}
}

// Screener is immutable after construction and safe for concurrent use
type Screener struct {
	limits Limits
}

// NewScreener builds a screener; non-positive limits fall back to the defaults
func NewScreener(limits Limits) *Screener {
	def := DefaultLimits()
	if limits.MaxLines <= 0 {
		limits.MaxLines = def.MaxLines
	}
	if limits.MaxChars <= 0 {
		limits.MaxChars = def.MaxChars
	}
	if limits.MaxLoopNesting <= 0 {
		limits.MaxLoopNesting = def.MaxLoopNesting
	}
	return &Screener{limits: limits}
}

func NewScreenerFromConfig(cfg *config.ScreeningConfig) *Screener {
	return NewScreener(Limits{
		MaxLines:       cfg.MaxLines,
		MaxChars:       cfg.MaxChars,
		MaxLoopNesting: cfg.MaxLoopNesting,
	})
}

func (s *Screener) ValidateCodeSecurity(source string, language domain.Language) error {
	if err := s.ValidateScript(source, language); err != nil {
		return err
	}
	if !entryPoints[language].MatchString(source) {
		return errs.ErrMissingEntryPoint
	}
	return nil
}

func (s *Screener) ValidateScript(source string, language domain.Language) error {
	if !language.IsSupported() {
		return fmt.Errorf("%w: %q", errs.ErrUnsupportedLanguage, language)
	}
	if strings.TrimSpace(source) == "" {
		return errs.ErrEmptySource
	}

	for _, set := range [][]rule{
		injectionRules[language],
		dosRules[language],
		maliciousRules,
	} {
		for _, r := range set {
			if v := r.check(source); v != nil {
				return v
			}
		}
	}

	if v := s.checkResources(source); v != nil {
		return v
	}

	if depth := loopNesting(source, language); depth > s.limits.MaxLoopNesting {
		return &domain.SecurityViolation{
			Category:    domain.ViolationDoS,
			Description: fmt.Sprintf("loops are nested %d levels deep, the limit is %d", depth, s.limits.MaxLoopNesting),
		}
	}

	return nil
}

func (s *Screener) checkResources(source string) *domain.SecurityViolation {
	lines := strings.Count(strings.TrimRight(source, "\n"), "\n") + 1
	if lines > s.limits.MaxLines {
		return &domain.SecurityViolation{
			Category:    domain.ViolationResource,
			Description: fmt.Sprintf("code has %d lines, the limit is %d", lines, s.limits.MaxLines),
		}
	}

	chars := utf8.RuneCountInString(source)
	if chars > s.limits.MaxChars {
		return &domain.SecurityViolation{
			Category:    domain.ViolationResource,
			Description: fmt.Sprintf("code has %d characters, the limit is %d", chars, s.limits.MaxChars),
		}
	}

	return nil
}
