package domain

import "strings"

// Language identifies the interpreter a piece of user code is written for
type Language string

const (
	LanguageJavaScript Language = "javascript"
	LanguagePython     Language = "python"
)

var supportedLanguages = []Language{LanguageJavaScript, LanguagePython}

// ParseLanguage normalises a request value, accepting a few common aliases
func ParseLanguage(s string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "javascript", "js", "node":
		return LanguageJavaScript, true
	case "python", "py", "python3":
		return LanguagePython, true
	default:
		return "", false
	}
}

func (l Language) IsSupported() bool {
	for _, s := range supportedLanguages {
		if s == l {
			return true
		}
	}
	return false
}
