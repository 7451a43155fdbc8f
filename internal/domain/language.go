package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language identifies a dictionary by its base language code, e.g. "en" or "uk".
type Language string

const (
	LanguageEnglish   Language = "en"
	LanguageUkrainian Language = "uk"
)

func (l Language) String() string { return string(l) }

// ParseLanguage parses a BCP 47 code and keeps its base language, so "en_GB"
// and "en-US" both give "en". It does not check that a dictionary is loaded.
func ParseLanguage(s string) (Language, error) {
	code := strings.TrimSpace(s)
	if code == "" {
		return "", fmt.Errorf("%w: empty language code", ErrUnknownLanguage)
	}
	tag, err := language.Parse(code)
	if err != nil || tag == language.Und {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
	}
	base, _ := tag.Base()
	return Language(base.String()), nil
}
