// Package i18n holds the supported languages, their message tables and the
// locale-aware date and number formatting used by every output surface.
//
// Two languages are supported: [English] (the default) and [German]. URL
// parameters are matched exactly with [Lookup]; free-form input such as a
// LANG environment variable goes through [ParseLanguage], which uses
// golang.org/x/text/language matching.
package i18n

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/matzehuels/weeks/pkg/errors"
)

// Language is a supported two-letter language tag.
type Language string

const (
	English Language = "en"
	German  Language = "de"
)

// Default is the language used when nothing else is selected.
const Default = English

// Supported lists the languages in toggle order.
var Supported = []Language{English, German}

var matcher = language.NewMatcher([]language.Tag{language.English, language.German})

// Lookup matches s exactly against the supported tags.
func Lookup(s string) (Language, bool) {
	switch Language(s) {
	case English, German:
		return Language(s), true
	}
	return "", false
}

// ParseLanguage resolves a BCP 47 tag or POSIX locale ("de_AT.UTF-8") to the
// closest supported language.
func ParseLanguage(s string) (Language, error) {
	if l, ok := Lookup(s); ok {
		return l, nil
	}

	tag, err := language.Parse(normalizeLocale(s))
	if err != nil {
		return Default, errors.Wrap(errors.ErrCodeInvalidLanguage, err, "parse language %q", s)
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Default, errors.New(errors.ErrCodeInvalidLanguage, "unsupported language %q", s)
	}
	return Supported[idx], nil
}

// normalizeLocale strips encoding and modifier suffixes from POSIX locales.
func normalizeLocale(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	return strings.ReplaceAll(s, "_", "-")
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	_, ok := Lookup(string(l))
	return ok
}

// Toggle returns the other supported language. Unknown values toggle to German
// as if they were English.
func (l Language) Toggle() Language {
	if l == German {
		return English
	}
	return German
}

// Tag returns the x/text language tag used for formatting.
func (l Language) Tag() language.Tag {
	if l == German {
		return language.German
	}
	return language.AmericanEnglish
}

// Messages returns the message table for l, falling back to English.
func (l Language) Messages() *Messages {
	if m, ok := tables[l]; ok {
		return m
	}
	return tables[English]
}

func (l Language) String() string { return string(l) }
