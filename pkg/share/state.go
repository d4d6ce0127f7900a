package share

import (
	"net/url"
	"strings"

	"github.com/matzehuels/weeks/pkg/errors"
	"github.com/matzehuels/weeks/pkg/i18n"
)

// Query parameter names.
const (
	ParamLanguage = "lang"
	ParamDate     = "date"
)

// State is the shareable part of the application state.
type State struct {
	BirthDate string        `json:"birth_date,omitempty"`
	Language  i18n.Language `json:"language"`
}

// Query encodes s as a URL query string. The language is always written in
// clear text; the date only when present, and always as a token.
// Parameters keep the order lang, date.
func (s State) Query() string {
	lang := s.Language
	if !lang.Valid() {
		lang = i18n.Default
	}
	var b strings.Builder
	b.WriteString(ParamLanguage + "=" + url.QueryEscape(string(lang)))
	if s.BirthDate != "" {
		b.WriteString("&" + ParamDate + "=" + url.QueryEscape(Encode(s.BirthDate)))
	}
	return b.String()
}

// URL appends the query of s to base, replacing any query base already has.
func (s State) URL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "parse base URL %q", base)
	}
	u.RawQuery = s.Query()
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), nil
}

// ParseQuery restores a State from a URL query string.
//
// The returned State is always usable. An unknown language keeps fallback; a
// date token that cannot be decoded, or that does not decode to an ISO date,
// leaves BirthDate empty. Those conditions are reported through the error,
// which is always recoverable (see [errors.Recoverable] and
// [errors.ErrCodeInvalidLanguage]); callers that follow the silent-fallback
// rule may ignore it.
func ParseQuery(rawQuery string, fallback i18n.Language) (State, error) {
	st := State{Language: fallback}
	if !st.Language.Valid() {
		st.Language = i18n.Default
	}

	// ParseQuery keeps every well-formed pair even when others are malformed.
	values, _ := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))

	var err error
	if raw := values.Get(ParamLanguage); raw != "" {
		if lang, ok := i18n.Lookup(raw); ok {
			st.Language = lang
		} else {
			err = errors.New(errors.ErrCodeInvalidLanguage, "unknown language %q", raw)
		}
	}

	tok := values.Get(ParamDate)
	if tok == "" {
		return st, err
	}
	date, ok := Decode(tok)
	if !ok {
		return st, errors.New(errors.ErrCodeUndecodableToken, "cannot decode date token %q", tok)
	}
	if verr := errors.ValidateISODate(date); verr != nil {
		return st, errors.Wrap(errors.ErrCodeUndecodableToken, verr, "date token %q", tok)
	}
	st.BirthDate = date
	return st, err
}

// ParseURL restores a State from a full share link.
func ParseURL(rawURL string, fallback i18n.Language) (State, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return State{Language: fallback}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse share link")
	}
	return ParseQuery(u.RawQuery, fallback)
}
