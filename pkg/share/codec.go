package share

import (
	"encoding/base64"
	"strings"
	"unicode"
	"unicode/utf8"
)

var token = base64.RawURLEncoding.Strict()

// toURLAlphabet rewrites standard-alphabet tokens. A space stands for a "+"
// that was unescaped by a query parser.
var toURLAlphabet = strings.NewReplacer("+", "-", "/", "_", " ", "-")

// Encode turns a date string into a URL-safe token. The transform works on
// the raw bytes, so any string round-trips, not only dates.
func Encode(date string) string {
	return token.EncodeToString([]byte(date))
}

// Decode reverses [Encode]. It reports false when the token is empty, is not
// valid base64 in either the URL or the standard alphabet (padding optional),
// or decodes to something that is not printable UTF-8 text.
func Decode(tok string) (string, bool) {
	if tok == "" {
		return "", false
	}

	if i := strings.IndexByte(tok, '='); i >= 0 {
		if len(tok)%4 != 0 || len(tok)-i > 2 || strings.Trim(tok[i:], "=") != "" {
			return "", false
		}
		tok = tok[:i]
	}

	raw, err := token.DecodeString(toURLAlphabet.Replace(tok))
	if err != nil || len(raw) == 0 {
		return "", false
	}
	if !utf8.Valid(raw) {
		return "", false
	}
	s := string(raw)
	if strings.IndexFunc(s, unicode.IsControl) >= 0 {
		return "", false
	}
	return s, true
}
