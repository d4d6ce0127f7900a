package render

import (
	"slices"
	"strings"

	"github.com/matzehuels/weeks/pkg/errors"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatText = "text"
)

// Formats lists the supported output formats.
var Formats = []string{FormatSVG, FormatJSON, FormatText}

// ParseFormats parses a comma-separated format list. Empty input selects SVG.
// Duplicates are dropped, order is kept.
func ParseFormats(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return []string{FormatSVG}, nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if !slices.Contains(Formats, f) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want %s)", f, strings.Join(Formats, ", "))
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out, nil
}

// Extension returns the file extension for a format, including the dot.
func Extension(format string) string {
	switch format {
	case FormatText:
		return ".txt"
	default:
		return "." + format
	}
}
