package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/weeks/pkg/errors"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{" JSON , svg,json", []string{"json", "svg"}},
		{"text", []string{"text"}},
	}
	for _, tt := range tests {
		got, err := ParseFormats(tt.in)
		if err != nil {
			t.Errorf("ParseFormats(%q) error: %v", tt.in, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseFormats(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}

	for _, bad := range []string{"pdf", "svg,", "svg,png"} {
		if _, err := ParseFormats(bad); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ParseFormats(%q) error = %v, want INVALID_INPUT", bad, err)
		}
	}
}

func TestExtension(t *testing.T) {
	for format, want := range map[string]string{"svg": ".svg", "json": ".json", "text": ".txt"} {
		if got := Extension(format); got != want {
			t.Errorf("Extension(%q) = %q, want %q", format, got, want)
		}
	}
}
