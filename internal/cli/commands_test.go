package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/weeks/pkg/errors"
	"github.com/matzehuels/weeks/pkg/grid"
	"github.com/matzehuels/weeks/pkg/render/styles"
)

const sharedLink = "https://weeks.example.com/?lang=en&date=MjAyMC0wMS0wMQ"

func TestLayoutJSON(t *testing.T) {
	c := newTestCLI(t)
	out, err := run(t, c, "layout", "--viewport", "1280x800", "--json")
	if err != nil {
		t.Fatal(err)
	}

	var got grid.Result
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	cons := grid.DefaultConstraints()
	bounds := grid.Resolve(grid.Box{Width: 1280, Height: 800}, grid.Box{}, cons)
	want := grid.Compute(cons.TotalItems, bounds, cons)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutInvalidViewport(t *testing.T) {
	c := newTestCLI(t)
	_, err := run(t, c, "layout", "--viewport", "wide")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestParseBox(t *testing.T) {
	tests := []struct {
		in      string
		want    grid.Box
		wantErr bool
	}{
		{"1280x800", grid.Box{Width: 1280, Height: 800}, false},
		{"1280×800", grid.Box{Width: 1280, Height: 800}, false},
		{" 680,680 ", grid.Box{Width: 680, Height: 680}, false},
		{"0x0", grid.Box{}, false},
		{"12.5X7", grid.Box{Width: 12.5, Height: 7}, false},
		{"1280", grid.Box{}, true},
		{"ax800", grid.Box{}, true},
		{"1280x-1", grid.Box{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseBox(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseBox(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseBox(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCountJSON(t *testing.T) {
	c := newTestCLI(t)
	out, err := run(t, c, "count", "2020-01-01", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var got countOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	want := countOutput{BirthDate: "2020-01-01", Lived: 52, Remaining: 3948, Total: 4000}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}

func TestCountRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"future date", []string{"count", "2021-01-01"}, errors.ErrCodeInvalidDate},
		{"today", []string{"count", "2020-12-31"}, errors.ErrCodeInvalidDate},
		{"malformed date", []string{"count", "31.12.1990"}, errors.ErrCodeInvalidDate},
		{"unknown language", []string{"count", "2020-01-01", "--lang", "fr"}, errors.ErrCodeInvalidLanguage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCLI(t)
			_, err := run(t, c, tt.args...)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestShare(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default", []string{"share", "2020-01-01"}, sharedLink},
		{"german", []string{"share", "2020-01-01", "--lang", "de"}, "https://weeks.example.com/?lang=de&date=MjAyMC0wMS0wMQ"},
		{"base", []string{"share", "2020-01-01", "--base", "http://localhost:5173/app#top"}, "http://localhost:5173/app?lang=en&date=MjAyMC0wMS0wMQ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCLI(t)
			out, err := run(t, c, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("link = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShareFromEnv(t *testing.T) {
	c := newTestCLI(t)
	t.Setenv("WEEKS_BASE_URL", "https://life.example.org/")
	t.Setenv("WEEKS_LANG", "de-DE")
	out, err := run(t, c, "share", "2020-01-01")
	if err != nil {
		t.Fatal(err)
	}
	want := "https://life.example.org/?lang=de&date=MjAyMC0wMS0wMQ"
	if got := strings.TrimSpace(out); got != want {
		t.Errorf("link = %q, want %q", got, want)
	}
}

func stubClipboard(t *testing.T, err error) *string {
	t.Helper()
	var copied string
	orig := writeClipboard
	writeClipboard = func(text string) error {
		if err != nil {
			return err
		}
		copied = text
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })
	return &copied
}

func TestShareCopy(t *testing.T) {
	c := newTestCLI(t)
	copied := stubClipboard(t, nil)
	if _, err := run(t, c, "share", "2020-01-01", "--copy"); err != nil {
		t.Fatal(err)
	}
	if *copied != sharedLink {
		t.Errorf("copied %q, want %q", *copied, sharedLink)
	}
}

func TestShareCopyFailureIsNotFatal(t *testing.T) {
	c := newTestCLI(t)
	stubClipboard(t, os.ErrPermission)
	out, err := run(t, c, "share", "2020-01-01", "--copy")
	if err != nil {
		t.Fatalf("copy failure returned %v", err)
	}
	if strings.TrimSpace(out) != sharedLink {
		t.Errorf("link not printed: %q", out)
	}
}

func TestCopyToClipboardCode(t *testing.T) {
	stubClipboard(t, os.ErrPermission)
	err := copyToClipboard("x")
	if !errors.Is(err, errors.ErrCodeClipboardUnavailable) {
		t.Errorf("err = %v, want CLIPBOARD_UNAVAILABLE", err)
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name string
		link string
		want []string
	}{
		{
			name: "visualization",
			link: "https://weeks.example.com/?lang=de&date=MjAyMC0wMS0wMQ",
			want: []string{"view: visualization\n", "language: de\n", "born: 1. Jan. 2020\n", "lived: 52\n"},
		},
		{
			name: "language only",
			link: "https://weeks.example.com/?lang=de",
			want: []string{"view: intake\n", "language: de\n"},
		},
		{
			name: "undecodable date",
			link: "https://weeks.example.com/?lang=xx&date=%21%21",
			want: []string{"view: intake\n", "language: en\n"},
		},
		{
			name: "future date",
			link: "https://weeks.example.com/?date=MjAzMC0wMS0wMQ",
			want: []string{"view: intake\n"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCLI(t)
			out, err := run(t, c, "open", tt.link)
			if err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
		})
	}
}

func TestOpenPreview(t *testing.T) {
	c := newTestCLI(t)
	out, err := run(t, c, "open", sharedLink, "--preview")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.ContainsAny(out, "▀▄█") {
		t.Errorf("preview has no grid: %q", out)
	}
}

func TestOpenPreviewUsesGridItemCount(t *testing.T) {
	c := newTestCLI(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := "[grid]\ntotal_items = 1000\n\n[tui.grid]\ntotal_items = 4000\n"
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, c, "--config", path, "open", sharedLink, "--preview")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "remaining: 948\n") {
		t.Errorf("output = %q, want remaining: 948", out)
	}
	if got := c.terminalConstraints().TotalItems; got != 1000 {
		t.Errorf("terminal grid has %d items, want 1000", got)
	}
	m := c.newWeeksModel(styles.Simple{}, nil)
	defer m.close()
	if m.cons.TotalItems != 1000 || m.State.Total != 1000 {
		t.Errorf("tui grid has %d items, state %d, want 1000", m.cons.TotalItems, m.State.Total)
	}
}

func TestRenderTextToStdout(t *testing.T) {
	tests := []struct {
		name     string
		columns  string
		lines    string
		width    int // exact width of every full line, or 0 for "at most columns"
		maxLines int
	}{
		// 100x80 units hold 4000 one-unit cells.
		{name: "fits", columns: "100", lines: "40", maxLines: 40},
		// 60x40 units hold at most 2400 cells: ceil(sqrt(4000)) columns of
		// the minimum size.
		{name: "fallback", columns: "60", lines: "20", width: 64, maxLines: 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCLI(t)
			out, err := run(t, c, "render", "2020-01-01", "-f", "text", "-o", "-", "--columns", tt.columns, "--lines", tt.lines)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.ContainsAny(out, "▀▄█") {
				t.Fatalf("text output has no cells: %q", out)
			}
			lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
			if len(lines) > tt.maxLines {
				t.Errorf("got %d lines, want at most %d", len(lines), tt.maxLines)
			}
			limit, _ := strconv.Atoi(tt.columns)
			for i, line := range lines {
				n := len([]rune(line))
				switch {
				case tt.width > 0 && i < len(lines)-1 && n != tt.width:
					t.Errorf("line %d is %d columns wide, want %d", i, n, tt.width)
				case tt.width == 0 && n > limit:
					t.Errorf("line %d is %d columns wide, want at most %d", i, n, limit)
				}
			}
		})
	}
}

func TestRenderJSONToStdout(t *testing.T) {
	c := newTestCLI(t)
	out, err := run(t, c, "render", "2020-01-01", "-f", "json", "-o", "-", "--style", "dark")
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Items     int    `json:"items"`
		Lived     int    `json:"lived"`
		Remaining int    `json:"remaining"`
		BirthDate string `json:"birth_date"`
		Style     string `json:"style"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if got.Items != 4000 || got.Lived != 52 || got.Remaining != 3948 || got.BirthDate != "2020-01-01" || got.Style != "dark" {
		t.Errorf("unexpected output %+v", got)
	}
}

func TestRenderJSONCells(t *testing.T) {
	c := newTestCLI(t)
	out, err := run(t, c, "render", "2020-01-01", "-f", "json", "-o", "-", "--cells")
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Cells []struct {
			Index int    `json:"index"`
			Phase string `json:"phase"`
		} `json:"cells"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if len(got.Cells) != 4000 {
		t.Fatalf("got %d cells, want 4000", len(got.Cells))
	}
	for _, i := range []int{0, 51, 52, 53, 3999} {
		want := "future"
		switch {
		case i < 52:
			want = "past"
		case i == 52:
			want = "present"
		}
		if got.Cells[i].Index != i || got.Cells[i].Phase != want {
			t.Errorf("cell %d = %+v, want phase %s", i, got.Cells[i], want)
		}
	}
}

func TestRenderFiles(t *testing.T) {
	c := newTestCLI(t)
	base := filepath.Join(t.TempDir(), "life")
	if _, err := run(t, c, "render", "2020-01-01", "-f", "svg,json", "-o", base, "--logo"); err != nil {
		t.Fatal(err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), `class="logo"`) {
		t.Errorf("unexpected svg: %.200s", svg)
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Errorf("json not written: %v", err)
	}
}

func TestRenderRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"format", []string{"render", "2020-01-01", "-f", "pdf"}, errors.ErrCodeInvalidInput},
		{"style", []string{"render", "2020-01-01", "--style", "neon"}, errors.ErrCodeInvalidInput},
		{"date", []string{"render", "2030-01-01"}, errors.ErrCodeInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCLI(t)
			_, err := run(t, c, tt.args...)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestConfigShow(t *testing.T) {
	c := newTestCLI(t)
	out, err := run(t, c, "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `base_url = "https://weeks.example.com/"`) {
		t.Errorf("config show missing base_url:\n%s", out)
	}
}

func TestConfigPath(t *testing.T) {
	c := newTestCLI(t)
	path := filepath.Join(t.TempDir(), "weeks.toml")
	if err := os.WriteFile(path, []byte("[share]\nlanguage = \"de\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, c, "--config", path, "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("path = %q, want %q", out, path)
	}
	if c.Config.Share.Language != "de" {
		t.Errorf("language = %q, want de", c.Config.Share.Language)
	}
}
