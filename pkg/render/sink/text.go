package sink

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/weeks/pkg/grid"
	"github.com/matzehuels/weeks/pkg/render/styles"
	"github.com/matzehuels/weeks/pkg/weeks"
)

const (
	upperHalf = "▀"
	lowerHalf = "▄"
)

// TextOption configures terminal rendering via [RenderText].
type TextOption func(*textRenderer)

type textRenderer struct {
	style    styles.Style
	items    int
	renderer *lipgloss.Renderer
}

// WithTextStyle sets the color source (default [styles.Simple]).
func WithTextStyle(s styles.Style) TextOption {
	return func(r *textRenderer) {
		if s != nil {
			r.style = s
		}
	}
}

// WithTextItems sets the number of cells drawn (default [weeks.Total]).
func WithTextItems(n int) TextOption { return func(r *textRenderer) { r.items = n } }

// WithRenderer sets the lipgloss renderer that decides the color profile.
func WithRenderer(lr *lipgloss.Renderer) TextOption {
	return func(r *textRenderer) {
		if lr != nil {
			r.renderer = lr
		}
	}
}

// empty marks a raster pixel outside every cell.
const empty = weeks.Phase(-1)

// RenderText draws l with half-block characters. One layout unit is one
// terminal column wide and half a line high, so every output line carries
// two raster rows: the upper one as foreground, the lower one as background.
func RenderText(l grid.Result, lived int, opts ...TextOption) string {
	r := textRenderer{style: styles.Simple{}, items: weeks.Total, renderer: lipgloss.DefaultRenderer()}
	for _, opt := range opts {
		opt(&r)
	}

	raster := rasterize(l, r.items, lived)
	if len(raster) == 0 {
		return ""
	}

	cache := make(map[[2]weeks.Phase]lipgloss.Style)
	styleFor := func(top, bottom weeks.Phase) lipgloss.Style {
		key := [2]weeks.Phase{top, bottom}
		if s, ok := cache[key]; ok {
			return s
		}
		s := r.renderer.NewStyle()
		switch {
		case top != empty && bottom != empty:
			s = s.Foreground(lipgloss.Color(r.style.Color(top))).Background(lipgloss.Color(r.style.Color(bottom)))
		case top != empty:
			s = s.Foreground(lipgloss.Color(r.style.Color(top)))
		case bottom != empty:
			s = s.Foreground(lipgloss.Color(r.style.Color(bottom)))
		}
		cache[key] = s
		return s
	}

	lines := make([]string, 0, (len(raster)+1)/2)
	for y := 0; y < len(raster); y += 2 {
		top := raster[y]
		bottom := make([]weeks.Phase, len(top))
		if y+1 < len(raster) {
			bottom = raster[y+1]
		} else {
			for i := range bottom {
				bottom[i] = empty
			}
		}

		var b strings.Builder
		for x := 0; x < len(top); {
			run := x + 1
			for run < len(top) && top[run] == top[x] && bottom[run] == bottom[x] {
				run++
			}
			b.WriteString(styleFor(top[x], bottom[x]).Render(strings.Repeat(glyph(top[x], bottom[x]), run-x)))
			x = run
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func glyph(top, bottom weeks.Phase) string {
	switch {
	case top == empty && bottom == empty:
		return " "
	case top == empty:
		return lowerHalf
	default:
		return upperHalf
	}
}

// rasterize maps every cell onto a unit grid, rounding cell edges to whole units.
func rasterize(l grid.Result, items, lived int) [][]weeks.Phase {
	w := int(math.Ceil(l.GridWidth()))
	h := int(math.Ceil(l.Height))
	if w <= 0 || h <= 0 || items <= 0 {
		return nil
	}

	raster := make([][]weeks.Phase, h)
	for y := range raster {
		raster[y] = make([]weeks.Phase, w)
		for x := range raster[y] {
			raster[y][x] = empty
		}
	}

	for i := 0; i < items; i++ {
		c := l.Cell(i)
		x0, x1 := unit(c.X, w), unit(c.X+c.Size, w)
		y0, y1 := unit(c.Y, h), unit(c.Y+c.Size, h)
		phase := weeks.Classify(i, lived)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				raster[y][x] = phase
			}
		}
	}
	return raster
}

func unit(v float64, limit int) int {
	return min(max(int(math.Round(v)), 0), limit)
}
