// Package styles defines the visual appearance of the week grid.
package styles

import (
	"bytes"
	"slices"

	"github.com/matzehuels/weeks/pkg/weeks"
)

// Style controls how the grid and its decorations are drawn.
type Style interface {
	// Name identifies the style in flags and JSON output.
	Name() string
	// Color returns the hex fill color for a phase.
	Color(p weeks.Phase) string
	// Background returns the hex page color, or "" for transparent.
	Background() string
	// Foreground returns the hex color of text.
	Foreground() string
	// RenderDefs writes SVG <defs> content.
	RenderDefs(buf *bytes.Buffer)
	// RenderCell writes the SVG for a single week.
	RenderCell(buf *bytes.Buffer, c Cell)
}

// Cell contains all data needed to render a single week.
type Cell struct {
	Index int
	X, Y  float64
	Size  float64
	Phase weeks.Phase
}

// CenterX returns the horizontal center of the cell.
func (c Cell) CenterX() float64 { return c.X + c.Size/2 }

// CenterY returns the vertical center of the cell.
func (c Cell) CenterY() float64 { return c.Y + c.Size/2 }

var registry = []Style{Simple{}, Dark{}}

// Names lists the registered style names.
func Names() []string {
	names := make([]string, len(registry))
	for i, s := range registry {
		names[i] = s.Name()
	}
	return names
}

// ByName looks up a registered style.
func ByName(name string) (Style, bool) {
	i := slices.IndexFunc(registry, func(s Style) bool { return s.Name() == name })
	if i < 0 {
		return nil, false
	}
	return registry[i], true
}
