package styles

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/weeks/pkg/weeks"
)

// Palette colors shared by the styles.
const (
	Slate950 = "#020617"
	Slate900 = "#0f172a"
	Slate700 = "#334155"
	Slate200 = "#e2e8f0"
	Slate50  = "#f8fafc"
	Amber400 = "#fbbf24"
)

// Simple draws round cells on a light background: past weeks dark, the
// current week amber, future weeks light gray.
type Simple struct{}

func (Simple) Name() string       { return "simple" }
func (Simple) Background() string { return "#ffffff" }
func (Simple) Foreground() string { return Slate900 }

func (Simple) Color(p weeks.Phase) string {
	switch p {
	case weeks.Past:
		return Slate900
	case weeks.Present:
		return Amber400
	default:
		return Slate200
	}
}

func (Simple) RenderDefs(*bytes.Buffer) {}

func (s Simple) RenderCell(buf *bytes.Buffer, c Cell) {
	renderCircle(buf, c, s.Color(c.Phase))
}

// Dark inverts Simple for dark backgrounds.
type Dark struct{}

func (Dark) Name() string       { return "dark" }
func (Dark) Background() string { return Slate950 }
func (Dark) Foreground() string { return Slate50 }

func (Dark) Color(p weeks.Phase) string {
	switch p {
	case weeks.Past:
		return Slate50
	case weeks.Present:
		return Amber400
	default:
		return Slate700
	}
}

func (Dark) RenderDefs(*bytes.Buffer) {}

func (s Dark) RenderCell(buf *bytes.Buffer, c Cell) {
	renderCircle(buf, c, s.Color(c.Phase))
}

func renderCircle(buf *bytes.Buffer, c Cell, fill string) {
	fmt.Fprintf(buf, `  <circle class="week %s" cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
		c.Phase, Num(c.CenterX()), Num(c.CenterY()), Num(c.Size/2), fill)
}
