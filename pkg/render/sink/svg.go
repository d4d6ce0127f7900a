package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"unicode/utf8"

	"github.com/matzehuels/weeks/pkg/grid"
	"github.com/matzehuels/weeks/pkg/i18n"
	"github.com/matzehuels/weeks/pkg/render/styles"
	"github.com/matzehuels/weeks/pkg/weeks"
)

const (
	padding      = 16.0
	headerHeight = 40.0
	logoSize     = 32.0
	titleSize    = 18.0
	legendHeight = 28.0
	legendGap    = 12.0
	legendDot    = 10.0
	legendFont   = 12.0
	// legendCharWidth estimates the advance of one legend glyph.
	legendCharWidth = 7.0
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style  styles.Style
	items  int
	lang   i18n.Language
	title  string
	legend bool
	logo   bool
}

// WithStyle sets the visual style (default [styles.Simple]).
func WithStyle(s styles.Style) SVGOption {
	return func(r *svgRenderer) {
		if s != nil {
			r.style = s
		}
	}
}

// WithItems sets the number of cells drawn (default [weeks.Total]).
func WithItems(n int) SVGOption { return func(r *svgRenderer) { r.items = n } }

// WithLanguage selects the language of the legend.
func WithLanguage(l i18n.Language) SVGOption { return func(r *svgRenderer) { r.lang = l } }

// WithTitle adds a heading above the grid.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithLegend adds the past / current / future legend below the grid.
func WithLegend() SVGOption { return func(r *svgRenderer) { r.legend = true } }

// WithLogo draws the logo mark in the header.
func WithLogo() SVGOption { return func(r *svgRenderer) { r.logo = true } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{}, items: weeks.Total, lang: i18n.Default}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws the cells of l, coloring the first lived cells as past and
// the next one as the current week.
func RenderSVG(l grid.Result, lived int, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	msgs := r.lang.Messages()

	header := 0.0
	if r.title != "" || r.logo {
		header = headerHeight
	}
	labels := []legendEntry{
		{weeks.Past, msgs.Past},
		{weeks.Present, msgs.CurrentWeek},
		{weeks.Future, msgs.Future},
	}

	// A grid taller than its height limit is cut off at the limit.
	gridW, gridH := l.GridWidth(), l.Height
	clipped := l.Limit > 0 && l.RenderedHeight < l.Height
	if clipped {
		gridH = l.RenderedHeight
	}
	width := gridW + 2*padding
	height := padding + header + gridH + padding
	if r.legend {
		width = max(gridW, legendWidth(labels)) + 2*padding
		height += legendGap + legendHeight
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s" role="img"`,
		styles.Num(width), styles.Num(height), styles.Num(width), styles.Num(height))
	if r.title != "" {
		buf.WriteString(` aria-label="`)
		escape(&buf, r.title)
		buf.WriteString(`"`)
	}
	buf.WriteString(">\n")

	r.style.RenderDefs(&buf)
	if bg := r.style.Background(); bg != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", bg)
	}

	if header > 0 {
		r.renderHeader(&buf)
	}

	if clipped {
		fmt.Fprintf(&buf, `  <clipPath id="weeks-clip"><rect width="%s" height="%s"/></clipPath>`+"\n",
			styles.Num(gridW), styles.Num(gridH))
		fmt.Fprintf(&buf, `  <g class="weeks" transform="translate(%s %s)" clip-path="url(#weeks-clip)">`+"\n",
			styles.Num(padding), styles.Num(padding+header))
	} else {
		fmt.Fprintf(&buf, `  <g class="weeks" transform="translate(%s %s)">`+"\n",
			styles.Num(padding), styles.Num(padding+header))
	}
	for i := 0; i < r.items; i++ {
		c := l.Cell(i)
		r.style.RenderCell(&buf, styles.Cell{
			Index: i,
			X:     c.X,
			Y:     c.Y,
			Size:  c.Size,
			Phase: weeks.Classify(i, lived),
		})
	}
	buf.WriteString("  </g>\n")

	if r.legend {
		r.renderLegend(&buf, labels, padding+header+gridH+legendGap)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderHeader(buf *bytes.Buffer) {
	x := padding
	if r.logo {
		writeLogoMark(buf, x, padding+(headerHeight-logoSize)/2-4, logoSize)
		x += logoSize + 8
	}
	if r.title != "" {
		fmt.Fprintf(buf, `  <text class="title" x="%s" y="%s" font-size="%s" font-weight="700" font-family="sans-serif" fill="%s">`,
			styles.Num(x), styles.Num(padding+titleSize+2), styles.Num(titleSize), r.style.Foreground())
		escape(buf, r.title)
		buf.WriteString("</text>\n")
	}
}

type legendEntry struct {
	phase weeks.Phase
	label string
}

func legendWidth(entries []legendEntry) float64 {
	w := 0.0
	for i, e := range entries {
		if i > 0 {
			w += 2 * legendGap
		}
		w += legendDot + 6 + float64(utf8.RuneCountInString(e.label))*legendCharWidth
	}
	return w
}

func (r *svgRenderer) renderLegend(buf *bytes.Buffer, entries []legendEntry, y float64) {
	fmt.Fprintf(buf, `  <g class="legend" transform="translate(%s %s)" font-size="%s" font-family="sans-serif" fill="%s">`+"\n",
		styles.Num(padding), styles.Num(y), styles.Num(legendFont), r.style.Foreground())
	x := 0.0
	mid := legendHeight / 2
	for _, e := range entries {
		fmt.Fprintf(buf, `    <circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
			styles.Num(x+legendDot/2), styles.Num(mid), styles.Num(legendDot/2), r.style.Color(e.phase))
		fmt.Fprintf(buf, `    <text x="%s" y="%s">`, styles.Num(x+legendDot+6), styles.Num(mid+legendFont/3))
		escape(buf, e.label)
		buf.WriteString("</text>\n")
		x += legendDot + 6 + float64(utf8.RuneCountInString(e.label))*legendCharWidth + 2*legendGap
	}
	buf.WriteString("  </g>\n")
}

func escape(buf *bytes.Buffer, s string) {
	_ = xml.EscapeText(buf, []byte(s))
}
