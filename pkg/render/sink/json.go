package sink

import (
	"encoding/json"

	"github.com/matzehuels/weeks/pkg/grid"
	"github.com/matzehuels/weeks/pkg/i18n"
	"github.com/matzehuels/weeks/pkg/weeks"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	items     int
	birthDate string
	lang      i18n.Language
	style     string
	cells     bool
}

// WithJSONItems sets the number of cells (default [weeks.Total]).
func WithJSONItems(n int) JSONOption { return func(r *jsonRenderer) { r.items = n } }

// WithJSONBirthDate records the ISO birth date the counts were derived from.
func WithJSONBirthDate(date string) JSONOption {
	return func(r *jsonRenderer) { r.birthDate = date }
}

// WithJSONLanguage records the display language.
func WithJSONLanguage(l i18n.Language) JSONOption { return func(r *jsonRenderer) { r.lang = l } }

// WithJSONStyle records the style name for round-trip rendering.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONCells includes the position and phase of every cell.
func WithJSONCells() JSONOption { return func(r *jsonRenderer) { r.cells = true } }

type jsonOutput struct {
	Layout    grid.Result `json:"layout"`
	Items     int         `json:"items"`
	Lived     int         `json:"lived"`
	Remaining int         `json:"remaining"`
	BirthDate string      `json:"birth_date,omitempty"`
	Language  string      `json:"language,omitempty"`
	Style     string      `json:"style,omitempty"`
	Cells     []jsonCell  `json:"cells,omitempty"`
}

type jsonCell struct {
	Index int     `json:"index"`
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Phase string  `json:"phase"`
}

// RenderJSON serializes the layout together with the week counts.
func RenderJSON(l grid.Result, lived int, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{items: weeks.Total}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Layout:    l,
		Items:     r.items,
		Lived:     lived,
		Remaining: weeks.Remaining(lived, r.items),
		BirthDate: r.birthDate,
		Style:     r.style,
	}
	if r.lang != "" {
		out.Language = r.lang.String()
	}
	if r.cells {
		out.Cells = buildJSONCells(l, r.items, lived)
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONCells(l grid.Result, items, lived int) []jsonCell {
	cells := make([]jsonCell, items)
	for i := range cells {
		c := l.Cell(i)
		cells[i] = jsonCell{
			Index: i,
			Row:   c.Row,
			Col:   c.Col,
			X:     c.X,
			Y:     c.Y,
			Phase: weeks.Classify(i, lived).String(),
		}
	}
	return cells
}
