package grid

import (
	"cmp"
	"math"
	"slices"
)

// Default constraint values for the 4000-week grid.
const (
	// DefaultTotalItems is the number of weeks in a typical human life.
	DefaultTotalItems = 4000

	DefaultMinCellSize = 3.0
	DefaultMinWidth    = 200.0
	DefaultMaxWidth    = 680.0
	DefaultMinHeight   = 400.0
	DefaultMaxHeight   = 680.0

	// DefaultWidthRatio is the share of the viewport width used when the
	// container has not been measured yet.
	DefaultWidthRatio = 0.52

	// DefaultHeightRatio is the share of the viewport height that bounds the grid.
	DefaultHeightRatio = 0.6
)

// Box is a rectangular area in user units (pixels for SVG, half-lines for terminals).
type Box struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Empty reports whether the box has no usable area in either dimension.
func (b Box) Empty() bool { return !(b.Width > 0) || !(b.Height > 0) }

// Breakpoint maps a minimum width to the gap used at and above that width.
type Breakpoint struct {
	MinWidth float64 `json:"min_width" toml:"min_width" validate:"gte=0"`
	Gap      float64 `json:"gap" toml:"gap" validate:"gte=0"`
}

// Breakpoints is an ordered gap table scanned from widest to narrowest; the
// first entry whose MinWidth is not above the width wins.
type Breakpoints []Breakpoint

// DefaultBreakpoints returns the gap table used by the web grid.
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{
		{MinWidth: 1280, Gap: 6},
		{MinWidth: 1024, Gap: 5},
		{MinWidth: 768, Gap: 4},
		{MinWidth: 640, Gap: 4},
		{MinWidth: 0, Gap: 3},
	}
}

// Gap returns the gap for width, or 0 if no breakpoint matches.
func (bp Breakpoints) Gap(width float64) float64 {
	for _, b := range bp {
		if width >= b.MinWidth {
			return b.Gap
		}
	}
	return 0
}

// Sorted returns a copy ordered from widest to narrowest threshold.
// Configuration files may list breakpoints in any order.
func (bp Breakpoints) Sorted() Breakpoints {
	out := slices.Clone(bp)
	slices.SortStableFunc(out, func(a, b Breakpoint) int {
		return cmp.Compare(b.MinWidth, a.MinWidth)
	})
	return out
}

// Constraints is the immutable configuration of the layout engine.
type Constraints struct {
	TotalItems  int         `json:"total_items" toml:"total_items" validate:"gte=1"`
	MinCellSize float64     `json:"min_cell_size" toml:"min_cell_size" validate:"gt=0"`
	MinWidth    float64     `json:"min_width" toml:"min_width" validate:"gte=0"`
	MaxWidth    float64     `json:"max_width" toml:"max_width" validate:"gt=0,gtefield=MinWidth"`
	MinHeight   float64     `json:"min_height" toml:"min_height" validate:"gte=0"`
	MaxHeight   float64     `json:"max_height" toml:"max_height" validate:"gt=0,gtefield=MinHeight"`
	WidthRatio  float64     `json:"width_ratio" toml:"width_ratio" validate:"gt=0,lte=1"`
	HeightRatio float64     `json:"height_ratio" toml:"height_ratio" validate:"gt=0,lte=1"`
	Gaps        Breakpoints `json:"gaps" toml:"gaps" validate:"min=1,dive"`
}

// DefaultConstraints returns the constraints of the web grid: 4000 cells of at
// least 3px inside a box of at most 680×680.
func DefaultConstraints() Constraints {
	return Constraints{
		TotalItems:  DefaultTotalItems,
		MinCellSize: DefaultMinCellSize,
		MinWidth:    DefaultMinWidth,
		MaxWidth:    DefaultMaxWidth,
		MinHeight:   DefaultMinHeight,
		MaxHeight:   DefaultMaxHeight,
		WidthRatio:  DefaultWidthRatio,
		HeightRatio: DefaultHeightRatio,
		Gaps:        DefaultBreakpoints(),
	}
}

// TerminalConstraints returns constraints for character-cell displays.
// One unit is a terminal column horizontally and half a line vertically, so
// a unit is roughly square.
func TerminalConstraints() Constraints {
	return Constraints{
		TotalItems:  DefaultTotalItems,
		MinCellSize: 1,
		MinWidth:    1,
		MaxWidth:    1000,
		MinHeight:   1,
		MaxHeight:   1000,
		WidthRatio:  1,
		HeightRatio: 1,
		Gaps: Breakpoints{
			{MinWidth: 200, Gap: 1},
			{MinWidth: 0, Gap: 0},
		},
	}
}

// Resolve derives the bounding box handed to [Compute].
//
// A measured container dimension wins when it is positive. Otherwise the
// viewport dimension scaled by the matching ratio is used, clamped to the
// configured range. Either way the result is clamped to [min, max].
func Resolve(viewport, measured Box, c Constraints) Box {
	return Box{
		Width:  resolveDim(viewport.Width, measured.Width, c.WidthRatio, c.MinWidth, c.MaxWidth),
		Height: resolveDim(viewport.Height, measured.Height, c.HeightRatio, c.MinHeight, c.MaxHeight),
	}
}

func resolveDim(viewport, measured, ratio, lo, hi float64) float64 {
	v := measured
	if !(v > 0) {
		v = clamp(sanitize(viewport)*ratio, lo, hi)
	}
	return clamp(v, lo, hi)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// sanitize maps NaN, negative and infinite values to zero.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
