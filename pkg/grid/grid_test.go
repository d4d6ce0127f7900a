package grid

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fits reports whether cols×rows cells of size s with gap g fit into w×h.
func fits(cols, rows int, s, g, w, h float64) bool {
	return span(cols, s, g) <= w && span(rows, s, g) <= h
}

func TestComputeSquareBox(t *testing.T) {
	c := DefaultConstraints()
	r := Compute(4000, Box{Width: 680, Height: 680}, c)

	want := Result{
		Columns:        59,
		Rows:           68,
		CellSize:       6,
		Gap:            4,
		Width:          680,
		Limit:          680,
		Height:         676,
		RenderedHeight: 676,
		FillRatio:      676.0 / 680.0,
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("Compute() mismatch (-want +got):\n%s", diff)
	}

	if r.GridWidth() > 680 {
		t.Errorf("GridWidth() = %v, want <= 680", r.GridWidth())
	}
	if r.Columns*r.Rows < 4000 {
		t.Errorf("capacity %d < 4000", r.Columns*r.Rows)
	}

	// No larger cell fits with any column count.
	for s := r.CellSize + 1; s <= 680; s++ {
		for cols := 1; cols <= 4000; cols++ {
			if fits(cols, ceilDiv(4000, cols), s, r.Gap, 680, 680) {
				t.Fatalf("cell %v fits with %d columns, engine chose %v", s, cols, r.CellSize)
			}
		}
	}
}

func TestComputeFeasibility(t *testing.T) {
	c := DefaultConstraints()
	for w := 50.0; w <= 5000; w += 97 {
		for h := 50.0; h <= 5000; h += 89 {
			r := Compute(c.TotalItems, Box{Width: w, Height: h}, c)

			if r.CellSize < c.MinCellSize {
				t.Fatalf("%vx%v: cell %v below minimum", w, h, r.CellSize)
			}
			if r.Columns < 1 || r.Columns > c.TotalItems {
				t.Fatalf("%vx%v: columns %d out of range", w, h, r.Columns)
			}
			if r.Rows != ceilDiv(c.TotalItems, r.Columns) {
				t.Fatalf("%vx%v: rows %d, want ceil(%d/%d)", w, h, r.Rows, c.TotalItems, r.Columns)
			}
			if r.RenderedHeight > h {
				t.Fatalf("%vx%v: rendered height %v exceeds limit", w, h, r.RenderedHeight)
			}
			if r.Fallback {
				continue
			}
			if r.GridWidth() > w {
				t.Fatalf("%vx%v: grid width %v exceeds width", w, h, r.GridWidth())
			}
			if r.Height > h {
				t.Fatalf("%vx%v: grid height %v exceeds limit", w, h, r.Height)
			}
		}
	}
}

func TestComputeMonotonicWithinGapBand(t *testing.T) {
	c := DefaultConstraints()
	bands := [][2]float64{{200, 639}, {640, 1023}, {1024, 1279}, {1280, 3000}}

	for _, band := range bands {
		for h := 300.0; h <= 1500; h += 150 {
			prev := 0.0
			for w := band[0]; w <= band[1]; w += 7 {
				r := Compute(c.TotalItems, Box{Width: w, Height: h}, c)
				if r.Fallback {
					continue
				}
				if r.CellSize < prev {
					t.Fatalf("width %v height %v: cell shrank from %v to %v", w, h, prev, r.CellSize)
				}
				prev = r.CellSize
			}
		}
	}

	// Growing the height never shrinks the cell either.
	prev := 0.0
	for h := 100.0; h <= 3000; h += 11 {
		r := Compute(c.TotalItems, Box{Width: 900, Height: h}, c)
		if r.Fallback {
			continue
		}
		if r.CellSize < prev {
			t.Fatalf("height %v: cell shrank from %v to %v", h, prev, r.CellSize)
		}
		prev = r.CellSize
	}
}

func TestComputeDegenerate(t *testing.T) {
	c := DefaultConstraints()

	tests := []struct {
		name   string
		items  int
		bounds Box
	}{
		{"zero box", 4000, Box{}},
		{"negative box", 4000, Box{Width: -10, Height: -20}},
		{"NaN box", 4000, Box{Width: math.NaN(), Height: math.NaN()}},
		{"infinite box", 4000, Box{Width: math.Inf(1), Height: math.Inf(-1)}},
		{"tiny box", 4000, Box{Width: 1, Height: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(tt.items, tt.bounds, c)
			if !r.Fallback {
				t.Errorf("Fallback = false, want true")
			}
			if r.Columns != 64 || r.Rows != 63 {
				t.Errorf("grid = %dx%d, want 64x63", r.Columns, r.Rows)
			}
			if r.CellSize != c.MinCellSize {
				t.Errorf("CellSize = %v, want %v", r.CellSize, c.MinCellSize)
			}
			if r.RenderedHeight != 0 && r.RenderedHeight > r.Limit {
				t.Errorf("RenderedHeight = %v exceeds limit %v", r.RenderedHeight, r.Limit)
			}
		})
	}
}

func TestComputeCapsBoundsAtMax(t *testing.T) {
	c := DefaultConstraints()
	got := Compute(4000, Box{Width: 5000, Height: 5000}, c)
	want := Compute(4000, Box{Width: c.MaxWidth, Height: c.MaxHeight}, c)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compute() mismatch (-want +got):\n%s", diff)
	}
	if got.GridWidth() > c.MaxWidth || got.Height > c.MaxHeight {
		t.Errorf("grid %vx%v exceeds %vx%v", got.GridWidth(), got.Height, c.MaxWidth, c.MaxHeight)
	}

	// Without a maximum the box is used as given.
	c.MaxWidth, c.MaxHeight = 0, 0
	if r := Compute(4000, Box{Width: 5000, Height: 5000}, c); r.Width != 5000 || r.Limit != 5000 {
		t.Errorf("uncapped box = %vx%v, want 5000x5000", r.Width, r.Limit)
	}
}

func TestComputeNoItems(t *testing.T) {
	for _, n := range []int{0, -1, -4000} {
		r := Compute(n, Box{Width: 680, Height: 680}, DefaultConstraints())
		if diff := cmp.Diff(Result{Columns: 1}, r); diff != "" {
			t.Errorf("Compute(%d) mismatch (-want +got):\n%s", n, diff)
		}
	}
}

func TestComputeNonPositiveMinCell(t *testing.T) {
	c := DefaultConstraints()
	c.MinCellSize = 0
	r := Compute(10, Box{Width: 0, Height: 0}, c)
	if r.CellSize != 1 {
		t.Errorf("CellSize = %v, want 1", r.CellSize)
	}
}

func TestComputeFallbackNarrowWidth(t *testing.T) {
	c := DefaultConstraints()
	r := Compute(4000, Box{Width: 200, Height: 400}, c)

	want := Result{
		Columns:        64,
		Rows:           63,
		CellSize:       3,
		Gap:            3,
		Width:          200,
		Limit:          400,
		Height:         375,
		RenderedHeight: 375,
		Fallback:       true,
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("Compute() mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeFallbackClampsHeight(t *testing.T) {
	c := DefaultConstraints()
	r := Compute(4000, Box{Width: 100, Height: 120}, c)
	if !r.Fallback {
		t.Fatal("Fallback = false, want true")
	}
	if r.Height != 375 {
		t.Errorf("Height = %v, want 375", r.Height)
	}
	if r.RenderedHeight != 120 {
		t.Errorf("RenderedHeight = %v, want 120", r.RenderedHeight)
	}
}

func TestComputeTieBreakFillRatio(t *testing.T) {
	c := Constraints{MinCellSize: 1, Gaps: Breakpoints{{MinWidth: 0, Gap: 0}}}

	// 5 columns and 4 columns both give 2-unit cells; 4 columns fills the
	// height completely and wins. 3 columns also fills it but comes later.
	r := Compute(5, Box{Width: 10, Height: 4}, c)
	if r.Columns != 4 || r.Rows != 2 || r.CellSize != 2 {
		t.Errorf("grid = %dx%d cell %v, want 4x2 cell 2", r.Columns, r.Rows, r.CellSize)
	}
	if r.FillRatio != 1 {
		t.Errorf("FillRatio = %v, want 1", r.FillRatio)
	}
}

func TestComputeTieBreakKeepsWider(t *testing.T) {
	c := Constraints{MinCellSize: 1, Gaps: Breakpoints{{MinWidth: 0, Gap: 0}}}

	// 4 and 3 columns both give 3-unit cells filling the height exactly.
	r := Compute(6, Box{Width: 12, Height: 6}, c)
	if r.Columns != 4 || r.CellSize != 3 {
		t.Errorf("grid = %d columns cell %v, want 4 columns cell 3", r.Columns, r.CellSize)
	}
}

func TestComputeDeterministic(t *testing.T) {
	c := DefaultConstraints()
	b := Box{Width: 533, Height: 611}
	first := Compute(4000, b, c)
	for i := 0; i < 10; i++ {
		if got := Compute(4000, b, c); got != first {
			t.Fatalf("Compute() run %d = %+v, want %+v", i, got, first)
		}
	}
}

func TestComputeZeroHeightLimit(t *testing.T) {
	c := Constraints{MinCellSize: 1, Gaps: Breakpoints{{MinWidth: 0, Gap: 0}}}
	r := Compute(4, Box{Width: 10, Height: 0}, c)
	if !r.Fallback {
		t.Errorf("Fallback = false, want true")
	}
	if r.RenderedHeight != 0 {
		t.Errorf("RenderedHeight = %v, want 0", r.RenderedHeight)
	}
}

func TestMaxSearch(t *testing.T) {
	tests := []struct {
		name  string
		items int
		width float64
		min   float64
		gap   float64
		want  int
	}{
		{"default box", 4000, 680, 3, 4, 97},
		{"bounded by items", 10, 680, 3, 4, 10},
		{"zero width", 4000, 0, 3, 3, 1},
		{"large item count", 100000, 5000, 1, 0, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxSearch(tt.items, tt.width, tt.min, tt.gap); got != tt.want {
				t.Errorf("MaxSearch() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResultCell(t *testing.T) {
	c := Constraints{MinCellSize: 1, Gaps: Breakpoints{{MinWidth: 0, Gap: 1}}}
	r := Compute(10, Box{Width: 7, Height: 5}, c)
	if r.Columns != 4 || r.Rows != 3 {
		t.Fatalf("grid = %dx%d, want 4x3", r.Columns, r.Rows)
	}

	tests := []struct {
		index int
		want  Rect
	}{
		{0, Rect{Index: 0, Row: 0, Col: 0, X: 0, Y: 0, Size: 1}},
		{3, Rect{Index: 3, Row: 0, Col: 3, X: 6, Y: 0, Size: 1}},
		{4, Rect{Index: 4, Row: 1, Col: 0, X: 0, Y: 2, Size: 1}},
		{9, Rect{Index: 9, Row: 2, Col: 1, X: 2, Y: 4, Size: 1}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, r.Cell(tt.index)); diff != "" {
			t.Errorf("Cell(%d) mismatch (-want +got):\n%s", tt.index, diff)
		}
	}
}

func TestBreakpointsGap(t *testing.T) {
	bp := DefaultBreakpoints()
	tests := []struct {
		width float64
		want  float64
	}{
		{2000, 6},
		{1280, 6},
		{1279, 5},
		{1024, 5},
		{800, 4},
		{640, 4},
		{639, 3},
		{0, 3},
	}
	for _, tt := range tests {
		if got := bp.Gap(tt.width); got != tt.want {
			t.Errorf("Gap(%v) = %v, want %v", tt.width, got, tt.want)
		}
	}

	if got := (Breakpoints{{MinWidth: 100, Gap: 2}}).Gap(50); got != 0 {
		t.Errorf("Gap() with no match = %v, want 0", got)
	}
}

func TestBreakpointsSorted(t *testing.T) {
	bp := Breakpoints{{MinWidth: 0, Gap: 3}, {MinWidth: 1280, Gap: 6}, {MinWidth: 640, Gap: 4}}
	got := bp.Sorted()
	want := Breakpoints{{MinWidth: 1280, Gap: 6}, {MinWidth: 640, Gap: 4}, {MinWidth: 0, Gap: 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sorted() mismatch (-want +got):\n%s", diff)
	}
	if bp[0].MinWidth != 0 {
		t.Error("Sorted() modified the receiver")
	}
}

func TestResolve(t *testing.T) {
	c := DefaultConstraints()
	tests := []struct {
		name     string
		viewport Box
		measured Box
		want     Box
	}{
		{"viewport only", Box{Width: 1000, Height: 800}, Box{}, Box{Width: 520, Height: 480}},
		{"measured width", Box{Width: 1000, Height: 800}, Box{Width: 300}, Box{Width: 300, Height: 480}},
		{"measured too wide", Box{Width: 1000, Height: 800}, Box{Width: 1000, Height: 900}, Box{Width: 680, Height: 680}},
		{"small viewport", Box{Width: 320, Height: 480}, Box{}, Box{Width: 200, Height: 400}},
		{"large viewport", Box{Width: 2560, Height: 1440}, Box{}, Box{Width: 680, Height: 680}},
		{"zero viewport", Box{}, Box{}, Box{Width: 200, Height: 400}},
		{"NaN measurement", Box{Width: 1000, Height: 800}, Box{Width: math.NaN()}, Box{Width: 520, Height: 480}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Resolve(tt.viewport, tt.measured, c)); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBoxEmpty(t *testing.T) {
	tests := []struct {
		box  Box
		want bool
	}{
		{Box{}, true},
		{Box{Width: 10}, true},
		{Box{Width: 10, Height: 10}, false},
		{Box{Width: math.NaN(), Height: 10}, true},
	}
	for _, tt := range tests {
		if got := tt.box.Empty(); got != tt.want {
			t.Errorf("%+v.Empty() = %v, want %v", tt.box, got, tt.want)
		}
	}
}
