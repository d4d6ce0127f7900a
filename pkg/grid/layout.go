package grid

import "math"

// Result is the outcome of a layout computation.
type Result struct {
	Columns  int     `json:"columns"`
	Rows     int     `json:"rows"`
	CellSize float64 `json:"cell_size"`
	Gap      float64 `json:"gap"`

	// Width and Limit are the bounds the layout was computed for.
	Width float64 `json:"width"`
	Limit float64 `json:"height_limit"`

	// Height is rows·cellSize + (rows−1)·gap.
	Height float64 `json:"height"`
	// RenderedHeight is Height clamped to [0, Limit].
	RenderedHeight float64 `json:"rendered_height"`

	FillRatio float64 `json:"fill_ratio"`

	// Fallback is set when no column count produced a candidate and the
	// square-ish fallback grid was used instead.
	Fallback bool `json:"fallback,omitempty"`
}

// GridWidth returns columns·cellSize + (columns−1)·gap.
func (r Result) GridWidth() float64 {
	return span(r.Columns, r.CellSize, r.Gap)
}

// Cell returns the rectangle of the cell at index, laid out row-major from the
// top-left corner.
func (r Result) Cell(index int) Rect {
	cols := max(r.Columns, 1)
	row, col := index/cols, index%cols
	step := r.CellSize + r.Gap
	return Rect{
		Index: index,
		Row:   row,
		Col:   col,
		X:     float64(col) * step,
		Y:     float64(row) * step,
		Size:  r.CellSize,
	}
}

// Rect is the placed square of a single cell.
type Rect struct {
	Index    int
	Row, Col int
	X, Y     float64
	Size     float64
}

// CenterX returns the horizontal center of the cell.
func (c Rect) CenterX() float64 { return c.X + c.Size/2 }

// CenterY returns the vertical center of the cell.
func (c Rect) CenterY() float64 { return c.Y + c.Size/2 }

type candidate struct {
	columns  int
	rows     int
	cellSize float64
	fill     float64
}

// better reports whether c beats best: strictly larger cells first, then the
// denser use of the available height.
func (c candidate) better(best *candidate) bool {
	if best == nil {
		return true
	}
	if c.cellSize != best.cellSize {
		return c.cellSize > best.cellSize
	}
	return c.fill > best.fill
}

// MaxSearch returns the largest column count worth trying: the most columns
// that fit width at the minimum cell size, never more than itemCount and
// never less than one. The column search is therefore bounded by itemCount
// whatever the item count is configured to.
func MaxSearch(itemCount int, width, minCellSize, gap float64) int {
	n := int(math.Floor((width + gap) / (minCellSize + gap)))
	return max(1, min(itemCount, n))
}

// Compute lays out itemCount uniform cells inside bounds.
//
// It tries every column count from [MaxSearch] down to one, keeps the largest
// cell size that fits the width, shrinks it to fit the height when needed, and
// falls back to a ceil(√n)-column grid at the minimum cell size when nothing
// fits. The box is first capped at MaxWidth and MaxHeight when those are
// positive; lower bounds are left to [Resolve] so an empty box still takes
// the fallback. The function is pure: identical inputs give identical results.
func Compute(itemCount int, bounds Box, c Constraints) Result {
	if itemCount <= 0 {
		return Result{Columns: 1}
	}

	minCell := c.MinCellSize
	if !(minCell > 0) {
		minCell = 1
	}
	width := capAt(sanitize(bounds.Width), c.MaxWidth)
	limit := capAt(sanitize(bounds.Height), c.MaxHeight)
	gap := sanitize(c.Gaps.Gap(width))

	var best *candidate
	consider := func(cand candidate) {
		if cand.better(best) {
			best = &cand
		}
	}

	for cols := MaxSearch(itemCount, width, minCell, gap); cols >= 1; cols-- {
		raw := math.Floor((width - gap*float64(cols-1)) / float64(cols))
		if raw < minCell {
			continue
		}

		rows := ceilDiv(itemCount, cols)
		required := span(rows, raw, gap)
		if required <= limit {
			consider(candidate{columns: cols, rows: rows, cellSize: raw, fill: fillRatio(required, limit)})
			continue
		}

		adjusted := math.Floor((limit - gap*float64(rows-1)) / float64(rows))
		if adjusted < minCell {
			continue
		}
		consider(candidate{
			columns:  cols,
			rows:     rows,
			cellSize: adjusted,
			fill:     fillRatio(span(rows, adjusted, gap), limit),
		})
	}

	fallback := best == nil
	if fallback {
		cols := min(itemCount, int(math.Ceil(math.Sqrt(float64(itemCount)))))
		best = &candidate{columns: cols, rows: ceilDiv(itemCount, cols), cellSize: minCell}
	}

	cell := math.Max(best.cellSize, minCell)
	height := span(best.rows, cell, gap)
	return Result{
		Columns:        best.columns,
		Rows:           best.rows,
		CellSize:       cell,
		Gap:            gap,
		Width:          width,
		Limit:          limit,
		Height:         height,
		RenderedHeight: clamp(height, 0, limit),
		FillRatio:      best.fill,
		Fallback:       fallback,
	}
}

// Layout computes the grid for the configured item count.
func (c Constraints) Layout(bounds Box) Result {
	return Compute(c.TotalItems, bounds, c)
}

// capAt limits v to hi when hi is positive.
func capAt(v, hi float64) float64 {
	if hi > 0 {
		return math.Min(v, hi)
	}
	return v
}

// span is n·size + (n−1)·gap for n ≥ 1 and zero otherwise.
func span(n int, size, gap float64) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n)*size + float64(n-1)*gap
}

func fillRatio(required, limit float64) float64 {
	if limit == 0 {
		return 1
	}
	return required / limit
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
