// Package grid computes the layout of a uniform square-cell grid.
//
// # Overview
//
// Given a number of items and a bounding box, [Compute] picks the column
// count that yields the largest square cells while keeping the whole grid
// inside the box. The result is a [Result] describing columns, rows, cell
// size, gap and the rendered height:
//
//	r := grid.Compute(4000, grid.Box{Width: 680, Height: 680}, grid.DefaultConstraints())
//	fmt.Println(r.Columns, r.Rows, r.CellSize) // 59 68 6
//
// # Search
//
// Every column count from [MaxSearch] down to one is tried. For each count
// the width-limited cell size is floor((width − gap·(cols−1)) / cols). If
// the resulting grid is too tall, the cell is shrunk to the height-limited
// size instead. Candidates below the minimum cell size are discarded.
//
// Among the remaining candidates the largest cell wins. Ties are broken by
// the fill ratio (grid height over height limit), and remaining ties keep
// the candidate with more columns, because the search runs from wide to
// narrow and only strictly better candidates replace the current best.
//
// When no candidate survives (the box is too small for the minimum cell
// size) the engine falls back to ceil(√n) columns at the minimum cell size.
// The fallback may overflow the box; [Result.RenderedHeight] is clamped to
// the height limit and callers are expected to clip.
//
// # Gap Breakpoints
//
// The gap between cells depends on the available width. [Breakpoints] maps
// width thresholds to gaps, scanned from widest to narrowest:
//
//	≥1280 → 6, ≥1024 → 5, ≥768 → 4, ≥640 → 4, otherwise 3
//
// # Bounds Resolution
//
// [Resolve] turns a viewport and an optional container measurement into the
// box handed to [Compute]. Measured dimensions win; unmeasured ones are
// derived from the viewport using [Constraints.WidthRatio] and
// [Constraints.HeightRatio]. Both are clamped to the configured range.
//
// # Degenerate Input
//
// Negative, NaN and infinite dimensions are treated as zero. A zero or
// negative item count yields a single empty column. Nothing in this package
// returns an error or panics.
package grid
