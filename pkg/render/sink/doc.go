// Package sink provides output format renderers for the week grid.
//
// # Overview
//
// A "sink" turns a computed [grid.Result] plus the number of weeks lived into
// a final output format:
//
//   - SVG: a standalone vector image with optional title, logo and legend
//   - JSON: layout data and counts for external tools
//   - Text: a colored half-block preview for terminals
//
// # SVG Output
//
//	r := grid.Compute(weeks.Total, grid.Box{Width: 680, Height: 680}, grid.DefaultConstraints())
//	svg := sink.RenderSVG(r, lived,
//	    sink.WithStyle(styles.Dark{}),
//	    sink.WithLanguage(i18n.German),
//	    sink.WithTitle("Dein Leben in Wochen"),
//	    sink.WithLegend(),
//	    sink.WithLogo(),
//	)
//
// Every week is one element of class "week past", "week present" or
// "week future", so the output can be restyled with CSS.
//
// # Text Output
//
// [RenderText] expects a layout computed with terminal constraints, where
// one unit is a column wide and half a line high.
//
// [grid.Result]: github.com/matzehuels/weeks/pkg/grid.Result
package sink
