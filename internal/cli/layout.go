package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/weeks/pkg/errors"
	"github.com/matzehuels/weeks/pkg/grid"
	"github.com/matzehuels/weeks/pkg/observability"
)

// layoutFlags are the sizing flags shared by layout and render.
type layoutFlags struct {
	items     int
	viewport  string
	container string
	minCell   float64
	terminal  bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.items, "items", 0, "number of cells (default: grid.total_items)")
	cmd.Flags().StringVar(&f.viewport, "viewport", "1280x800", "viewport size WxH")
	cmd.Flags().StringVar(&f.container, "container", "", "measured container size WxH (0 for unmeasured)")
	cmd.Flags().Float64Var(&f.minCell, "min-cell", 0, "minimum cell size (default: grid.min_cell_size)")
}

// terminalConstraints returns the [tui] grid constraints. The item count
// always comes from [grid] so week counts and terminal grids agree.
func (c *CLI) terminalConstraints() grid.Constraints {
	cons := c.Config.TUI.Grid
	cons.TotalItems = c.Config.Grid.TotalItems
	return cons
}

// constraints returns the configured constraints with flag overrides applied.
func (c *CLI) constraints(f layoutFlags) grid.Constraints {
	cons := c.Config.Grid
	if f.terminal {
		cons = c.terminalConstraints()
	}
	if f.minCell > 0 {
		cons.MinCellSize = f.minCell
	}
	if f.items > 0 {
		cons.TotalItems = f.items
	}
	return cons
}

// bounds resolves the flags into the box handed to the engine.
func (f layoutFlags) bounds(cons grid.Constraints) (grid.Box, error) {
	viewport, err := parseBox(f.viewport)
	if err != nil {
		return grid.Box{}, err
	}
	var container grid.Box
	if f.container != "" {
		if container, err = parseBox(f.container); err != nil {
			return grid.Box{}, err
		}
	}
	return grid.Resolve(viewport, container, cons), nil
}

// layoutCommand creates the layout command for inspecting engine output.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  layoutFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute the grid layout for a viewport",
		Long: `Compute the grid layout for a viewport.

The bounding box is derived from the viewport (scaled by the configured width
and height ratios) or from a measured container, clamped to the configured
range. The engine then picks the column count with the largest cells that
still fit the height limit.`,
		Example: `  weeks layout --viewport 1280x800
  weeks layout --container 680x680 --json
  weeks layout --terminal --viewport 120x80`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cons := c.constraints(flags)
			bounds, err := flags.bounds(cons)
			if err != nil {
				return err
			}
			r := computeLayout(cmd.Context(), cons.TotalItems, bounds, cons)

			if asJSON {
				data, err := json.MarshalIndent(r, "", "  ")
				if err != nil {
					return fmt.Errorf("encode layout: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}

			printKeyValue("Bounds", formatBox(bounds.Width, bounds.Height))
			printKeyValue("Grid", fmt.Sprintf("%d × %d", r.Columns, r.Rows))
			printKeyValue("Cell", formatCell(r.CellSize, r.Gap))
			printKeyValue("Size", formatBox(r.GridWidth(), r.Height))
			printKeyValue("Fill", fmt.Sprintf("%.1f%%", r.FillRatio*100))
			if r.Fallback {
				printKeyValue("Fallback", "yes")
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.terminal, "terminal", false, "use terminal constraints ([tui.grid])")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the layout as JSON")

	return cmd
}

// computeLayout runs the engine and reports the result to the layout hooks.
func computeLayout(ctx context.Context, items int, bounds grid.Box, cons grid.Constraints) grid.Result {
	start := time.Now()
	r := grid.Compute(items, bounds, cons)
	observability.Layout().OnLayout(ctx, observability.LayoutEvent{
		Items:    items,
		Width:    bounds.Width,
		Height:   bounds.Height,
		Columns:  r.Columns,
		Rows:     r.Rows,
		CellSize: r.CellSize,
		Gap:      r.Gap,
		Fallback: r.Fallback,
	}, time.Since(start))
	return r
}

// parseBox parses "WxH" (also "W×H" or "W,H").
func parseBox(s string) (grid.Box, error) {
	norm := strings.NewReplacer("×", "x", ",", "x", "X", "x").Replace(strings.TrimSpace(s))
	ws, hs, ok := strings.Cut(norm, "x")
	if !ok {
		return grid.Box{}, errors.New(errors.ErrCodeInvalidInput, "invalid size %q (want WxH)", s)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(ws), 64)
	if err != nil || w < 0 {
		return grid.Box{}, errors.New(errors.ErrCodeInvalidInput, "invalid width in %q", s)
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(hs), 64)
	if err != nil || h < 0 {
		return grid.Box{}, errors.New(errors.ErrCodeInvalidInput, "invalid height in %q", s)
	}
	return grid.Box{Width: w, Height: h}, nil
}
