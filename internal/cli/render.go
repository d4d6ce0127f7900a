package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/weeks/pkg/errors"
	"github.com/matzehuels/weeks/pkg/grid"
	"github.com/matzehuels/weeks/pkg/i18n"
	"github.com/matzehuels/weeks/pkg/render"
	"github.com/matzehuels/weeks/pkg/render/sink"
	"github.com/matzehuels/weeks/pkg/render/styles"
)

// renderOptions holds the flags of the render command.
type renderOptions struct {
	layout   layoutFlags
	formats  string
	output   string
	lang     string
	style    string
	title    string
	noTitle  bool
	noLegend bool
	logo     bool
	cells    bool
	columns  int
	lines    int
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render <birth-date>",
		Short: "Render the life grid as SVG, JSON or text",
		Long: `Render the life grid for a birth date.

SVG and JSON use the web constraints ([grid]) sized from --viewport or
--container. The text format uses the terminal constraints ([tui.grid]) sized
from --columns and --lines.

Files are written to <output>.<ext>; use -o - to write to stdout.`,
		Example: `  weeks render 1990-05-17
  weeks render 1990-05-17 -f svg,json -o life --style dark --logo
  weeks render 1990-05-17 -f text -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	opts.layout.register(cmd)
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "svg", "output formats: "+strings.Join(render.Formats, ", "))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "weeks", "output path without extension, or - for stdout")
	cmd.Flags().StringVar(&opts.lang, "lang", "", "legend and title language: en, de (default: share.language)")
	cmd.Flags().StringVar(&opts.style, "style", "simple", "visual style: "+strings.Join(styles.Names(), ", "))
	cmd.Flags().StringVar(&opts.title, "title", "", "SVG title (default: localized heading)")
	cmd.Flags().BoolVar(&opts.noTitle, "no-title", false, "omit the SVG title")
	cmd.Flags().BoolVar(&opts.noLegend, "no-legend", false, "omit the SVG legend")
	cmd.Flags().BoolVar(&opts.logo, "logo", false, "draw the logo mark in the SVG header")
	cmd.Flags().BoolVar(&opts.cells, "cells", false, "include every cell position in the JSON output")
	cmd.Flags().IntVar(&opts.columns, "columns", 80, "terminal columns for text output")
	cmd.Flags().IntVar(&opts.lines, "lines", 40, "terminal lines for text output")

	return cmd
}

// runRender computes the layout once per constraint set and writes every
// requested format.
func (c *CLI) runRender(ctx context.Context, stdout io.Writer, date string, opts renderOptions) error {
	formats, err := render.ParseFormats(opts.formats)
	if err != nil {
		return err
	}
	lang, err := c.language(opts.lang)
	if err != nil {
		return err
	}
	style, ok := styles.ByName(opts.style)
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown style %q (want %s)", opts.style, strings.Join(styles.Names(), ", "))
	}

	cons := c.constraints(opts.layout)
	lived, err := c.lived(date, cons.TotalItems)
	if err != nil {
		return err
	}

	for _, format := range formats {
		data, err := c.renderFormat(ctx, format, date, lived, lang, style, cons, opts)
		if err != nil {
			return err
		}

		if opts.output == "-" {
			if _, err := stdout.Write(data); err != nil {
				return err
			}
			continue
		}

		path := opts.output + render.Extension(format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}

	if opts.output != "-" {
		printSuccess("Rendered %s of %s weeks", i18n.FormatNumber(lived, lang), i18n.FormatNumber(cons.TotalItems, lang))
		printNextStep("Share", "weeks share "+date)
	}
	return nil
}

func (c *CLI) renderFormat(ctx context.Context, format, date string, lived int, lang i18n.Language, style styles.Style, cons grid.Constraints, opts renderOptions) ([]byte, error) {
	switch format {
	case render.FormatText:
		tcons := c.terminalConstraints()
		tcons.TotalItems = cons.TotalItems
		box := grid.Box{Width: float64(opts.columns), Height: float64(opts.lines * 2)}
		r := computeLayout(ctx, tcons.TotalItems, grid.Resolve(box, grid.Box{}, tcons), tcons)
		text := sink.RenderText(r, lived, sink.WithTextItems(tcons.TotalItems), sink.WithTextStyle(style))
		return []byte(text + "\n"), nil
	}

	bounds, err := opts.layout.bounds(cons)
	if err != nil {
		return nil, err
	}
	r := computeLayout(ctx, cons.TotalItems, bounds, cons)

	if format == render.FormatJSON {
		jsonOpts := []sink.JSONOption{
			sink.WithJSONItems(cons.TotalItems),
			sink.WithJSONBirthDate(date),
			sink.WithJSONLanguage(lang),
			sink.WithJSONStyle(style.Name()),
		}
		if opts.cells {
			jsonOpts = append(jsonOpts, sink.WithJSONCells())
		}
		return sink.RenderJSON(r, lived, jsonOpts...)
	}

	svgOpts := []sink.SVGOption{
		sink.WithStyle(style),
		sink.WithItems(cons.TotalItems),
		sink.WithLanguage(lang),
	}
	if !opts.noTitle {
		title := opts.title
		if title == "" {
			title = lang.Messages().YourLifeInWeeks
		}
		svgOpts = append(svgOpts, sink.WithTitle(title))
	}
	if !opts.noLegend {
		svgOpts = append(svgOpts, sink.WithLegend())
	}
	if opts.logo {
		svgOpts = append(svgOpts, sink.WithLogo())
	}
	return sink.RenderSVG(r, lived, svgOpts...), nil
}
