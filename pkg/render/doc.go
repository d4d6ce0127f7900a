// Package render turns grid layouts into images and terminal previews.
//
// # Overview
//
// Rendering is split in two subpackages:
//
//   - [styles]: the palette and cell shapes ([styles.Simple], [styles.Dark])
//   - [sink]: output formats (SVG, JSON, text)
//
// This package names the output formats and maps them to file extensions:
//
//	formats, err := render.ParseFormats("svg,json")
//	for _, f := range formats {
//	    path := "weeks" + render.Extension(f)
//	}
//
// [styles]: github.com/matzehuels/weeks/pkg/render/styles
// [sink]: github.com/matzehuels/weeks/pkg/render/sink
package render
