// Package render turns category graphs into Graphviz DOT, SVG and HTML.
//
// # Overview
//
// Rendering is a two-step process. [ToDOT] formats a [graph.Graph] as DOT
// source, attaching the per-node and per-edge attributes that make large
// category trees readable (font sizes shrinking with depth, coloured root
// branches, tooltips and links back to Wikipedia). [RenderSVG] then lays the
// DOT out with an in-process Graphviz, and [RenderHTML] wraps the SVG in a
// zoomable HTML5 page.
//
//	dot := render.ToDOT(g, render.Options{Downsize: 4, URL: client.CategoryURL})
//	svg, err := render.RenderSVG(ctx, dot)
//	page := render.RenderHTML(g.Name(), svg)
//
// # Styling
//
// The generated graph uses a left-to-right layout with plaintext nodes.
// [Options.Style] is appended verbatim after the default attribute
// statements, so user supplied statements such as
//
//	graph [bgcolor=white] node [fontcolor=navy]
//
// override the defaults. Use [Validate] to check that the result still parses.
//
// # Formats
//
// [FormatDOT], [FormatSVG] and [FormatHTML] name the supported outputs;
// [ParseFormats] reads the comma separated list accepted on the command line.
//
// # Dependencies
//
// SVG rendering uses [github.com/goccy/go-graphviz], a WebAssembly build of
// Graphviz, so no system installation of the dot binary is required.
package render
