package render

import (
	"bytes"
	"html"
)

const panzoomScript = `<script src="https://unpkg.com/panzoom@9.4.0/dist/panzoom.min.js" query="#graph0" name="pz"></script>`

// RenderHTML wraps an SVG in an HTML5 page titled after the category.
// The page loads panzoom for mouse zooming and dragging and stretches the
// SVG over the whole viewport.
func RenderHTML(title string, svg []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(`<head><meta charset="UTF-8"/><title>`)
	buf.WriteString(html.EscapeString(title))
	buf.WriteString("</title> </head>\n")
	buf.WriteString(`<div style="position:absolute;">Zoom and drag with mouse. Nodes are links to Wikipedia.</div>` + "\n")
	buf.WriteString(panzoomScript + "\n")
	buf.WriteString("<style> svg { height:100%; width:100%; } </style>\n")
	buf.Write(svg)
	return buf.Bytes()
}
