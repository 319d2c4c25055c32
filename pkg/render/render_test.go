package render

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/wikigraph/pkg/graph"
)

// lifeGraph builds Life -> {Biology, Organisms}, Biology -> Zoology with
// the levels and hues a depth-2 crawl assigns.
func lifeGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New("Life")
	nodes := []graph.Node{
		{ID: "Life", Level: 2, Subcategories: []string{"Biology", "Organisms"}},
		{ID: "Biology", Level: 1, Subcategories: []string{"Anatomy", "Botany", "Ecology", "Zoology", "Genetics", "Virology"}},
		{ID: "Organisms", Level: 1, Hue: 11.0 / 18.0},
		{ID: "Zoology", Level: 0, Subcategories: []string{"Animals"}, Leaf: true},
	}
	for _, n := range nodes {
		require.NoError(t, g.AddNode(n))
	}
	edges := []graph.Edge{
		{From: "Life", To: "Biology", Index: 0, Hue: 0},
		{From: "Life", To: "Organisms", Index: 1, Hue: 11.0 / 18.0},
		{From: "Biology", To: "Zoology", Index: 3, Hue: 0},
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e))
	}
	return g
}

func testURL(title string) string {
	return "https://en.wikipedia.org/wiki/Category:" + strings.ReplaceAll(title, " ", "_")
}

func TestToDOT_Header(t *testing.T) {
	dot := ToDOT(lifeGraph(t), Options{Style: "graph [bgcolor=white]"})

	assert.True(t, strings.HasPrefix(dot, "digraph \"Life\" {\n"))
	assert.Contains(t, dot, `graph [rankdir=LR ranksep=2 concentrate=true fontname="Helvetica,Arial,sans-serif"];`)
	assert.Contains(t, dot, `node [newrank=true shape=plaintext fontname="Helvetica,Arial,sans-serif"];`)
	assert.Contains(t, dot, `edge [arrowhead=open labeldistance=3 labelfontcolor="#00000080" fontname="Helvetica,Arial,sans-serif"];`)
	assert.Contains(t, dot, "  graph [bgcolor=white]\n")
	assert.True(t, strings.HasSuffix(dot, "}\n"))

	// The user style follows the defaults so it can override them.
	assert.Less(t, strings.Index(dot, "edge [arrowhead"), strings.Index(dot, "bgcolor=white"))
}

func TestToDOT_Nodes(t *testing.T) {
	dot := ToDOT(lifeGraph(t), Options{Downsize: 4, URL: testURL})

	tests := []struct {
		name string
		want string
	}{
		{"root", `"Life" [label="Life\n2 C" tooltip="Life\n\nBiology, Organisms" URL="https://en.wikipedia.org/wiki/Category:Life" fontsize=160];`},
		{"inner", `"Organisms" [label="Organisms\n0 C" tooltip="Organisms\n\n" URL="https://en.wikipedia.org/wiki/Category:Organisms" fontsize=40];`},
		{"leaf", `"Zoology" [label="Zoology\n1 C" tooltip="Zoology\n\nAnimals" URL="https://en.wikipedia.org/wiki/Category:Zoology" fontsize=10];`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, dot, tt.want)
		})
	}
}

func TestToDOT_Edges(t *testing.T) {
	dot := ToDOT(lifeGraph(t), Options{Downsize: 4})

	tests := []struct {
		name string
		want string
	}{
		{
			"first root branch",
			`"Life" -> "Biology" [tooltip="Life  ⟶  Biology" headlabel="Life" minlen=1 penwidth=8 arrowsize=4 color="0 1 0.7" labelfontsize=16 labelfontcolor="0 1 0.5"];`,
		},
		{
			"second root branch",
			`"Life" -> "Organisms" [tooltip="Life  ⟶  Organisms" headlabel="Life" minlen=1 penwidth=8 arrowsize=4 color="0.61 1 0.7" labelfontsize=16 labelfontcolor="0.61 1 0.5"];`,
		},
		{
			// six subcategories give two columns, index 3 lands in the second
			"spread over columns",
			`"Biology" -> "Zoology" [tooltip="Biology  ⟶  Zoology" headlabel="Biology" minlen=2 penwidth=2 arrowsize=1 color="0 1 0.7" labelfontsize=4 labelfontcolor="0 1 0.5"];`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, dot, tt.want)
		})
	}
	assert.Equal(t, 3, strings.Count(dot, " -> "))
}

func TestToDOT_DownsizeOne(t *testing.T) {
	dot := ToDOT(lifeGraph(t), Options{Downsize: 1})
	assert.Equal(t, 4, strings.Count(dot, "fontsize=10]"))
	assert.Contains(t, dot, "penwidth=0.5 arrowsize=0.25")
}

func TestToDOT_NoURL(t *testing.T) {
	dot := ToDOT(lifeGraph(t), Options{})
	assert.NotContains(t, dot, "URL=")
}

func TestToDOT_Deterministic(t *testing.T) {
	g := lifeGraph(t)
	assert.Equal(t, ToDOT(g, Options{}), ToDOT(g, Options{}))
}

func TestToDOT_Escaping(t *testing.T) {
	g := graph.New(`Say "hi"`)
	require.NoError(t, g.AddNode(graph.Node{ID: `Say "hi"`, Subcategories: []string{`Back\slash`}}))

	dot := ToDOT(g, Options{})
	assert.Contains(t, dot, `digraph "Say \"hi\"" {`)
	assert.Contains(t, dot, `tooltip="Say \"hi\"\n\nBack\\slash"`)
	require.NoError(t, Validate(dot))
}

func TestTooltip_Truncated(t *testing.T) {
	subs := make([]string, 300)
	for i := range subs {
		subs[i] = "Long name"
	}
	tip := tooltip(&graph.Node{ID: "Big", Subcategories: subs})

	assert.True(t, strings.HasPrefix(tip, "Big\n\nLong&nbsp;name, "))
	assert.True(t, strings.HasSuffix(tip, " ..."))
	assert.Equal(t, len("Big\n\n")+maxTooltip+len(" ..."), len([]rune(tip)))
}

func TestFormatFloat(t *testing.T) {
	tests := map[float64]string{
		8:           "8",
		0.5:         "0.5",
		0.25:        "0.25",
		11.0 / 18.0: "0.61",
		0.125:       "0.13",
		0:           "0",
		1.0 / 3.0:   "0.33",
		16.0 / 4.0:  "4",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatFloat(in), "formatFloat(%v)", in)
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(ToDOT(lifeGraph(t), Options{URL: testURL})))

	err := Validate(ToDOT(lifeGraph(t), Options{Style: "graph [bgcolor=white"}))
	assert.ErrorIs(t, err, ErrInvalidDOT)
}

func TestRenderSVG_RoundTrip(t *testing.T) {
	dot := ToDOT(lifeGraph(t), Options{Downsize: 4, URL: testURL})

	svg, err := RenderSVG(context.Background(), dot)
	require.NoError(t, err)

	s := string(svg)
	assert.Contains(t, s, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 `)
	assert.Contains(t, s, "Organisms")
	assert.Contains(t, s, "https://en.wikipedia.org/wiki/Category:Zoology")
	assert.Contains(t, s, `id="graph0"`)
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	_, err := RenderSVG(context.Background(), "digraph {")
	assert.ErrorIs(t, err, ErrInvalidDOT)
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>` + "\n" + `<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	assert.Contains(t, out, `viewBox="0 0 100.00 50.00" width="100" height="50">`)
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0"?>`))
	assert.True(t, strings.HasSuffix(out, "<g/></svg>"))

	noBox := []byte(`<svg><g/></svg>`)
	assert.Equal(t, noBox, normalizeViewBox(noBox))
}

func TestRenderHTML(t *testing.T) {
	page := string(RenderHTML("Arts & <Crafts>", []byte("<svg></svg>")))

	assert.True(t, strings.HasPrefix(page, `<head><meta charset="UTF-8"/><title>Arts &amp; &lt;Crafts&gt;</title> </head>`+"\n"))
	assert.Contains(t, page, "Zoom and drag with mouse. Nodes are links to Wikipedia.")
	assert.Contains(t, page, `src="https://unpkg.com/panzoom@9.4.0/dist/panzoom.min.js" query="#graph0"`)
	assert.Contains(t, page, "<style> svg { height:100%; width:100%; } </style>\n")
	assert.True(t, strings.HasSuffix(page, "<svg></svg>"))
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"dot", "svg", "html"}},
		{"svg", []string{"svg"}},
		{"dot, SVG", []string{"dot", "svg"}},
		{"html,html,dot", []string{"html", "dot"}},
		{" , ", []string{"dot", "svg", "html"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFormats(tt.in))
		})
	}
}

func TestValidateFormats(t *testing.T) {
	assert.NoError(t, ValidateFormats([]string{"dot", "svg", "html"}))
	assert.Error(t, ValidateFormats([]string{"svg", "png"}))
	assert.Error(t, ValidateFormat("pdf"))
}

func TestNeedsSVG(t *testing.T) {
	assert.False(t, NeedsSVG([]string{"dot"}))
	assert.True(t, NeedsSVG([]string{"dot", "html"}))
	assert.True(t, NeedsSVG([]string{"svg"}))
}
