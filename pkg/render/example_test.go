package render_test

import (
	"fmt"

	"github.com/matzehuels/wikigraph/pkg/graph"
	"github.com/matzehuels/wikigraph/pkg/render"
)

func ExampleToDOT() {
	g := graph.New("Life")
	_ = g.AddNode(graph.Node{ID: "Life", Level: 1, Subcategories: []string{"Biology"}})
	_ = g.AddNode(graph.Node{ID: "Biology", Leaf: true})
	_ = g.AddEdge(graph.Edge{From: "Life", To: "Biology"})

	fmt.Print(render.ToDOT(g, render.Options{Downsize: 2}))
	// Output:
	// digraph "Life" {
	//   graph [rankdir=LR ranksep=2 concentrate=true fontname="Helvetica,Arial,sans-serif"];
	//   node [newrank=true shape=plaintext fontname="Helvetica,Arial,sans-serif"];
	//   edge [arrowhead=open labeldistance=3 labelfontcolor="#00000080" fontname="Helvetica,Arial,sans-serif"];
	//
	//   "Life" [label="Life\n1 C" tooltip="Life\n\nBiology" fontsize=20];
	//   "Biology" [label="Biology\n0 C" tooltip="Biology\n\n" fontsize=10];
	//
	//   "Life" -> "Biology" [tooltip="Life  ⟶  Biology" headlabel="Life" minlen=1 penwidth=1 arrowsize=0.5 color="0 1 0.7" labelfontsize=2 labelfontcolor="0 1 0.5"];
	// }
}

func ExampleParseFormats() {
	fmt.Println(render.ParseFormats("svg, HTML"))
	fmt.Println(render.ParseFormats(""))
	// Output:
	// [svg html]
	// [dot svg html]
}
