package render

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/wikigraph/pkg/graph"
)

const (
	// DefaultDownsize is the font size divider per level.
	DefaultDownsize = 4.0

	fontName = `"Helvetica,Arial,sans-serif"`

	// maxTooltip is the number of characters of the subcategory list
	// shown in a node tooltip.
	maxTooltip = 1000
)

// Options configures DOT generation.
type Options struct {
	// Style holds raw DOT statements appended after the default attributes.
	Style string

	// Downsize divides font and edge sizes per level. 1 keeps all nodes the
	// same size. Defaults to DefaultDownsize.
	Downsize float64

	// URL maps a category title to the page linked from its node.
	// Nodes get no link when nil.
	URL func(title string) string
}

// ToDOT formats g as a Graphviz digraph named after the root category.
//
// Nodes are written in insertion order followed by all edges, so equal
// graphs produce identical output.
func ToDOT(g *graph.Graph, opts Options) string {
	if opts.Downsize <= 0 {
		opts.Downsize = DefaultDownsize
	}

	rootLevel := 0
	if root, ok := g.Node(g.Name()); ok {
		rootLevel = root.Level
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %s {\n", quote(g.Name()))
	fmt.Fprintf(&buf, "  graph [rankdir=LR ranksep=2 concentrate=true fontname=%s];\n", fontName)
	fmt.Fprintf(&buf, "  node [newrank=true shape=plaintext fontname=%s];\n", fontName)
	fmt.Fprintf(&buf, "  edge [arrowhead=open labeldistance=3 labelfontcolor=\"#00000080\" fontname=%s];\n", fontName)
	if style := strings.TrimSpace(opts.Style); style != "" {
		fmt.Fprintf(&buf, "  %s\n", style)
	}
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(n.ID), strings.Join(nodeAttrs(n, opts), " "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		parent, _ := g.Node(e.From)
		attrs := edgeAttrs(e, parent, parent.Level == rootLevel, opts)
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", quote(e.From), quote(e.To), strings.Join(attrs, " "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *graph.Node, opts Options) []string {
	size := levelSize(opts.Downsize, n.Level)
	attrs := []string{
		"label=" + quote(fmt.Sprintf("%s\n%d C", n.ID, len(n.Subcategories))),
		"tooltip=" + quote(tooltip(n)),
	}
	if opts.URL != nil {
		attrs = append(attrs, "URL="+quote(opts.URL(n.ID)))
	}
	return append(attrs, fmt.Sprintf("fontsize=%d", int(10*size)))
}

// tooltip lists the subcategories of n below its title, with spaces as
// non-breaking so Graphviz wraps only between titles.
func tooltip(n *graph.Node) string {
	names := make([]string, len(n.Subcategories))
	for i, s := range n.Subcategories {
		names[i] = strings.ReplaceAll(s, " ", "&nbsp;")
	}
	subs := strings.Join(names, ", ")
	if r := []rune(subs); len(r) > maxTooltip {
		subs = string(r[:maxTooltip]) + " ..."
	}
	return n.ID + "\n\n" + subs
}

func edgeAttrs(e graph.Edge, parent *graph.Node, fromRoot bool, opts Options) []string {
	size := levelSize(opts.Downsize, parent.Level)

	// Children of one parent are spread over a few ranks so wide
	// categories don't become a single tall column.
	minlen := 1
	if !fromRoot {
		columns := len(parent.Subcategories)/5 + 1
		minlen = e.Index%columns + 1
	}

	hue := formatFloat(e.Hue)
	return []string{
		"tooltip=" + quote(e.From+"  ⟶  "+e.To),
		"headlabel=" + quote(e.From),
		fmt.Sprintf("minlen=%d", minlen),
		"penwidth=" + formatFloat(size/2),
		"arrowsize=" + formatFloat(size/4),
		"color=" + quote(hue+" 1 0.7"),
		fmt.Sprintf("labelfontsize=%d", int(size)),
		"labelfontcolor=" + quote(hue+" 1 0.5"),
	}
}

func levelSize(downsize float64, level int) float64 {
	return math.Pow(downsize, float64(level))
}

// formatFloat rounds f to two decimals and drops trailing zeros.
func formatFloat(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// quote returns s as a DOT double-quoted string. Newlines become \n
// escapes, which Graphviz renders as centred line breaks.
func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}
