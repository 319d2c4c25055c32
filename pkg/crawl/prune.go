package crawl

import "github.com/matzehuels/wikigraph/pkg/graph"

// Prune removes chains of standalone categories from g and returns the
// number of removed nodes.
//
// Starting at each leaf, a node is removed while it has exactly one parent.
// The walk then moves up to that parent if it was left without children,
// so a branch that ends in a single-parent chain disappears completely.
// Nodes with several parents, and the root, are kept.
func Prune(g *graph.Graph, leaves []string) int {
	removed := 0
	for _, n := range leaves {
		for {
			parents := g.Parents(n)
			if len(parents) != 1 {
				break
			}
			p := parents[0]
			g.RemoveNode(n)
			removed++
			if len(g.Children(p)) > 0 {
				break
			}
			n = p
		}
	}
	return removed
}
