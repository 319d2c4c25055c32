// Package crawl walks a Wikipedia category subtree into a [graph.Graph].
//
// # Overview
//
// [Crawl] performs a bounded breadth-first walk starting at a root category.
// Each category is fetched and expanded at most once, subcategories are
// visited in sorted order, and no node is placed further than the configured
// depth from the root.
//
//	res, err := crawl.Crawl(ctx, client, "Life", crawl.Options{Depth: 2})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Graph.NodeCount(), res.Graph.EdgeCount())
//
// # Levels and Hues
//
// Nodes carry a Level counting down from Depth at the root to 0 at the
// deepest layer, which renderers use for font and edge sizes. Every branch
// leaving the root gets its own hue, spread around the colour wheel in steps
// of 11/18, and the branch's descendants inherit it.
//
// # Limits
//
// Graphviz struggles with very large graphs, so two limits apply:
//
//   - MaxNodes (default 10000) stops adding new categories once reached.
//   - PruneThreshold (default 1000): larger graphs have their chains of
//     single-parent leaf categories removed bottom-up.
//
// The walk is sequential. Fetch errors abort it and are returned to the caller.
package crawl
