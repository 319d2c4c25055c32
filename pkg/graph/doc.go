// Package graph provides the category graph built by a crawl.
//
// # Overview
//
// A [Graph] holds Wikipedia categories as nodes and parent/child
// relationships as directed edges. Unlike the category system itself it is
// small and in-memory: it lives for a single run, between the crawl that
// fills it and the renderer that serializes it.
//
// Category trees are not guaranteed to be acyclic, so the graph does not
// enforce acyclicity. It does enforce:
//
//   - Unique, non-empty node IDs ([ErrInvalidNodeID], [ErrDuplicateNodeID])
//   - Edges only between existing nodes ([ErrUnknownSourceNode], [ErrUnknownTargetNode])
//   - No duplicate edges ([ErrDuplicateEdge])
//
// # Ordering
//
// [Graph.Nodes] and [Graph.Edges] return elements in insertion order, so the
// output of a renderer is deterministic for a deterministic crawl.
//
// # Usage
//
//	g := graph.New("Life")
//	_ = g.AddNode(graph.Node{ID: "Life", Level: 2})
//	_ = g.AddNode(graph.Node{ID: "Biology", Level: 1})
//	_ = g.AddEdge(graph.Edge{From: "Life", To: "Biology"})
package graph
