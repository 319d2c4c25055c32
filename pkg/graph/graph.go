package graph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when the edge already exists.
	ErrDuplicateEdge = errors.New("duplicate edge")
)

// Node is a category in the graph.
type Node struct {
	ID string // Category title without namespace prefix

	// Level is the remaining expansion depth: the crawl root has the
	// configured depth and its children one less, down to 0.
	Level int

	// Hue in [0,1) identifies the root branch the node was first reached through.
	Hue float64

	// Subcategories lists every child title the API reported, sorted,
	// including children that were not added to the graph.
	Subcategories []string

	// Leaf reports that the node was not expanded, because it sits at
	// level 0 or the node cap was reached.
	Leaf bool
}

// Edge is a directed parent -> child relationship.
type Edge struct {
	From  string  // Parent category
	To    string  // Child category
	Index int     // Position of To among From's sorted subcategories
	Hue   float64 // Colour hue of the branch
}

type edgeKey struct{ from, to string }

// Graph is a directed graph of categories.
//
// The zero value is not usable - use New to create a valid Graph.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	name     string
	nodes    map[string]*Node
	order    []string
	edges    []Edge
	edgeSet  map[edgeKey]bool
	outgoing map[string][]string
	incoming map[string][]string
}

// New creates an empty graph named after its root category.
func New(name string) *Graph {
	return &Graph{
		name:     name,
		nodes:    make(map[string]*Node),
		edgeSet:  make(map[edgeKey]bool),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// Name returns the graph name, conventionally the root category title.
func (g *Graph) Name() string { return g.name }

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the ID is empty or ErrDuplicateNodeID if it is taken.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	g.nodes[n.ID] = node
	g.order = append(g.order, n.ID)
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode for missing
// endpoints, and ErrDuplicateEdge if From -> To is already present.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	key := edgeKey{e.From, e.To}
	if g.edgeSet[key] {
		return ErrDuplicateEdge
	}
	g.edgeSet[key] = true
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return nil
}

// HasEdge reports whether the edge from -> to exists.
func (g *Graph) HasEdge(from, to string) bool { return g.edgeSet[edgeKey{from, to}] }

// RemoveEdge removes the edge from -> to if it exists.
func (g *Graph) RemoveEdge(from, to string) {
	key := edgeKey{from, to}
	if !g.edgeSet[key] {
		return
	}
	delete(g.edgeSet, key)
	g.edges = slices.DeleteFunc(g.edges, func(e Edge) bool { return e.From == from && e.To == to })
	g.outgoing[from] = slices.DeleteFunc(g.outgoing[from], func(s string) bool { return s == to })
	g.incoming[to] = slices.DeleteFunc(g.incoming[to], func(s string) bool { return s == from })
}

// RemoveNode removes a node and every edge touching it.
// Removing a missing node is a no-op.
func (g *Graph) RemoveNode(id string) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	for _, child := range slices.Clone(g.outgoing[id]) {
		g.RemoveEdge(id, child)
	}
	for _, parent := range slices.Clone(g.incoming[id]) {
		g.RemoveEdge(parent, id)
	}
	delete(g.nodes, id)
	delete(g.outgoing, id)
	delete(g.incoming, id)
	g.order = slices.DeleteFunc(g.order, func(s string) bool { return s == id })
}

// Nodes returns all nodes in insertion order.
// The returned pointers refer to the graph's nodes.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Node returns the node with the given ID and true, or nil and false if not found.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the IDs of nodes this node has edges to.
// The returned slice should be treated as read-only.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the IDs of nodes that have edges to this node.
// The returned slice should be treated as read-only.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }
