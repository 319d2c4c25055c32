package graph

import (
	"errors"
	"slices"
	"testing"
)

func buildGraph(t *testing.T, ids []string, edges [][2]string) *Graph {
	t.Helper()
	g := New(ids[0])
	for _, id := range ids {
		if err := g.AddNode(Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%q): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatalf("AddEdge(%q, %q): %v", e[0], e[1], err)
		}
	}
	return g
}

func TestAddNode(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		wantErr error
	}{
		{"valid", Node{ID: "Life"}, nil},
		{"empty ID", Node{}, ErrInvalidNodeID},
		{"duplicate", Node{ID: "Root"}, ErrDuplicateNodeID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New("Root")
			_ = g.AddNode(Node{ID: "Root"})
			err := g.AddNode(tt.node)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddNode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddEdge(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		wantErr  error
	}{
		{"valid", "a", "c", nil},
		{"unknown source", "x", "b", ErrUnknownSourceNode},
		{"unknown target", "a", "x", ErrUnknownTargetNode},
		{"duplicate", "a", "b", ErrDuplicateEdge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}})
			err := g.AddEdge(Edge{From: tt.from, To: tt.to})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddEdge() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddEdge_ReverseIsDistinct(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, [][2]string{{"a", "b"}})
	if err := g.AddEdge(Edge{From: "b", To: "a"}); err != nil {
		t.Fatalf("reverse edge should be allowed: %v", err)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestRemoveEdge(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"a", "c"}})
	g.RemoveEdge("a", "b")

	if g.HasEdge("a", "b") {
		t.Error("edge a->b should be removed")
	}
	if got := g.Children("a"); !slices.Equal(got, []string{"c"}) {
		t.Errorf("Children(a) = %v, want [c]", got)
	}
	if got := g.Parents("b"); len(got) != 0 {
		t.Errorf("Parents(b) = %v, want empty", got)
	}

	// Removed edges can be added again
	if err := g.AddEdge(Edge{From: "a", To: "b"}); err != nil {
		t.Errorf("re-adding removed edge: %v", err)
	}

	// Missing edge is a no-op
	g.RemoveEdge("c", "a")
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestRemoveNode(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}})
	g.RemoveNode("b")

	if _, ok := g.Node("b"); ok {
		t.Error("node b should be removed")
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if !g.HasEdge("a", "c") {
		t.Error("unrelated edge a->c should survive")
	}

	var ids []string
	for _, n := range g.Nodes() {
		ids = append(ids, n.ID)
	}
	if !slices.Equal(ids, []string{"a", "c"}) {
		t.Errorf("Nodes() = %v, want [a c]", ids)
	}

	g.RemoveNode("missing")
	if g.NodeCount() != 2 {
		t.Error("removing a missing node should be a no-op")
	}
}

func TestInsertionOrder(t *testing.T) {
	ids := []string{"Root", "Zoology", "Anatomy", "Botany"}
	g := buildGraph(t, ids, [][2]string{{"Root", "Zoology"}, {"Root", "Anatomy"}, {"Root", "Botany"}})

	var got []string
	for _, n := range g.Nodes() {
		got = append(got, n.ID)
	}
	if !slices.Equal(got, ids) {
		t.Errorf("Nodes() order = %v, want %v", got, ids)
	}

	var targets []string
	for _, e := range g.Edges() {
		targets = append(targets, e.To)
	}
	if !slices.Equal(targets, []string{"Zoology", "Anatomy", "Botany"}) {
		t.Errorf("Edges() order = %v", targets)
	}
}

func TestEdgesReturnsCopy(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, [][2]string{{"a", "b"}})
	edges := g.Edges()
	edges[0].To = "mutated"
	if g.Edges()[0].To != "b" {
		t.Error("Edges() should return a copy")
	}
}

func TestName(t *testing.T) {
	if got := New("Life").Name(); got != "Life" {
		t.Errorf("Name() = %q, want Life", got)
	}
}
