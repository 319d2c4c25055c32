package crawl

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/matzehuels/wikigraph/pkg/graph"
)

const (
	DefaultDepth          = 2     // Default maximal hierarchy depth
	DefaultMaxNodes       = 10000 // Graphviz fails on graphs much larger than this
	DefaultPruneThreshold = 1000  // Node count above which lone leaves are pruned
)

// hueStep spreads root branches around the colour wheel.
const hueStep = 11.0 / 18.0

// ErrInvalidDepth is returned when Options.Depth is negative.
var ErrInvalidDepth = errors.New("depth must not be negative")

// Fetcher retrieves category data. [wiki.Client] implements it.
type Fetcher interface {
	// Exists returns an error wrapping wiki.ErrNotFound for missing categories.
	Exists(ctx context.Context, title string) error
	// Subcategories returns the sorted direct subcategories of title.
	Subcategories(ctx context.Context, title string) ([]string, error)
}

// Options configures a crawl.
type Options struct {
	Depth          int                           // Maximal distance from the root (0 = root only)
	MaxNodes       int                           // Hard node cap (0 = DefaultMaxNodes)
	PruneThreshold int                           // Prune above this many nodes (0 = default, <0 = never)
	Logger         func(string, ...any)          // Warning callback (optional)
	OnVisit        func(title string, level int) // Progress callback, called once per fetched category (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = DefaultMaxNodes
	}
	if opts.PruneThreshold == 0 {
		opts.PruneThreshold = DefaultPruneThreshold
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	if opts.OnVisit == nil {
		opts.OnVisit = func(string, int) {}
	}
	return opts
}

// Stats summarizes a crawl.
type Stats struct {
	Fetched int  // Categories whose subcategories were fetched
	Capped  bool // MaxNodes was reached
	Pruned  int  // Nodes removed by pruning
}

// Result is the outcome of a crawl.
type Result struct {
	Graph *graph.Graph
	Stats Stats
}

// Crawl walks the category tree below root breadth first.
//
// The root must exist; otherwise the error from Fetcher.Exists is returned.
// Any fetch error or context cancellation aborts the walk.
func Crawl(ctx context.Context, f Fetcher, root string, opts Options) (*Result, error) {
	if opts.Depth < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDepth, opts.Depth)
	}
	c := &crawler{
		ctx:   ctx,
		fetch: f,
		opts:  opts.WithDefaults(),
		root:  root,
		g:     graph.New(root),
	}
	if err := f.Exists(ctx, root); err != nil {
		return nil, err
	}
	if err := c.run(); err != nil {
		return nil, err
	}
	return &Result{Graph: c.g, Stats: c.stats}, nil
}

type crawler struct {
	ctx   context.Context
	fetch Fetcher
	opts  Options
	root  string

	g      *graph.Graph
	queue  []string
	leaves []string
	stats  Stats
}

func (c *crawler) run() error {
	_ = c.g.AddNode(graph.Node{ID: c.root, Level: c.opts.Depth})
	c.queue = append(c.queue, c.root)

	for len(c.queue) > 0 {
		if err := c.ctx.Err(); err != nil {
			return err
		}
		id := c.queue[0]
		c.queue = c.queue[1:]
		if err := c.visit(id); err != nil {
			return err
		}
	}

	if c.opts.PruneThreshold > 0 && c.g.NodeCount() > c.opts.PruneThreshold {
		c.opts.Logger("removing standalone subcategories because graph is too big (%d nodes)", c.g.NodeCount())
		c.stats.Pruned = Prune(c.g, c.leaves)
	}
	return nil
}

// visit fetches the subcategories of id and, unless id is a leaf, adds
// them to the graph and the queue.
func (c *crawler) visit(id string) error {
	node, _ := c.g.Node(id)

	subcats, err := c.fetch.Subcategories(c.ctx, id)
	if err != nil {
		return err
	}
	c.stats.Fetched++
	node.Subcategories = subcats
	c.opts.OnVisit(id, node.Level)

	if node.Level == 0 || c.full() {
		node.Leaf = true
		c.leaves = append(c.leaves, id)
		return nil
	}

	for i, child := range subcats {
		hue := node.Hue
		if id == c.root {
			hue = math.Mod(hueStep*float64(i), 1)
		}
		if _, exists := c.g.Node(child); !exists {
			if c.full() {
				continue
			}
			_ = c.g.AddNode(graph.Node{ID: child, Level: node.Level - 1, Hue: hue})
			c.queue = append(c.queue, child)
		}
		if err := c.g.AddEdge(graph.Edge{From: id, To: child, Index: i, Hue: hue}); err != nil && !errors.Is(err, graph.ErrDuplicateEdge) {
			return err
		}
	}
	return nil
}

// full reports whether the node cap is reached, warning the first time.
func (c *crawler) full() bool {
	if c.g.NodeCount() < c.opts.MaxNodes {
		return false
	}
	if !c.stats.Capped {
		c.stats.Capped = true
		c.opts.Logger("number of nodes reached limit (%d)", c.opts.MaxNodes)
	}
	return true
}
