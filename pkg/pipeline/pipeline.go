// Package pipeline runs the crawl → DOT → render pipeline of wikigraph.
//
// Both the command line and the preview server go through [Runner.Execute],
// so they share defaults, validation and error codes.
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Category: "Life",
//	    Depth:    2,
//	    Formats:  []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Errors returned by Execute carry a [errors.Code]: INVALID_* for bad
// options, CATEGORY_NOT_FOUND, NETWORK_ERROR and API_ERROR for MediaWiki
// failures and RENDER_ERROR for Graphviz failures. Context cancellation is
// returned unchanged.
package pipeline

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wikigraph/pkg/crawl"
	"github.com/matzehuels/wikigraph/pkg/errors"
	"github.com/matzehuels/wikigraph/pkg/graph"
	"github.com/matzehuels/wikigraph/pkg/render"
	"github.com/matzehuels/wikigraph/pkg/wiki"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultCategory is crawled when no category is given.
	DefaultCategory = "Main topic classifications"

	// DefaultDepth is the hierarchy depth used by the CLI and server.
	DefaultDepth = crawl.DefaultDepth

	// MaxDepth bounds the depth accepted from users. Category trees grow
	// roughly tenfold per level, so deeper crawls only hit the node cap.
	MaxDepth = 10

	// DefaultDownsize is the font size divider per level.
	DefaultDownsize = render.DefaultDownsize

	// DefaultLang is the Wikipedia edition.
	DefaultLang = wiki.DefaultLang
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	Category string   `json:"category"`
	Lang     string   `json:"lang,omitempty"`
	Depth    int      `json:"depth"` // 0 renders the root category alone
	Downsize float64  `json:"downsize,omitempty"`
	Style    string   `json:"style,omitempty"`
	Formats  []string `json:"formats,omitempty"`

	MaxNodes       int `json:"max_nodes,omitempty"`
	PruneThreshold int `json:"prune_threshold,omitempty"` // negative disables pruning

	// Runtime options (not serialized)
	Logger   *log.Logger                   `json:"-"`
	Progress func(title string, level int) `json:"-"` // Called once per fetched category

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the crawled category graph.
	Graph *graph.Graph

	// DOT is the generated Graphviz source, present for every format.
	DOT string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Fetched    int
	Pruned     int
	Capped     bool
	CrawlTime  time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults normalizes the category, checks all fields and
// applies defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Category == "" {
		o.Category = DefaultCategory
	}
	o.Category = wiki.NormalizeTitle(o.Category)
	if err := errors.ValidateCategoryName(o.Category); err != nil {
		return err
	}

	if o.Lang == "" {
		o.Lang = DefaultLang
	}
	if err := errors.ValidateLanguage(o.Lang); err != nil {
		return err
	}

	if o.Depth < 0 || o.Depth > MaxDepth {
		return errors.New(errors.ErrCodeInvalidInput, "depth must be between 0 and %d, got %d", MaxDepth, o.Depth)
	}
	if o.Downsize == 0 {
		o.Downsize = DefaultDownsize
	}
	if o.Downsize < 0 || math.IsNaN(o.Downsize) || math.IsInf(o.Downsize, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "downsize must be a positive number, got %g", o.Downsize)
	}
	// The root font size is 10*downsize^depth and must stay a sane int.
	if 10*math.Pow(o.Downsize, float64(o.Depth)) > math.MaxInt32 {
		return errors.New(errors.ErrCodeInvalidInput, "downsize %g is too large for depth %d", o.Downsize, o.Depth)
	}
	if o.MaxNodes < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max nodes must not be negative, got %d", o.MaxNodes)
	}

	if len(o.Formats) == 0 {
		o.Formats = render.ParseFormats("")
	}
	if err := render.ValidateFormats(o.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "unsupported output")
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// CrawlOptions returns the crawl configuration for these options.
func (o *Options) CrawlOptions() crawl.Options {
	return crawl.Options{
		Depth:          o.Depth,
		MaxNodes:       o.MaxNodes,
		PruneThreshold: o.PruneThreshold,
	}
}

// RenderOptions returns the DOT configuration for these options.
func (o *Options) RenderOptions() render.Options {
	return render.Options{
		Style:    o.Style,
		Downsize: o.Downsize,
	}
}

// Wants reports whether format was requested.
func (o *Options) Wants(format string) bool {
	for _, f := range o.Formats {
		if f == format {
			return true
		}
	}
	return false
}
