package pipeline

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wikigraph/pkg/crawl"
	"github.com/matzehuels/wikigraph/pkg/errors"
	"github.com/matzehuels/wikigraph/pkg/graph"
	"github.com/matzehuels/wikigraph/pkg/observability"
	"github.com/matzehuels/wikigraph/pkg/render"
	"github.com/matzehuels/wikigraph/pkg/wiki"
)

// Source provides category data and page links for one Wikipedia edition.
// [wiki.Client] implements it.
type Source interface {
	crawl.Fetcher
	CategoryURL(title string) string
}

// SourceFunc returns the Source for a language edition.
type SourceFunc func(lang string) Source

// WikiSource creates a MediaWiki client for lang.
func WikiSource(lang string) Source {
	return wiki.NewClient(wiki.Options{Lang: lang})
}

// Runner executes the pipeline.
//
// The Runner holds no results, so multiple goroutines can use the same
// Runner with different options.
type Runner struct {
	Source SourceFunc
	Logger *log.Logger
}

// NewRunner creates a runner. A nil source uses [WikiSource] and a nil
// logger uses the default charm logger.
func NewRunner(source SourceFunc, logger *log.Logger) *Runner {
	if source == nil {
		source = WikiSource
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Source: source, Logger: logger}
}

// Execute runs the complete crawl → DOT → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	src := r.Source(opts.Lang)

	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: Crawl
	g, stats, err := r.Crawl(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats = stats

	logger.Debug("crawled categories",
		"nodes", stats.NodeCount,
		"edges", stats.EdgeCount,
		"pruned", stats.Pruned,
		"duration", stats.CrawlTime)

	// Stage 2: Render
	renderStart := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	err = r.Render(ctx, src, result, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Crawl walks the category tree described by opts.
func (r *Runner) Crawl(ctx context.Context, src Source, opts Options) (*graph.Graph, Stats, error) {
	logger := opts.Logger
	co := opts.CrawlOptions()
	co.Logger = logger.Warnf
	co.OnVisit = func(title string, level int) {
		logger.Debug("adding category", "title", title, "level", level)
		if opts.Progress != nil {
			opts.Progress(title, level)
		}
	}

	hooks := observability.Pipeline()
	hooks.OnCrawlStart(ctx, opts.Lang, opts.Category)
	start := time.Now()

	res, err := crawl.Crawl(ctx, src, opts.Category, co)
	elapsed := time.Since(start)

	nodes := 0
	if res != nil {
		nodes = res.Graph.NodeCount()
	}
	hooks.OnCrawlComplete(ctx, opts.Lang, opts.Category, nodes, elapsed, err)
	if err != nil {
		return nil, Stats{}, classify(err, opts.Category)
	}

	return res.Graph, Stats{
		NodeCount: res.Graph.NodeCount(),
		EdgeCount: res.Graph.EdgeCount(),
		Fetched:   res.Stats.Fetched,
		Pruned:    res.Stats.Pruned,
		Capped:    res.Stats.Capped,
		CrawlTime: elapsed,
	}, nil
}

// Render formats result.Graph as DOT and renders the requested formats into
// result.Artifacts. The DOT is validated even when only "dot" is requested.
func (r *Runner) Render(ctx context.Context, src Source, result *Result, opts Options) error {
	ro := opts.RenderOptions()
	ro.URL = src.CategoryURL
	dot := render.ToDOT(result.Graph, ro)
	result.DOT = dot

	if err := render.Validate(dot); err != nil {
		if opts.Style != "" {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "style produces invalid DOT")
		}
		return errors.Wrap(errors.ErrCodeRender, err, "generated invalid DOT")
	}
	if opts.Wants(render.FormatDOT) {
		result.Artifacts[render.FormatDOT] = []byte(dot)
	}
	if !render.NeedsSVG(opts.Formats) {
		return nil
	}

	svg, err := render.RenderSVG(ctx, dot)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(errors.ErrCodeRender, err, "graphviz")
	}
	if opts.Wants(render.FormatSVG) {
		result.Artifacts[render.FormatSVG] = svg
	}
	if opts.Wants(render.FormatHTML) {
		result.Artifacts[render.FormatHTML] = render.RenderHTML(result.Graph.Name(), svg)
	}
	return nil
}

// classify attaches an error code to crawl failures.
func classify(err error, category string) error {
	switch {
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return err
	case stderrors.Is(err, wiki.ErrNotFound):
		return errors.Wrap(errors.ErrCodeCategoryNotFound, err, "category %q", category)
	case stderrors.Is(err, wiki.ErrAPI):
		return errors.Wrap(errors.ErrCodeAPI, err, "wikipedia api")
	case stderrors.Is(err, wiki.ErrNetwork):
		return errors.Wrap(errors.ErrCodeNetwork, err, "fetching categories")
	case stderrors.Is(err, crawl.ErrInvalidDepth):
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "crawl")
	default:
		return errors.Wrap(errors.ErrCodeInternal, err, "crawl")
	}
}
