package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wikigraph/pkg/crawl"
	"github.com/matzehuels/wikigraph/pkg/errors"
	"github.com/matzehuels/wikigraph/pkg/pipeline"
	"github.com/matzehuels/wikigraph/pkg/render"
	"github.com/matzehuels/wikigraph/pkg/wiki"
)

// askMarker as the category or output name asks for it interactively.
const askMarker = "?"

// categoryOpts holds the flags of the category command.
type categoryOpts struct {
	depth          int
	downsize       float64
	style          string
	to             string
	formats        string
	lang           string
	maxNodes       int
	pruneThreshold int
	stdout         bool
}

// writtenFile describes one saved artifact.
type writtenFile struct {
	format string
	path   string
	size   int
}

func (c *CLI) categoryCommand() *cobra.Command {
	var opts categoryOpts

	cmd := &cobra.Command{
		Use:   "category [NAME]",
		Short: "Draw the subcategory graph of a Wikipedia category",
		Long: `Crawl a Wikipedia category and its subcategories breadth first and save the
graph as Graphviz DOT, SVG and a zoomable HTML page.

NAME defaults to "Main topic classifications". Pass "?" to be asked for it.
Output files are named after the category with spaces replaced by
underscores, unless --to gives another base name ("?" asks for it).`,
		Example: `  # Depth 2 graph of Life as Life.dot, Life.svg and Life.html
  wikigraph category Life

  # Same font size on every level, custom style, SVG only
  wikigraph category Life -d 3 --downsize 1 --style 'graph [bgcolor=white]' -f svg

  # German Wikipedia, DOT to stdout
  wikigraph category Biologie -l de -f dot --stdout`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfigFor(cmd); err != nil {
				return err
			}
			name := pipeline.DefaultCategory
			if len(args) == 1 {
				name = args[0]
			}
			return c.runCategory(cmd.Context(), name, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.depth, "depth", "d", pipeline.DefaultDepth, "maximal hierarchy depth")
	flags.Float64Var(&opts.downsize, "downsize", pipeline.DefaultDownsize, "font size divider per level (1 keeps all sizes equal)")
	flags.StringVar(&opts.style, "style", "", "raw Graphviz statements appended to the default style")
	flags.StringVarP(&opts.to, "to", "o", "", `base name of the output files ("?" to ask)`)
	flags.StringVarP(&opts.formats, "format", "f", "dot,svg,html", "output formats: dot, svg, html (comma-separated)")
	flags.StringVarP(&opts.lang, "lang", "l", pipeline.DefaultLang, "Wikipedia language edition")
	flags.IntVar(&opts.maxNodes, "max-nodes", crawl.DefaultMaxNodes, "stop adding categories at this many nodes")
	flags.IntVar(&opts.pruneThreshold, "prune-threshold", crawl.DefaultPruneThreshold, "remove lone leaf categories above this many nodes (negative disables)")
	flags.BoolVar(&opts.stdout, "stdout", false, "write the single requested format to stdout instead of files")

	return cmd
}

func (c *CLI) runCategory(ctx context.Context, name string, opts categoryOpts) error {
	formats := render.ParseFormats(opts.formats)
	if opts.stdout && len(formats) != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "--stdout needs exactly one format, got %d", len(formats))
	}

	if name == askMarker {
		answer, err := c.prompt("Category", pipeline.DefaultCategory)
		if err != nil {
			return err
		}
		name = answer
	}
	title := wiki.NormalizeTitle(name)

	base, err := c.outputBase(title, opts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Crawling %s...", title))
	fetched := 0
	popts := pipeline.Options{
		Category:       title,
		Lang:           opts.lang,
		Depth:          opts.depth,
		Downsize:       opts.downsize,
		Style:          opts.style,
		Formats:        formats,
		MaxNodes:       opts.maxNodes,
		PruneThreshold: opts.pruneThreshold,
		Logger:         c.Logger,
		Progress: func(category string, level int) {
			fetched++
			spinner.SetMessage(fmt.Sprintf("Crawling %s... %d categories, at %s", title, fetched, category))
		},
	}

	prog := newProgress(c.Logger)
	spinner.Start()
	result, err := c.newRunner().Execute(ctx, popts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
		} else {
			spinner.StopWithError(fmt.Sprintf("Failed to crawl %s", title))
		}
		return err
	}
	if opts.stdout {
		spinner.Stop()
		_, err := c.stdout.Write(result.Artifacts[formats[0]])
		return err
	}

	spinner.StopWithSuccess(fmt.Sprintf("Crawled %s", StyleTitle.Render(title)))
	printStats(result.Stats)
	if result.Stats.Capped {
		printWarning("%s", nodeLimitWarning(opts.maxNodes))
	}
	if result.Stats.Pruned > 0 {
		printDetail("removed %d standalone subcategories to keep the graph readable", result.Stats.Pruned)
	}

	files, err := writeArtifacts(base, formats, result.Artifacts)
	if len(files) > 0 {
		fmt.Println(outputTable(files))
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Saved %d files", len(files)))

	if result.Artifacts[render.FormatHTML] != nil {
		printNextStep("Open in a browser", base+".html")
	}
	return nil
}

// nodeLimitWarning reports the node cap the crawl actually applied.
func nodeLimitWarning(maxNodes int) string {
	limit := crawl.Options{MaxNodes: maxNodes}.WithDefaults().MaxNodes
	return fmt.Sprintf("Node limit of %d reached, the graph is incomplete", limit)
}

// outputBase resolves the --to flag to the base name of the output files.
func (c *CLI) outputBase(title string, opts categoryOpts) (string, error) {
	base := opts.to
	if opts.stdout {
		return "", nil
	}
	if base == askMarker {
		answer, err := c.prompt("Output file name", wiki.FileName(title))
		if err != nil {
			return "", err
		}
		base = answer
	}
	if base == "" {
		base = wiki.FileName(title)
	}
	if err := errors.ValidateOutputBase(base); err != nil {
		return "", err
	}
	return base, nil
}

// writeArtifacts saves each requested format as base.<format>.
// Files written before a failure are returned along with the error.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]writtenFile, error) {
	var files []writtenFile
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return files, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		files = append(files, writtenFile{format: format, path: path, size: len(data)})
	}
	return files, nil
}
