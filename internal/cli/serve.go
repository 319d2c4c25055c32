package cli

import (
	"context"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wikigraph/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve category graphs over HTTP",
		Long: `Start a preview server that renders category graphs on request.

  GET /graph/{category}?format=svg|dot|html&depth=2&downsize=4&style=...&lang=en
  GET /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfigFor(cmd); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), addr, timeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultTimeout, "per-request timeout")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, timeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Runner:  c.newRunner(),
		Logger:  c.Logger,
		Timeout: timeout,
	})

	base := "http://" + ln.Addr().String()
	printInfo("Serving category graphs on %s", StyleTitle.Render(base))
	printKeyValue("Example", StyleLink.Render(base+"/graph/Life?format=html"))
	printKeyValue("Health", StyleLink.Render(base+"/healthz"))

	return srv.Serve(ctx, ln)
}
