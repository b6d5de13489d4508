package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/shapescatter/internal/server"
)

// serveCommand creates the HTTP server command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		maxCount  int
		maxPixels int
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve drawings over HTTP",
		Long: `Serve drawings over HTTP.

GET /render takes the drawing parameters as query parameters, POST /render
as a JSON object; both return the image with its seed in the X-Seed header.
Parameters left out use the configured defaults.`,
		Example: `  shapescatter serve --addr :8080
  curl -o drawing.svg 'localhost:8080/render?count=30&density=0.6&format=svg'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.cfg.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("max-count") {
				cfg.MaxCount = maxCount
			}
			if cmd.Flags().Changed("max-pixels") {
				cfg.MaxPixels = maxPixels
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, c.defaultOptions(), server.Config{
				Addr:         cfg.Addr,
				ReadTimeout:  cfg.ReadTimeout.Duration,
				WriteTimeout: cfg.WriteTimeout.Duration,
				MaxCount:     cfg.MaxCount,
				MaxPixels:    cfg.MaxPixels,
			}, loggerFromContext(ctx))
			printInfo("Listening on %s", styleHighlight.Render(cfg.Addr))
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.cfg.Server.Addr, "listen address")
	cmd.Flags().IntVar(&maxCount, "max-count", c.cfg.Server.MaxCount, "largest figure count a request may ask for (0 keeps only the per-side limit)")
	cmd.Flags().IntVar(&maxPixels, "max-pixels", c.cfg.Server.MaxPixels, "largest width*height a request may ask for (0 keeps only the per-side limit)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}
