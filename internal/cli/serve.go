package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tracesplit/pkg/api"
	"github.com/matzehuels/tracesplit/pkg/observability"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the split pipeline over HTTP",
		Long: `Serve the split pipeline over HTTP until interrupted.

Endpoints:
  GET  /healthz
  GET  /v1/trace-types
  GET  /v1/transforms
  GET  /v1/transforms/{name}/defaults
  POST /v1/transforms/{name}/defaults
  POST /v1/split

The listen address defaults to [server] addr from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			hooks := observability.NewLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
			defer observability.Reset()

			return api.NewServer(runner, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: "+defaultAddr+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
