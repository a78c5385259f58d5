package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/roomgen/pkg/server"
)

// serveCommand creates the serve command, which exposes generation over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var cfg server.Config

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve level generation over HTTP",
		Long: `Start an HTTP server that generates levels on request.

Routes:
  GET  /healthz   build information
  GET  /catalog   the template catalog
  POST /levels    generate a level from JSON options`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := loggerFromContext(cmd.Context())
			srv, err := server.New(cfg, logger)
			if err != nil {
				return err
			}
			printInfo("Listening on %s", StyleValue.Render(srv.Addr()))
			return srv.ListenAndServe(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Addr, "addr", server.DefaultAddr, "listen address")
	flags.StringVar(&cfg.CatalogPath, "catalog", "", "TOML catalog file (default: builtin templates)")
	flags.DurationVar(&cfg.Timeout, "timeout", server.DefaultTimeout, "time limit per generation request")
	flags.IntVar(&cfg.MaxResets, "max-resets", server.DefaultMaxResets, "rejected levels allowed per request")
	flags.Int64Var(&cfg.MaxBodyBytes, "max-body", server.DefaultMaxBodyBytes, "request body limit in bytes")

	return cmd
}
