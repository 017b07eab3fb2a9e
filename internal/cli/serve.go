package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mazer/pkg/server"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		envFile string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render pipeline over HTTP",
		Long: `Serve the render pipeline over HTTP.

Configuration comes from MAZER_* environment variables, optionally loaded
from a .env file:

  MAZER_ADDR           listen address (default :8080)
  MAZER_REDIS_URL      shared artifact cache
  MAZER_CACHE_PREFIX   cache key namespace
  MAZER_MONGO_URI      snapshot store (default: in memory)
  MAZER_MONGO_DB       database name (default mazer)
  MAZER_STORE_DIR      file snapshot store when no MongoDB is set
  MAZER_CORS_ORIGINS   comma-separated allowed origins (default *)
  MAZER_SNAPSHOT_TTL   snapshot lifetime (default 24h)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig(envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			ctx := cmd.Context()
			srv, err := server.Open(ctx, cfg, c.Logger)
			if err != nil {
				return err
			}
			defer srv.Close()
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "environment file to load")
	return cmd
}
