package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pixmesh/pkg/api"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		cacheLoc  string
		noCache   bool
		maxUpload int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the mesh pipeline over HTTP",
		Long: `Serve the mesh pipeline over HTTP.

POST an image to /v1/mesh and receive the mesh in the requested format. The
config file's [mesh] section supplies defaults for omitted query parameters.`,
		Example: `  pixmesh serve --addr :8080 --cache badger:/var/cache/pixmesh
  curl --data-binary @shape.png 'localhost:8080/v1/mesh?format=neutral&thickness=3'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cfg, cacheLoc, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("max-upload") {
				cfg.Server.MaxUploadBytes = maxUpload
			}

			srv := api.NewServer(runner,
				api.WithDefaults(cfg.Mesh),
				api.WithMaxUpload(cfg.Server.MaxUploadBytes),
				api.WithLogger(c.Logger),
			)
			return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&cacheLoc, "cache", "", "cache location (dir, file:DIR, badger:DIR, redis://..., mongodb://..., none)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Int64Var(&maxUpload, "max-upload", api.DefaultMaxUpload, "maximum request body in bytes")
	return cmd
}
