package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/pixmesh/pkg/io"
	"github.com/matzehuels/pixmesh/pkg/pipeline"
)

// exportCommand creates the export command, which re-renders a graph saved
// with --format json without meshing again.
func (c *CLI) exportCommand() *cobra.Command {
	var flags meshFlags

	cmd := &cobra.Command{
		Use:   "export <graph.json>",
		Short: "Export a saved mesh graph to other formats",
		Long: `Export a mesh graph saved with "pixmesh mesh --format json".

The graph is rendered as-is: no reduction, smoothing or extrusion is applied.`,
		Example: `  pixmesh export shape.json -f neutral
  pixmesh export shape.json -f svg --detailed -o shape-debug.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			g, err := pkgio.ImportJSON(args[0])
			if err != nil {
				return err
			}
			logger.Debug("loaded graph", "vertices", g.Len(), "layers", g.Layers())

			opts := flags.options(cmd, cfg)
			if len(opts.Formats) == 0 {
				opts.Formats = []string{pipeline.DefaultFormat}
			}
			artifacts, err := pipeline.Render(ctx, g, opts)
			if err != nil {
				return err
			}

			paths, err := writeArtifacts(artifacts, opts.Formats, flags.output, args[0])
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Exported %s", args[0]))
			for _, p := range paths {
				printFile(p)
			}
			return nil
		},
	}

	flags.registerOutputFlags(cmd)
	return cmd
}
