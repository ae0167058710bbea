package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pixmesh/internal/config"
	"github.com/matzehuels/pixmesh/pkg/pipeline"
)

// stdoutPath selects standard output instead of a file.
const stdoutPath = "-"

// formatExt maps output formats to file extensions.
var formatExt = map[string]string{
	pipeline.FormatPyfem:   ".nmesh",
	pipeline.FormatNeutral: ".mesh",
	pipeline.FormatSTL:     ".stl",
	pipeline.FormatJSON:    ".json",
	pipeline.FormatDOT:     ".dot",
	pipeline.FormatSVG:     ".svg",
}

// meshFlags holds the command-line flags shared by mesh, watch and inspect.
// Flags left unset fall back to the config file, then to pipeline defaults.
type meshFlags struct {
	output     string  // output file path (or base path for multiple outputs)
	formats    string  // comma-separated output formats
	thickness  int     // extruded layers
	maxDist    float64 // smoothing radius
	noSmooth   bool    // skip corner smoothing
	noReduce   bool    // keep orthogonal links the diagonals cover
	noVolumes  bool    // omit volume elements
	anyChannel bool    // any nonzero channel is foreground
	invert     bool    // mesh the background instead
	detailed   bool    // coordinates in DOT/SVG labels
	cacheLoc   string  // cache location override
	noCache    bool    // disable caching
	refresh    bool    // ignore cached results
}

// registerMeshFlags adds the mesh option flags to cmd.
func (f *meshFlags) registerMeshFlags(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntVar(&f.thickness, "thickness", pipeline.DefaultThickness, "number of extruded layers")
	fl.Float64Var(&f.maxDist, "max-dist", pipeline.DefaultMaxDist, "smoothing radius in pixels (0 bridges nothing)")
	fl.BoolVar(&f.noSmooth, "no-smooth", false, "skip corner smoothing")
	fl.BoolVar(&f.noReduce, "no-reduce", false, "skip redundant-edge reduction")
	fl.BoolVar(&f.anyChannel, "any-channel", false, "treat any nonzero channel as foreground")
	fl.BoolVar(&f.invert, "invert", false, "mesh the background instead of the foreground")
	fl.StringVar(&f.cacheLoc, "cache", "", "cache location (dir, file:DIR, badger:DIR, redis://..., mongodb://..., none)")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fl.BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
}

// registerOutputFlags adds the output flags to cmd.
func (f *meshFlags) registerOutputFlags(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "output file, base path for several formats, or - for stdout")
	fl.StringVarP(&f.formats, "format", "f", "", "output formats: "+strings.Join(pipeline.ValidFormats, ", ")+" (default nmesh)")
	fl.BoolVar(&f.noVolumes, "no-volumes", false, "omit volume elements")
	fl.BoolVar(&f.detailed, "detailed", false, "show coordinates in dot/svg output")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
}

// options merges the config file's mesh section with the flags the user set.
func (f *meshFlags) options(cmd *cobra.Command, cfg *config.Config) pipeline.Options {
	opts := cfg.Mesh.Clone()
	changed := cmd.Flags().Changed

	if changed("thickness") {
		opts.Thickness = f.thickness
	}
	if changed("max-dist") {
		opts.MaxDist = pipeline.Float64(f.maxDist)
	}
	if changed("no-smooth") {
		opts.NoSmooth = f.noSmooth
	}
	if changed("no-reduce") {
		opts.SkipReduce = f.noReduce
	}
	if changed("no-volumes") {
		opts.SkipVolumes = f.noVolumes
	}
	if changed("any-channel") {
		opts.AnyChannel = f.anyChannel
	}
	if changed("invert") {
		opts.Invert = f.invert
	}
	if changed("detailed") {
		opts.Detailed = f.detailed
	}
	if changed("format") {
		opts.Formats = pipeline.ParseFormats(f.formats)
	}
	opts.Refresh = f.refresh
	return opts
}

// meshCommand creates the mesh command.
func (c *CLI) meshCommand() *cobra.Command {
	var flags meshFlags

	cmd := &cobra.Command{
		Use:   "mesh <image>",
		Short: "Mesh the foreground of an image",
		Long: `Mesh the foreground pixels of an image.

The image is turned into a lattice graph, redundant links are dropped, corners
are smoothed and the result is extruded by --thickness layers. The mesh is
written as a PYFEM file by default; use --format for Netgen neutral, STL,
JSON, DOT or SVG output.

Supported inputs: PNG, JPEG, GIF, BMP, TIFF, WebP and plain PBM/PGM (P1/P2).`,
		Example: `  pixmesh mesh shape.png
  pixmesh mesh shape.png --thickness 4 -f nmesh,stl -o out/shape
  pixmesh mesh drawing.pbm --invert -f neutral -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cfg, flags.cacheLoc, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := flags.options(cmd, cfg)
			return c.runMesh(cmd.Context(), runner, args[0], flags.output, opts)
		},
	}

	flags.registerMeshFlags(cmd)
	flags.registerOutputFlags(cmd)
	return cmd
}

// runMesh meshes one image, writes the artifacts and reports the result.
func (c *CLI) runMesh(ctx context.Context, runner *pipeline.Runner, input, output string, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	res, paths, err := meshOnce(ctx, runner, input, output, opts)
	if err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Meshed %s", input))
	if output != stdoutPath {
		printMeshStats(res)
		for _, p := range paths {
			printFile(p)
		}
	}
	return nil
}

// meshOnce loads input, runs the pipeline and writes every artifact. It
// prints nothing so the watch TUI can report results itself.
func meshOnce(ctx context.Context, runner *pipeline.Runner, input, output string, opts pipeline.Options) (*pipeline.Result, []string, error) {
	img, err := pipeline.Load(ctx, input)
	if err != nil {
		return nil, nil, err
	}
	res, err := runner.Execute(ctx, img, opts)
	if err != nil {
		return nil, nil, err
	}
	formats := opts.Formats
	if len(formats) == 0 {
		formats = []string{pipeline.DefaultFormat}
	}
	paths, err := writeArtifacts(res.Artifacts, formats, output, input)
	if err != nil {
		return nil, nil, err
	}
	return res, paths, nil
}

// outputPaths decides where each format is written. A single format goes to
// output as given; several formats share output as a base path and get one
// extension each. With no output the input's path minus its extension is
// the base.
func outputPaths(output, input string, formats []string) (map[string]string, error) {
	paths := make(map[string]string, len(formats))
	if output == stdoutPath {
		if len(formats) != 1 {
			return nil, fmt.Errorf("cannot write %d formats to stdout", len(formats))
		}
		paths[formats[0]] = stdoutPath
		return paths, nil
	}
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
	} else {
		base := basePath(output, input)
		for _, f := range formats {
			paths[f] = base + formatExt[f]
		}
	}
	for _, p := range paths {
		if filepath.Clean(p) == filepath.Clean(input) {
			return nil, fmt.Errorf("output %s would overwrite the input", p)
		}
	}
	return paths, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.nmesh, .stl, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	for _, known := range formatExt {
		if ext == known {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// writeArtifacts writes each format to its output path and returns the
// files written, in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	paths, err := outputPaths(output, input, formats)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, f := range formats {
		path := paths[f]
		if path == stdoutPath {
			if _, err := os.Stdout.Write(artifacts[f]); err != nil {
				return nil, err
			}
			continue
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
