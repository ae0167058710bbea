package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/pixmesh/pkg/io"
	"github.com/matzehuels/pixmesh/pkg/mesh"
	"github.com/matzehuels/pixmesh/pkg/pipeline"
)

// meshSummary is what inspect reports about a mesh.
type meshSummary struct {
	Source     string
	Width      int // raster size, 0 for saved graphs
	Height     int
	Foreground int
	Vertices   int
	Links      int
	Corners    int // depth-0 vertices the smoother treats as corners
	Sides      int
	Layers     int
	Surfaces   int
	Volumes    int
}

// summarize counts the vertices, links and elements of g.
func summarize(g *mesh.Graph) meshSummary {
	s := meshSummary{
		Vertices: g.Len(),
		Links:    g.EdgeCount(),
		Layers:   g.Layers(),
		Surfaces: len(mesh.Surfaces(g)),
		Volumes:  len(mesh.Volumes(g)),
	}
	for _, v := range g.Vertices() {
		if v.Z != 0 {
			continue
		}
		switch {
		case v.IsCorner():
			s.Corners++
		case v.IsSide():
			s.Sides++
		}
	}
	return s
}

// renderSummary formats s as a table.
func renderSummary(s meshSummary) string {
	rows := [][]string{}
	if s.Width > 0 || s.Height > 0 {
		rows = append(rows,
			[]string{"Size", fmt.Sprintf("%d×%d", s.Width, s.Height)},
			[]string{"Foreground", strconv.Itoa(s.Foreground)},
		)
	}
	rows = append(rows,
		[]string{"Vertices", strconv.Itoa(s.Vertices)},
		[]string{"Links", strconv.Itoa(s.Links)},
		[]string{"Corners", strconv.Itoa(s.Corners)},
		[]string{"Sides", strconv.Itoa(s.Sides)},
		[]string{"Layers", strconv.Itoa(s.Layers)},
		[]string{"Surfaces", strconv.Itoa(s.Surfaces)},
		[]string{"Volumes", strconv.Itoa(s.Volumes)},
	)

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", s.Source).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorGray).PaddingRight(1)
			default:
				return StyleNumber
			}
		})
	return t.Render()
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags meshFlags

	cmd := &cobra.Command{
		Use:   "inspect <image|graph.json>",
		Short: "Show mesh statistics for an image or saved graph",
		Long: `Show vertex, link and element counts.

Images are meshed with the same options as "pixmesh mesh"; graphs saved as
JSON are inspected as they are.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]

			if strings.EqualFold(filepath.Ext(input), ".json") {
				g, err := pkgio.ImportJSON(input)
				if err != nil {
					return err
				}
				s := summarize(g)
				s.Source = filepath.Base(input)
				fmt.Println(renderSummary(s))
				return nil
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cfg, flags.cacheLoc, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			img, err := pipeline.Load(cmd.Context(), input)
			if err != nil {
				return err
			}
			opts := flags.options(cmd, cfg)
			g, err := runner.Mesh(cmd.Context(), img, opts)
			if err != nil {
				return err
			}

			s := summarize(g)
			s.Source = filepath.Base(input)
			s.Width, s.Height = img.Width, img.Height
			s.Foreground = img.Foreground(opts.ChannelRule())
			if opts.Invert {
				s.Foreground = img.Width*img.Height - s.Foreground
			}
			fmt.Println(renderSummary(s))
			return nil
		},
	}

	flags.registerMeshFlags(cmd)
	return cmd
}
