package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jverhoeven/anchormap/pkg/canvas"
	"github.com/jverhoeven/anchormap/pkg/layout"
	"github.com/jverhoeven/anchormap/pkg/mapfile"
	"github.com/jverhoeven/anchormap/pkg/render/dot"
)

func newGraphCmd() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "graph <map.yml>",
		Short: "Emit the map's connectivity as a graph",
		Long: `Graph builds the anchor trees of a map without placing anything and
emits them as Graphviz DOT (or an SVG rendered through Graphviz). Useful
to inspect a map's structure when the arrangement itself is not the
question.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mapfile.LoadFile(args[0])
			if err != nil {
				return err
			}
			plan, err := m.Instantiate(mapfile.Options{})
			if err != nil {
				return err
			}

			top, groups, err := buildTrees(plan)
			if err != nil {
				return err
			}
			text := dot.ToDOT(top, groups)

			var (
				data []byte
				ext  string
			)
			switch format {
			case "dot":
				data, ext = []byte(text), ".dot"
			case "svg":
				if data, err = dot.RenderSVG(cmd.Context(), text); err != nil {
					return fmt.Errorf("rendering graph: %w", err)
				}
				ext = ".svg"
			default:
				return fmt.Errorf("unknown format %q (want dot or svg)", format)
			}

			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ext
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: map name)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot or svg")

	return cmd
}

// buildTrees constructs the connectivity trees of a plan without running the
// layout engine. Groups appear in the top-level tree as unit placeholders;
// only the tree structure matters here.
func buildTrees(plan layout.Plan) (*layout.Node, map[string]*layout.Node, error) {
	groups := make(map[string]*layout.Node, len(plan.Groups))
	topItems := make(map[string]canvas.Item, len(plan.Groups)+len(plan.TopShapes))

	for _, g := range plan.Groups {
		root, err := layout.BuildTree(g.Shapes, g.Decls)
		if err != nil {
			return nil, nil, fmt.Errorf("group %s: %w", g.Name, err)
		}
		groups[g.Name] = root
		topItems[g.Name] = canvas.NewShape(g.Name, 1, 1)
	}
	for name, shape := range plan.TopShapes {
		topItems[name] = shape
	}

	top, err := layout.BuildTree(topItems, plan.TopDecls)
	if err != nil {
		return nil, nil, fmt.Errorf("top level: %w", err)
	}
	return top, groups, nil
}
