package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jverhoeven/anchormap/pkg/cache"
	"github.com/jverhoeven/anchormap/pkg/canvas"
	"github.com/jverhoeven/anchormap/pkg/layout"
	"github.com/jverhoeven/anchormap/pkg/mapfile"
	"github.com/jverhoeven/anchormap/pkg/render/dot"
	"github.com/jverhoeven/anchormap/pkg/render/layoutjson"
	"github.com/jverhoeven/anchormap/pkg/render/svgmap"
)

type renderOpts struct {
	output   string
	formats  []string
	spacing  float64
	margin   float64
	scale    float64
	macros   []string
	validate bool
	cache    bool
}

func newRenderCmd(cfg *Config) *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <map.yml>",
		Short: "Arrange a map and write the result",
		Long: `Render loads a YAML map description, computes absolute positions for
every shape, group and connector, and writes the result in one or more
formats. Output files take the map's base name unless -o is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flags the user left untouched fall back to the config file.
			if !cmd.Flags().Changed("spacing") {
				opts.spacing = cfg.Render.MinSpacing
			}
			if !cmd.Flags().Changed("margin") {
				opts.margin = cfg.Render.GroupMargin
			}
			if !cmd.Flags().Changed("scale") {
				opts.scale = cfg.Render.Scale
			}
			return runRender(cmd, cfg, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: map name)")
	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", []string{"svg"}, "output formats: svg, json, dot")
	cmd.Flags().Float64Var(&opts.spacing, "spacing", 30, "minimum clearance between boxes")
	cmd.Flags().Float64Var(&opts.margin, "margin", 5, "margin around group boundaries")
	cmd.Flags().Float64Var(&opts.scale, "scale", 10, "SVG scale factor")
	cmd.Flags().StringArrayVar(&opts.macros, "macro", nil, "macro value as key=value (repeatable)")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "fail when placed shapes overlap")
	cmd.Flags().BoolVar(&opts.cache, "cache", false, "reuse rendered artifacts from the on-disk cache")

	return cmd
}

func runRender(cmd *cobra.Command, cfg *Config, opts renderOpts, mapPath string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	macros, err := parseMacroFlags(opts.macros)
	if err != nil {
		return err
	}

	arr, err := arrangeFile(mapPath, mapfile.Options{
		MinSpacing:  opts.spacing,
		GroupMargin: opts.margin,
		Macros:      macros,
	}, logger)
	if err != nil {
		return err
	}

	if !arr.valid {
		printWarning("layout has overlapping shapes")
		if opts.validate {
			return fmt.Errorf("validation failed: overlapping shapes")
		}
	}

	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(mapPath, filepath.Ext(mapPath))
	}

	store, layoutKey, err := openRenderCache(cfg, opts, mapPath)
	if err != nil {
		return err
	}
	defer store.Close()
	keyer := cache.NewDefaultKeyer()

	extensions := map[string]string{"svg": ".svg", "json": ".json", "dot": ".dot"}
	for _, format := range opts.formats {
		ext, ok := extensions[format]
		if !ok {
			return fmt.Errorf("unknown format %q (want svg, json or dot)", format)
		}
		path := base + ext
		// The SVG artifact also varies with scale and connector style.
		tag := format
		if format == "svg" {
			tag = fmt.Sprintf("svg:%g:%s:%g", opts.scale, cfg.Render.ConnectorColor, cfg.Render.ConnectorWidth)
		}
		key := keyer.ArtifactKey(layoutKey, tag)

		if data, hit, _ := store.Get(ctx, key); hit {
			logger.Debug("artifact cache hit", "format", format)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			printFile(path)
			continue
		}

		var data []byte
		switch format {
		case "svg":
			data = svgmap.Render(arr.canvas,
				svgmap.WithScale(opts.scale),
				svgmap.WithConnectorStyle(cfg.Render.ConnectorColor, cfg.Render.ConnectorWidth))
		case "json":
			if data, err = layoutjson.Marshal(arr.canvas, arr.valid); err != nil {
				return err
			}
		case "dot":
			data = []byte(dot.ToDOT(arr.result.Top, arr.result.GroupTrees))
		}
		_ = store.Set(ctx, key, data, 0)

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		printFile(path)
	}

	prog.done("rendered " + mapPath)
	printSuccess("arranged %d shapes, %d groups", len(arr.plan.LeafShapes()), len(arr.plan.Groups))
	return nil
}

// openRenderCache returns the artifact store for a render run: a file cache
// keyed by the map's content hash when --cache is set, a null cache
// otherwise.
func openRenderCache(cfg *Config, opts renderOpts, mapPath string) (cache.Cache, string, error) {
	if !opts.cache {
		return cache.NewNullCache(), "", nil
	}
	body, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, "", err
	}
	// Macro overrides are part of the effective map content.
	for _, m := range opts.macros {
		body = append(body, 0)
		body = append(body, m...)
	}
	dir, err := resolveCacheDir(cfg)
	if err != nil {
		return nil, "", err
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, "", fmt.Errorf("opening cache: %w", err)
	}
	layoutKey := cache.NewDefaultKeyer().LayoutKey(cache.Hash(body), cache.LayoutKeyOpts{
		MinSpacing:  opts.spacing,
		GroupMargin: opts.margin,
	})
	return fc, layoutKey, nil
}

// fileArrangement bundles everything a command needs after arranging a map
// file.
type fileArrangement struct {
	canvas *canvas.Canvas
	plan   layout.Plan
	result *layout.Result
	valid  bool
}

// arrangeFile loads, instantiates and arranges a map file on a fresh canvas.
func arrangeFile(path string, opts mapfile.Options, logger *log.Logger) (*fileArrangement, error) {
	m, err := mapfile.LoadFile(path)
	if err != nil {
		return nil, err
	}
	plan, err := m.Instantiate(opts)
	if err != nil {
		return nil, err
	}

	c := canvas.New()
	res, err := layout.ArrangeWithLogger(c, plan, logger)
	if err != nil {
		return nil, err
	}
	valid := layout.ValidateWithLogger(c, plan.LeafShapes(), logger)
	return &fileArrangement{canvas: c, plan: plan, result: res, valid: valid}, nil
}

// parseMacroFlags turns repeated key=value flags into a macro map.
func parseMacroFlags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	macros := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("bad macro %q (want key=value)", p)
		}
		macros[key] = value
	}
	return macros, nil
}
