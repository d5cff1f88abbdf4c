package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jverhoeven/anchormap/pkg/mapfile"
)

func newValidateCmd(cfg *Config) *cobra.Command {
	var (
		spacing float64
		margin  float64
	)

	cmd := &cobra.Command{
		Use:   "validate <map.yml>",
		Short: "Check that a map arranges without overlaps",
		Long: `Validate arranges the map on a scratch canvas and reports whether any
placed shapes overlap. Exits non-zero on overlap, so it works as a CI
gate for map files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("spacing") {
				spacing = cfg.Render.MinSpacing
			}
			if !cmd.Flags().Changed("margin") {
				margin = cfg.Render.GroupMargin
			}

			logger := loggerFromContext(cmd.Context())
			arr, err := arrangeFile(args[0], mapfile.Options{
				MinSpacing:  spacing,
				GroupMargin: margin,
			}, logger)
			if err != nil {
				return err
			}

			shapes := len(arr.plan.LeafShapes())
			if !arr.valid {
				printError("%s: overlapping shapes", args[0])
				printDetail("%d shapes, %d groups", shapes, len(arr.plan.Groups))
				return fmt.Errorf("validation failed")
			}

			printSuccess("%s: no overlaps", args[0])
			printDetail("%d shapes, %d groups", shapes, len(arr.plan.Groups))
			return nil
		},
	}

	cmd.Flags().Float64Var(&spacing, "spacing", 30, "minimum clearance between boxes")
	cmd.Flags().Float64Var(&margin, "margin", 5, "margin around group boundaries")

	return cmd
}
