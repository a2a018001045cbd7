package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/modkit/internal/importer"
	"github.com/cory-johannsen/modkit/internal/importer/modfolder"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "catalog <modDir>",
		Short: "Export a built mod's items as a YAML catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.cfg()
			if outputDir == "" {
				outputDir = cfg.Catalog.OutputDir
			}
			src := modfolder.NewSource(cfg.Workspace.ModInfoFilename, cfg.Workspace.ItemExtensions, ctx.log())
			res, err := importer.New(src, ctx.log()).Run(args[0], outputDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Path)
			if !quiet {
				fmt.Fprintln(out, catalogTable(res.Catalog))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default catalog.output_dir)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the catalog path")
	return cmd
}

func catalogTable(cd *importer.CatalogData) string {
	rows := make([][]string, 0, len(cd.Catalog.Items))
	for _, it := range cd.Catalog.Items {
		rows = append(rows, []string{it.ID, it.Name, it.Rarity, it.File, strings.Join(it.Blueprints, ", ")})
	}
	return renderTable([]string{"ID", "Name", "Rarity", "File", "Blueprints"}, rows)
}
