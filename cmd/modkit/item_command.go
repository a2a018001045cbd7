package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/modkit/internal/asset/item"
)

func newItemCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Inspect item descriptors",
	}
	cmd.AddCommand(newItemShowCommand(ctx))
	return cmd
}

func newItemShowCommand(_ *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Display an item descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := item.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, d)
			}
			printItem(cmd.OutOrStdout(), d)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the item as JSON")
	return cmd
}

func printItem(w io.Writer, d *item.Descriptor) {
	rarity := d.Rarity().String()
	if rarity == "" {
		rarity = "-"
	}
	fmt.Fprintf(w, "Name:       %s\n", d.ItemName())
	fmt.Fprintf(w, "Rarity:     %s\n", rarity)
	fmt.Fprintf(w, "Icon:       %s\n", d.InventoryIcon())
	fmt.Fprintf(w, "Short:      %s\n", d.ShortDescription())
	fmt.Fprintf(w, "Blueprints: %s\n", strings.Join(d.Blueprints(), ", "))
	if desc := d.Description(); desc != "" {
		fmt.Fprintf(w, "\n%s\n", desc)
	}
}
