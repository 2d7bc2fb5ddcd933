package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/errors"
	"github.com/KirkDiggler/bun-dungeon/internal/itemdb"
)

var itemType string

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List the item database",
	Long: `List every valid item with its type, slot and prices. Examples:

  items
  items --type equipment`,
	Args: cobra.NoArgs,
	RunE: runItems,
}

func init() {
	itemsCmd.Flags().StringVar(&itemType, "type", "", "Only list items of this type (consumable, equipment)")
}

func runItems(cmd *cobra.Command, _ []string) error {
	data, err := loadData()
	if err != nil {
		return err
	}
	db := itemdb.FromTables(data.Items)
	if err := db.Err(); err != nil {
		return err
	}

	defs := db.All()
	if itemType != "" {
		vb := errors.NewValidationBuilder()
		errors.ValidateEnum("type", itemType, []string{
			string(rpg.ItemTypeConsumable), string(rpg.ItemTypeEquipment),
		}, vb)
		if err := vb.Build(); err != nil {
			return err
		}
		defs = db.ByType(rpg.ItemType(itemType))
	}

	out := cmd.OutOrStdout()
	summary := db.Summary()
	fmt.Fprintf(out, "%d items in %d categories\n\n", summary.TotalItems, len(summary.Categories))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tSLOT\tBUY\tSELL")
	for _, d := range defs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\n", d.ID, d.Name, d.Type, d.Slot, d.ShopPrice, d.SellPrice)
	}
	return tw.Flush()
}
