package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/bun-dungeon/internal/entities/rpg"
	"github.com/KirkDiggler/bun-dungeon/internal/errors"
	"github.com/KirkDiggler/bun-dungeon/internal/inventory"
	"github.com/KirkDiggler/bun-dungeon/internal/itemdb"
	"github.com/KirkDiggler/bun-dungeon/internal/shop"
)

var shopCmd = &cobra.Command{
	Use:   "shop [location-id]",
	Short: "Print a location's shop inventory",
	Long: `Print the full stock of a location's shop. Without a location, list the
locations that have one. Examples:

  shop
  shop back_alley`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShop,
}

func runShop(cmd *cobra.Command, args []string) error {
	data, err := loadData()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	inv, err := inventory.New(&inventory.Config{Items: itemdb.FromTables(data.Items)})
	if err != nil {
		return err
	}
	p, err := shop.New(&shop.Config{Data: data, Inventory: inv})
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Fprintln(out, "Shops:")
		for _, id := range data.LocationIDs() {
			if p.HasShop(id) {
				loc, _ := data.Location(id)
				fmt.Fprintf(out, "  %-20s %s\n", id, loc.Name)
			}
		}
		return nil
	}

	locationID := args[0]
	loc, ok := data.Location(locationID)
	if !ok {
		return errors.NotFoundf("location %s not found", locationID)
	}
	if !p.HasShop(locationID) {
		fmt.Fprintf(out, "The %s has no shop.\n", loc.Name)
		return nil
	}

	fmt.Fprintf(out, "%s shop\n\n", loc.Name)
	writeListings(out, p.List(&rpg.State{}, locationID))
	return nil
}

func writeListings(w io.Writer, listings []shop.Listing) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tNAME\tPRICE\tSTOCK")
	for _, l := range listings {
		stock := fmt.Sprintf("%d", l.Remaining)
		switch {
		case l.Remaining == shop.Unlimited:
			stock = "unlimited"
		case l.SoldOut():
			stock = "sold out"
		case l.Respawns:
			stock += " (restocks)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", l.Item.ID, l.Item.Name, l.Item.ShopPrice, stock)
	}
	_ = tw.Flush() // nolint:errcheck // output is best effort
}
