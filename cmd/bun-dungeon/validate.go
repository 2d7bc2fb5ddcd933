package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/bun-dungeon/internal/errors"
	"github.com/KirkDiggler/bun-dungeon/internal/gamedata"
	"github.com/KirkDiggler/bun-dungeon/internal/itemdb"
)

var validateDataCmd = &cobra.Command{
	Use:   "validate-data",
	Short: "Check the embedded game data",
	Long: `Validate the references between enemies, locations and shops, then every
item record. Exits non-zero when anything is invalid.`,
	Args: cobra.NoArgs,
	RunE: runValidateData,
}

func runValidateData(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	data, err := gamedata.Load()
	if err != nil {
		fmt.Fprintf(out, "Tables: %v\n", err)
		return err
	}
	fmt.Fprintf(out, "Tables: %d enemies, %d locations, %d shops OK\n",
		len(data.Enemies), len(data.Locations), len(data.Shops))

	db := itemdb.FromTables(data.Items)
	if err := db.Err(); err != nil {
		return err
	}
	report := db.ValidateAll()
	fmt.Fprintf(out, "Items: %d valid, %d invalid\n", len(report.Valid), len(report.Invalid))
	for _, inv := range report.Invalid {
		fmt.Fprintf(out, "  %s: %s\n", inv.ID, inv.Reason)
	}

	if len(report.Invalid) > 0 {
		return errors.DataLossf("%d item records are invalid", len(report.Invalid))
	}
	return nil
}
