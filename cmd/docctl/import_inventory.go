package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docdesk/internal/export"
	"docdesk/internal/logger"
	"docdesk/internal/repository/postgres"
	"docdesk/internal/service"
)

var importInventoryCmd = &cobra.Command{
	Use:   "import-inventory [stock.xlsx]",
	Short: "Upsert inventory items from an XLSX stock sheet into PostgreSQL",
	Long: `Read the first sheet of an XLSX workbook and upsert every row by SKU.

Recognised columns: SKU, Name, Description, HSN/SAC, Unit, Unit Price,
Quantity and Reorder Level. Rows that fail validation are reported and
skipped. Database settings come from DOCDESK_DB_*.`,
	Example: `  docctl import-inventory stock.xlsx
  docctl import-inventory stock.xlsx --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runImportInventory,
}

func init() {
	rootCmd.AddCommand(importInventoryCmd)
	importInventoryCmd.Flags().Bool("dry-run", false, "Parse the sheet and print the rows without touching the database")
}

func runImportInventory(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("import-inventory")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open sheet: %w", err)
	}
	defer f.Close()

	rows, err := export.ReadInventorySheet(f)
	if err != nil {
		return fmt.Errorf("read sheet: %w", err)
	}
	log.Info().Str("file", args[0]).Int("rows", len(rows)).Msg("stock sheet parsed")

	if dryRun {
		return writeJSON(cmd.OutOrStdout(), rows)
	}

	db, err := postgres.NewDB(&appConfig.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	svc := service.NewInventoryService(postgres.NewInventoryRepo(db), log)
	summary, err := svc.Import(cmd.Context(), rows)
	if err != nil {
		return err
	}

	log.Info().
		Int("created", summary.Created).
		Int("updated", summary.Updated).
		Int("skipped", len(summary.Skipped)).
		Msg("inventory import finished")
	return writeJSON(cmd.OutOrStdout(), summary)
}
