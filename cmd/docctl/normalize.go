package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"docdesk/internal/domain"
	"docdesk/internal/logger"
	"docdesk/internal/normalize"
	"docdesk/internal/validator"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [record.json]",
	Short: "Normalize a raw document record into the canonical shape",
	Long: `Read a raw record (JSON) for the given document type and print the
normalized document. Reads stdin when the file is "-".`,
	Example: `  docctl normalize quote.json --type Quotation
  cat invoice.json | docctl normalize - --type "Tax Invoice" --validate`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
	normalizeCmd.Flags().String("type", "", "Document type (Purchase Order, Proforma Invoice, Tax Invoice, Quotation, Receipt) [REQUIRED]")
	normalizeCmd.Flags().Bool("validate", false, "Also run the validation rules and print the report")
	_ = normalizeCmd.MarkFlagRequired("type")
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("normalize")

	typeName, _ := cmd.Flags().GetString("type")
	docType, ok := domain.ParseDocumentType(typeName)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrInvalidDocumentType, typeName)
	}
	withReport, _ := cmd.Flags().GetBool("validate")

	data, err := readInput(args[0])
	if err != nil {
		return fmt.Errorf("read record: %w", err)
	}
	rec, err := normalize.DecodeRecord(docType, data)
	if err != nil {
		return err
	}

	rules := appConfig.Tax.Rules()
	n := normalize.New(normalize.Options{
		Company:         appConfig.Company,
		Rules:           rules,
		RoundOffToRupee: appConfig.Tax.RoundOffToRupee,
	}, log)
	result := n.Normalize(rec)

	if !withReport {
		return writeJSON(cmd.OutOrStdout(), result)
	}

	report := validator.NewDefaultEngine(rules.SellerStateCode, log).Validate(cmd.Context(), &result.Document)
	return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
		"result":     result,
		"validation": report,
	})
}
