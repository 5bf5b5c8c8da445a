package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"docdesk/internal/money"
	"docdesk/internal/tax"
)

var taxCmd = &cobra.Command{
	Use:   "tax [taxable-value]",
	Short: "Compute the CGST/SGST or IGST split for a buyer location",
	Long: `Compute GST on a taxable value. The buyer state is taken from --state-code,
then the GSTIN prefix, then --state, then the configured default.`,
	Example: `  docctl tax 50000 --state-code 33
  docctl tax 50000 --gstin 29ABCDE1234F1Z5 --rate 12`,
	Args: cobra.ExactArgs(1),
	RunE: runTax,
}

func init() {
	rootCmd.AddCommand(taxCmd)
	taxCmd.Flags().String("state-code", "", "Buyer GST state code")
	taxCmd.Flags().String("state", "", "Buyer state name")
	taxCmd.Flags().String("gstin", "", "Buyer GSTIN")
	taxCmd.Flags().Float64("rate", 0, "GST rate in percent (default: configured rate)")
}

func runTax(cmd *cobra.Command, args []string) error {
	taxable, err := strconv.ParseFloat(strings.ReplaceAll(args[0], ",", ""), 64)
	if err != nil {
		return fmt.Errorf("invalid taxable value %q", args[0])
	}

	rules := appConfig.Tax.Rules()
	rate := rules.Rate
	if cmd.Flags().Changed("rate") {
		rate, _ = cmd.Flags().GetFloat64("rate")
	}
	code, _ := cmd.Flags().GetString("state-code")
	state, _ := cmd.Flags().GetString("state")
	gstin, _ := cmd.Flags().GetString("gstin")
	place := tax.Place{StateCode: code, State: state, GSTIN: strings.ToUpper(gstin)}

	b := rules.Compute(taxable, place, rate)
	_, src := rules.ResolveStateCode(place)

	return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
		"breakdown":   b,
		"stateSource": src,
		"taxTotal":    b.Total(),
		"grandTotal":  money.Sum(b.TaxableValue, b.Total()),
	})
}
