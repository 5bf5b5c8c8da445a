package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"docdesk/internal/money"
)

var wordsCmd = &cobra.Command{
	Use:   "words [amount]",
	Short: "Spell an amount in Indian numbering",
	Example: `  docctl words 59320
  docctl words 1,180.50 --suffix`,
	Args: cobra.ExactArgs(1),
	RunE: runWords,
}

func init() {
	rootCmd.AddCommand(wordsCmd)
	wordsCmd.Flags().Bool("suffix", false, "Append Rupees/Paise and Only")
}

func runWords(cmd *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(strings.ReplaceAll(args[0], ",", ""), 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[0])
	}
	suffix, _ := cmd.Flags().GetBool("suffix")

	if suffix {
		fmt.Fprintln(cmd.OutOrStdout(), money.AmountInWords(amount))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), money.Words(amount))
	return nil
}
