package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "investsim",
	Short: "Monthly equity purchase simulator",
	Long: `investsim - monthly equity purchase simulator

Simulates a fixed monthly contribution invested into single stocks:
each month's first traded open price buys as many whole shares as the
contribution plus any carried remainder affords, and the resulting
ledger is valued against the latest purchase price.

Usage:
  go run ./cmd/investsim [command]

Examples:
  go run ./cmd/investsim serve
  go run ./cmd/investsim serve --demo --prices data/price_history.csv
  go run ./cmd/investsim load data/price_history.csv`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}
