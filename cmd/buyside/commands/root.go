package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "buyside",
	Short: "Daily BUY signal pipeline",
	Long: `Buyside turns calendar event histories into daily BUY alerts.

Each scenario directory pairs an event CSV with a trained model
artifact. The pipeline scores today's events per scenario, enriches
accepted signals with entry prices, writes a CSV artifact, uploads it
and notifies via Telegram.

Usage:
  go run ./cmd/buyside [command]

Examples:
  go run ./cmd/buyside run
  go run ./cmd/buyside scenarios
  go run ./cmd/buyside scheduler start
  go run ./cmd/buyside api`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
