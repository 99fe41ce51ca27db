package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/buyside/internal/scenario"
	"github.com/wonny/buyside/pkg/config"
)

// scenariosCmd represents the scenarios command
var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List discovered scenarios",
	Long: `Lists every scenario pair found under the scenarios directory.

A scenario is discovered from its event history CSV; a missing model
artifact is flagged because that scenario will be reported as failed
on the next batch run.

Example:
  go run ./cmd/buyside scenarios`,
	RunE: listScenarios,
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
}

func listScenarios(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	specs, err := scenario.Discover(cfg.Pipeline.ScenariosDir)
	if err != nil {
		return fmt.Errorf("discover scenarios: %w", err)
	}

	if len(specs) == 0 {
		fmt.Printf("No scenarios found under %s\n", cfg.Pipeline.ScenariosDir)
		return nil
	}

	fmt.Printf("Scenarios in %s:\n", cfg.Pipeline.ScenariosDir)
	for _, spec := range specs {
		marker := "ok"
		if !spec.HasModel() {
			marker = "missing model"
		}
		fmt.Printf("  %-30s %s\n", spec.Name, marker)
	}

	return nil
}
