package cmd

import (
	"github.com/huangsam/tradeoff/core"
	"github.com/spf13/cobra"
)

// scenariosCmd groups the scenario catalog commands.
var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Browse preset, case-study and custom scenarios",
	Long: `Browse the scenario catalog.

The catalog holds the baseline, the lean, enterprise and innovation presets,
three case-study scenarios with observed results, and any custom scenarios
from the 'scenarios:' list of the config file.

Subcommands:
  list - Show every scenario
  show - Show one scenario with the values and metrics it resolves to`,
}

// scenariosListCmd lists the catalog.
var scenariosListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List every scenario",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: runExecutor("Cannot list scenarios", core.ExecuteScenariosList),
}

// scenariosShowCmd shows one scenario.
var scenariosShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one scenario with its values and metrics",
	Long: `Show a scenario's constraint values and the metrics they produce.
Case-study scenarios also show the observed results next to the model.

Examples:
  tradeoff scenarios show lean
  tradeoff scenarios show case-actual --output yaml`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: runExecutor("Cannot show scenario", core.ExecuteScenarioShow),
}
