package cmd

import (
	"github.com/huangsam/tradeoff/core"
	"github.com/spf13/cobra"
)

// formulasCmd shows the metric definitions.
var formulasCmd = &cobra.Command{
	Use:   "formulas",
	Short: "Show how every metric is derived.",
	Long: `Display the formula, inputs, rounding and direction of every metric.

Nothing is evaluated. Use this to understand why a slider moves a metric.

Examples:
  tradeoff formulas
  tradeoff formulas --clamp-metrics --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: runExecutor("Cannot show formulas", core.ExecuteFormulas),
}
