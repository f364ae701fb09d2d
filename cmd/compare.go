package cmd

import (
	"errors"

	"github.com/huangsam/tradeoff/core"
	"github.com/spf13/cobra"
)

// compareCmd compares two scenarios.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the metrics of two scenarios.",
	Long: `Compare the metrics of a base and a target scenario.

Each metric shows the base and target values, the delta, the relative change
and a verdict. Verdicts follow the direction of the metric, so a falling
development cost is better while a falling conversion is worse.

When the target is a case study, its observed results are shown next to the
modelled ones.

Examples:
  # Baseline against the lean preset
  tradeoff compare --target lean

  # Planned against actual execution
  tradeoff compare --base case-optimistic --target case-actual

  # Export for a spreadsheet
  tradeoff compare --base lean --target enterprise --output csv --output-file cmp.csv`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := sharedSetup(rootCtx, cmd, args); err != nil {
			return err
		}
		if cfg.TargetScenario == "" {
			return errors.New("--target is required")
		}
		return nil
	},
	Run: runExecutor("Cannot run comparison", core.ExecuteCompare),
}
