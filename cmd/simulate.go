package cmd

import (
	"github.com/huangsam/tradeoff/core"
	"github.com/spf13/cobra"
)

// simulateCmd evaluates a scenario with optional overrides.
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Show the metrics a set of constraints produces.",
	Long: `Apply a scenario and optional per-constraint overrides, then show every
constraint and the eight derived metrics next to the baseline.

Overrides go through the same rules as moving a slider: values are clamped
to the constraint's range and snapped to its step.

The quick model is the three-slider version: team size, deadline and platform
complexity feed conversion, satisfaction, time to value and error rate. It has
no scenarios and cannot be recorded.

Examples:
  # Metrics of the untouched baseline
  tradeoff simulate

  # Start from the lean preset
  tradeoff simulate --scenario lean

  # Double the team and stretch the timeline
  tradeoff simulate --set teamSize:200,timeline:150

  # Quick model with a shorter team and a longer deadline
  tradeoff simulate --model quick --set teamSize:60,deadline:130

  # Record the run and write JSON
  tradeoff simulate --scenario enterprise --record --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: runExecutor("Cannot run simulation", core.ExecuteSimulate),
}
