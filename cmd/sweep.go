package cmd

import (
	"github.com/huangsam/tradeoff/core"
	"github.com/spf13/cobra"
)

// sweepCmd sweeps one constraint.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Show every metric across the full range of one constraint.",
	Long: `Evaluate the metrics at every step of one constraint while the others
stay at the chosen scenario's values. Points are computed by a pool of
--workers workers.

The summary names, per metric, the lowest constraint value that reaches the
best outcome.

Examples:
  # How does team size move the metrics?
  tradeoff sweep --constraint teamSize

  # Sweep the audience size of the lean preset
  tradeoff sweep --constraint userBase --scenario lean --output csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: runExecutor("Cannot run sweep", core.ExecuteSweep),
}
