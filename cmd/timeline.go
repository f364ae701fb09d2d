package cmd

import (
	"os"
	"os/signal"

	"github.com/huangsam/tradeoff/core"
	"github.com/huangsam/tradeoff/internal/contract"
	"github.com/spf13/cobra"
)

// timelineCmd shows the decision timeline.
var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show the project's decision timeline through a stakeholder lens.",
	Long: `Show the recorded project decisions as seen by one stakeholder.

Lenses:
  executive   - KPI changes, rationale and rejected alternatives
  product     - impact, artifacts and stakeholders
  engineering - impact, diagrams and rejected alternatives
  design      - impact, non-spreadsheet artifacts and rationale

With --play the events are shown one at a time, --interval apart, until the
last one. Press Ctrl-C to stop early.

Examples:
  tradeoff timeline --lens engineering
  tradeoff timeline --lens design --play --interval 2s`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt)
		defer stop()
		if err := core.ExecuteTimeline(ctx, cfg, runManager); err != nil {
			contract.LogFatal("Cannot show timeline", err)
		}
	},
}
