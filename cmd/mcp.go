package cmd

import (
	"github.com/huangsam/tradeoff/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Tradeoff MCP server",
	Long: `Launch an MCP server over stdio that lets AI agents move constraint sliders,
apply scenarios, compute metrics and compare scenarios.

The server keeps one constraint session for its whole lifetime. With --record
every session change is written to the run history.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, runManager)
	},
}
