package cmd

import (
	"github.com/huangsam/sweeplens/internal/mcp"
	"github.com/huangsam/sweeplens/internal/runstore"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Sweeplens MCP server",
	Long:  `Launch an MCP server that allows AI agents to analyze sweep results via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep stdout clean when running in MCP mode since stdio
		// carries the protocol itself.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, tableLoader, runstore.Manager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
