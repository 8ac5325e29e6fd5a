package main

import (
	"fmt"

	"github.com/spf13/cobra"

	mcpAdapter "github.com/dathuynh1108/rule-table-render/internal/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp <template>",
	Short: "Expose a template as MCP tools over stdio",
	Long: `Starts an MCP server on stdin/stdout so agent hosts can resolve the
template (render_template) and inspect its fields and tables.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		renderer, tpl, _, _, err := loadTemplate(cmd, args[0])
		if err != nil {
			return err
		}

		server := mcpAdapter.NewServer(renderer, tpl)
		if err := server.ServeStdio(); err != nil {
			return fmt.Errorf("mcp server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
