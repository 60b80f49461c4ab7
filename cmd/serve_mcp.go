package cmd

import (
	"log/slog"

	"github.com/KaramelBytes/corrlens-cli/internal/mcptool"
	"github.com/spf13/cobra"
)

var serveMCPCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Serve analyze_correlation and list_columns as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureConfig()
		slog.Info("starting MCP server on stdio", "name", mcptool.Name, "version", mcptool.Version)
		return mcptool.ServeStdio(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveMCPCmd)
}
