// Package mcptool exposes correlation analysis as MCP tools over stdio.
package mcptool

import (
	"github.com/KaramelBytes/corrlens-cli/internal/config"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Name and Version identify the server to MCP clients.
const (
	Name    = "corrlens"
	Version = "0.1.0"
)

// NewServer registers the analyze_correlation and list_columns tools.
func NewServer(cfg *config.Global) *server.MCPServer {
	s := server.NewMCPServer(Name, Version,
		server.WithLogging(),
		server.WithRecovery(),
	)
	h := &Handlers{Config: cfg}

	analyzeTool := mcp.NewTool("analyze_correlation",
		mcp.WithDescription("Rank the numeric columns of a CSV/TSV/XLSX dataset by Pearson correlation with a target column."),
		mcp.WithString("path",
			mcp.Description("Path to the dataset file."),
			mcp.Required(),
		),
		mcp.WithString("target",
			mcp.Description("Target column. Defaults to the first configured preferred target present, else the first numeric column."),
		),
		mcp.WithNumber("top_k",
			mcp.Description("Number of most related attributes to select."),
			mcp.DefaultNumber(5.0),
		),
		mcp.WithString("format",
			mcp.Description("Output format."),
			mcp.DefaultString("markdown"),
			mcp.Enum("text", "markdown", "json", "yaml"),
		),
	)
	columnsTool := mcp.NewTool("list_columns",
		mcp.WithDescription("List the columns of a dataset with their inferred kind and summary statistics."),
		mcp.WithString("path",
			mcp.Description("Path to the dataset file."),
			mcp.Required(),
		),
	)

	s.AddTool(analyzeTool, h.AnalyzeCorrelation)
	s.AddTool(columnsTool, h.ListColumns)
	return s
}

// ServeStdio runs the server until stdin closes.
func ServeStdio(cfg *config.Global) error {
	return server.ServeStdio(NewServer(cfg))
}
