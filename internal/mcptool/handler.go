package mcptool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KaramelBytes/corrlens-cli/internal/analysis"
	"github.com/KaramelBytes/corrlens-cli/internal/config"
	"github.com/KaramelBytes/corrlens-cli/internal/correlate"
	"github.com/KaramelBytes/corrlens-cli/internal/dataset"
	"github.com/KaramelBytes/corrlens-cli/internal/report"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers serves tool calls. Each call is a full load and analysis.
type Handlers struct {
	Config *config.Global
}

// AnalyzeCorrelation handles analyze_correlation. Load failures and
// recoverable analysis conditions come back as error results, not Go errors.
func (h *Handlers) AnalyzeCorrelation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments

	path, ok := args["path"].(string)
	if !ok || strings.TrimSpace(path) == "" {
		return mcp.NewToolResultError("missing or invalid required argument: path (string)"), nil
	}
	req := analysis.NewRequest(path, h.Config)
	if t, ok := args["target"].(string); ok {
		req.Target = t
	}
	if k, ok := args["top_k"].(float64); ok && k >= 1 {
		req.Correlate.TopK = int(k)
	}
	formatName, _ := args["format"].(string)
	if formatName == "" {
		formatName = string(report.FormatMarkdown)
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	slog.Debug("analyze_correlation", "path", path, "target", req.Target, "top_k", req.Correlate.TopK, "format", format)

	rep, err := analysis.Run(ctx, req)
	if err != nil {
		return toolError(err)
	}
	var buf bytes.Buffer
	if err := rep.Render(&buf, format); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return mcp.NewToolResultText(buf.String()), nil
}

// ListColumns handles list_columns.
func (h *Handlers) ListColumns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, ok := request.Params.Arguments["path"].(string)
	if !ok || strings.TrimSpace(path) == "" {
		return mcp.NewToolResultError("missing or invalid required argument: path (string)"), nil
	}
	req := analysis.NewRequest(path, h.Config)
	ds, profiles, err := analysis.Columns(ctx, path, req.Load, req.OutlierThreshold)
	if err != nil {
		return toolError(err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d rows, %d columns\n", ds.Name, ds.Rows, len(profiles))
	for _, p := range profiles {
		name := p.Name
		if p.Unit != "" {
			name = fmt.Sprintf("%s [%s]", name, p.Unit)
		}
		fmt.Fprintf(&b, "- %s: %s (non-null %d, missing %d)\n", name, p.Kind, p.NonNull, p.Missing)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func toolError(err error) (*mcp.CallToolResult, error) {
	var le *dataset.LoadError
	switch {
	case correlate.Recoverable(err):
		return mcp.NewToolResultError("⚠ " + err.Error()), nil
	case errors.As(err, &le):
		return mcp.NewToolResultError(err.Error()), nil
	default:
		return nil, err
	}
}
