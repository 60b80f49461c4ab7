package mcptool

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/corrlens-cli/internal/report"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fitness = "height,weight,bodyfat,notes\n150,50,20,ok\n160,58,24,ok\n170,66,25,late\n185,80,31,ok\n"

func dataFile(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "fitness.csv")
	require.NoError(t, os.WriteFile(p, []byte(fitness), 0o644))
	return p
}

func call(args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestAnalyzeCorrelation_Markdown(t *testing.T) {
	h := &Handlers{}
	res, err := h.AnalyzeCorrelation(context.Background(), call(map[string]interface{}{
		"path":   dataFile(t),
		"target": "bodyfat",
		"top_k":  1.0,
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	out := textOf(t, res)
	assert.Contains(t, out, "[CORRELATION SUMMARY]")
	assert.Contains(t, out, "[TOP 1 BY |r|]")
}

func TestAnalyzeCorrelation_JSON(t *testing.T) {
	h := &Handlers{}
	res, err := h.AnalyzeCorrelation(context.Background(), call(map[string]interface{}{
		"path":   dataFile(t),
		"target": "bodyfat",
		"format": "json",
	}))
	require.NoError(t, err)
	var doc report.Document
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &doc))
	assert.Equal(t, "bodyfat", doc.Target)
	assert.Len(t, doc.TopK, 2)
}

func TestAnalyzeCorrelation_RecoverableAsToolError(t *testing.T) {
	h := &Handlers{}
	res, err := h.AnalyzeCorrelation(context.Background(), call(map[string]interface{}{
		"path":   dataFile(t),
		"target": "notes",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "available: height, weight, bodyfat")

	res, err = h.AnalyzeCorrelation(context.Background(), call(map[string]interface{}{
		"path": filepath.Join(t.TempDir(), "missing.csv"),
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h.AnalyzeCorrelation(context.Background(), call(map[string]interface{}{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h.AnalyzeCorrelation(context.Background(), call(map[string]interface{}{"path": dataFile(t), "format": "pdf"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestListColumns(t *testing.T) {
	h := &Handlers{}
	res, err := h.ListColumns(context.Background(), call(map[string]interface{}{"path": dataFile(t)}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	out := textOf(t, res)
	assert.Contains(t, out, "fitness.csv: 4 rows, 4 columns")
	assert.Contains(t, out, "- height: numeric")
	assert.Contains(t, out, "- notes: categorical")
}

func TestNewServer(t *testing.T) {
	assert.NotNil(t, NewServer(nil))
}
