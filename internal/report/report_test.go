package report

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/corrlens-cli/internal/correlate"
	"github.com/KaramelBytes/corrlens-cli/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const fitnessCSV = `bodyfat,height,weight,steps,constant,notes
18,170,65,9000,1,ok
25,165,72,4000,1,tired
22,180,80,6000,1,ok
30,160,78,2000,1,late
15,175,62,11000,1,ok
`

func buildReport(t *testing.T, scatter bool) *Report {
	t.Helper()
	ds, err := dataset.LoadReader("fitness.csv", strings.NewReader(fitnessCSV), dataset.DefaultLoadOptions())
	require.NoError(t, err)
	nd := dataset.ExtractNumeric(ds)
	res, err := correlate.Analyze(nd, "bodyfat", correlate.DefaultOptions())
	require.NoError(t, err)
	rep, err := New(ds, nd, res, Options{Scatter: scatter})
	require.NoError(t, err)
	return rep
}

func TestNew_Envelope(t *testing.T) {
	rep := buildReport(t, true)
	assert.Len(t, rep.RunID, 36)
	assert.Equal(t, "fitness.csv", rep.Dataset)
	assert.Equal(t, 5, rep.Rows)
	assert.Equal(t, []string{"bodyfat", "height", "weight", "steps", "constant"}, rep.Numeric)
	require.Len(t, rep.Scatter, len(rep.Result.TopK))
	for _, s := range rep.Scatter {
		assert.Equal(t, "bodyfat", s.Target)
		assert.Len(t, s.Points, 5)
	}
	assert.Contains(t, rep.Warnings, "column 'constant' is constant; its correlations are undefined")

	other := buildReport(t, false)
	assert.NotEqual(t, rep.RunID, other.RunID)
	assert.Empty(t, other.Scatter)
}

func TestMarkdown_SectionsAndUndefined(t *testing.T) {
	rep := buildReport(t, true)
	md := rep.Markdown()
	for _, section := range []string{
		"[CORRELATION SUMMARY]",
		"[STRONGEST RELATIONS]",
		"[CORRELATION WITH bodyfat]",
		"[TOP 4 BY |r|]",
		"[CORRELATION MATRIX]",
		"[SCHEMA]",
		"[NOTES]",
	} {
		assert.Contains(t, md, section)
	}
	assert.Contains(t, md, "- constant: r=N/A")
	assert.Contains(t, md, "Target: bodyfat")
	assert.Contains(t, md, "- Positive: weight (r=")
	assert.Contains(t, md, "- Negative: steps (r=")
	assert.Contains(t, md, "trend: y = ")
	assert.NotContains(t, md, "NaN")
}

func TestWriteText_Tables(t *testing.T) {
	rep := buildReport(t, false)
	var buf bytes.Buffer
	require.NoError(t, rep.Render(&buf, FormatText))
	out := buf.String()
	assert.Contains(t, out, "Target: bodyfat")
	assert.Contains(t, out, "Strongest positive: weight (r=")
	assert.Contains(t, out, "Heat map")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "5 = constant")
	assert.NotContains(t, out, "NaN")
}

func TestWriteJSON_UndefinedIsNull(t *testing.T) {
	rep := buildReport(t, true)
	var buf bytes.Buffer
	require.NoError(t, rep.Render(&buf, FormatJSON))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, rep.RunID, doc.RunID)
	assert.Equal(t, "bodyfat", doc.Target)
	last := doc.Vector[len(doc.Vector)-1]
	assert.Equal(t, "constant", last.Attribute)
	assert.Nil(t, last.R)
	require.NotNil(t, doc.Strongest)
	assert.Equal(t, "weight", doc.Strongest.Positive.Attribute)

	ci := 4
	assert.Equal(t, "constant", doc.Matrix.Columns[ci])
	require.NotNil(t, doc.Matrix.Values[ci][ci])
	assert.Equal(t, 1.0, *doc.Matrix.Values[ci][ci])
	assert.Nil(t, doc.Matrix.Values[0][ci])
	assert.Contains(t, buf.String(), `"r": null`)
}

func TestWriteYAML_UndefinedIsNull(t *testing.T) {
	rep := buildReport(t, false)
	var buf bytes.Buffer
	require.NoError(t, rep.Render(&buf, FormatYAML))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "bodyfat", doc["target"])
	vec, ok := doc["vector"].([]any)
	require.True(t, ok)
	last := vec[len(vec)-1].(map[string]any)
	assert.Equal(t, "constant", last["attribute"])
	v, present := last["r"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "MD": FormatMarkdown, "json": FormatJSON, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("html")
	assert.Error(t, err)
}

func TestCellAndFormatR(t *testing.T) {
	assert.Equal(t, "+█", Cell(1))
	assert.Equal(t, "-█", Cell(-0.95))
	assert.Equal(t, "+·", Cell(0.1))
	assert.Equal(t, "-▒", Cell(-0.5))
	assert.Equal(t, " ?", Cell(math.NaN()))
	assert.Equal(t, "N/A", FormatR(math.NaN()))
	assert.Equal(t, "-0.500", FormatR(-0.5))
}

func TestSaveCharts(t *testing.T) {
	rep := buildReport(t, true)
	dir := filepath.Join(t.TempDir(), "charts")
	paths, err := rep.SaveCharts(dir)
	require.NoError(t, err)
	require.Len(t, paths, len(rep.Scatter)+1)
	assert.Equal(t, filepath.Join(dir, "01_steps_vs_bodyfat.png"), paths[0])
	assert.Equal(t, filepath.Join(dir, "heatmap.png"), paths[len(paths)-1])
	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}
