package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAnalyzeBatch_OrderedOutputPerTarget(t *testing.T) {
	home := isolateHome(t)

	// Two files with the same basename in different directories
	d1 := filepath.Join(home, "d1")
	d2 := filepath.Join(home, "d2")
	for _, d := range []string{d1, d2} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", d, err)
		}
	}
	writeData(t, d1, "metrics.csv", fitnessCSV)
	writeData(t, d2, "metrics.csv", "height,weight\n150,50\n160,61\n170,64\n")

	out, errOut := runCmd(t, "analyze-batch", filepath.Join(home, "d*", "metrics.csv"),
		"--targets", "weight,bodyfat", "--format", "markdown", "--concurrency", "3")

	order := []string{
		"[1/4] metrics.csv [target: weight]",
		"[2/4] metrics.csv [target: bodyfat]",
		"[3/4] metrics.csv [target: weight]",
		"[4/4] metrics.csv [target: bodyfat]",
	}
	last := -1
	for _, line := range order {
		idx := strings.Index(out, line)
		if idx < 0 {
			t.Fatalf("missing progress line %q in:\n%s", line, out)
		}
		if idx < last {
			t.Fatalf("progress line %q out of order", line)
		}
		last = idx
	}
	if got := strings.Count(out, "[CORRELATION SUMMARY]"); got != 3 {
		t.Fatalf("expected 3 reports, got %d:\n%s", got, out)
	}
	// d2 has no bodyfat column: warned, not failed
	if !strings.Contains(errOut, "⚠ Warning: metrics.csv: target 'bodyfat' not found") {
		t.Fatalf("expected missing-target warning, got %q", errOut)
	}
}

func TestAnalyzeBatch_OutputDirAvoidsOverwrite(t *testing.T) {
	home := isolateHome(t)
	d1 := filepath.Join(home, "a")
	d2 := filepath.Join(home, "b")
	for _, d := range []string{d1, d2} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", d, err)
		}
		writeData(t, d, "metrics.csv", fitnessCSV)
	}
	outDir := filepath.Join(home, "reports")
	runCmd(t, "analyze-batch", filepath.Join(d1, "metrics.csv"), filepath.Join(d2, "metrics.csv"),
		"--targets", "bodyfat", "--format", "json", "--output-dir", outDir, "--quiet")

	for _, name := range []string{"metrics__bodyfat.json", "metrics__bodyfat__2.json"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
}

func TestAnalyzeBatch_NoInputs(t *testing.T) {
	home := isolateHome(t)
	if _, _, err := execCmd(t, "analyze-batch", filepath.Join(home, "none*.csv")); err == nil {
		t.Fatalf("expected error when no input files match")
	}
}
