package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag of c and its subcommands to its default so
// values and Changed state do not leak between invocations.
func resetFlags(c *cobra.Command) {
	reset := func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = fl.Value.Set(fl.DefValue)
		}
		fl.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execCmd executes the root command with args and returns stdout, stderr and the error.
func execCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfg = nil
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// runCmd is a helper to execute the root command with args, failing on error.
func runCmd(t *testing.T, args ...string) (string, string) {
	t.Helper()
	out, errOut, err := execCmd(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out, errOut
}

// isolateHome points HOME at a temp dir so no user config is read or written.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeData(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

const fitnessCSV = "height,weight,bodyfat,steps,flat,notes\n" +
	"150,50,20,9000,1,ok\n" +
	"160,58,24,7000,1,tired\n" +
	"170,66,25,6500,1,ok\n" +
	"185,80,31,3000,1,late\n"

func TestCLI_AnalyzeMarkdown(t *testing.T) {
	home := isolateHome(t)
	p := writeData(t, home, "fitness.csv", fitnessCSV)

	out, _ := runCmd(t, "analyze", p, "--target", "bodyfat", "--format", "markdown", "--top-k", "2")
	for _, want := range []string{"[CORRELATION SUMMARY]", "Target: bodyfat", "[TOP 2 BY |r|]", "- flat: r=N/A", "[CORRELATION MATRIX]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "NaN") {
		t.Fatalf("undefined coefficient leaked as NaN:\n%s", out)
	}
}

func TestCLI_AnalyzeDefaultTargetFromConfig(t *testing.T) {
	home := isolateHome(t)
	p := writeData(t, home, "fitness.csv", fitnessCSV)

	out, _ := runCmd(t, "analyze", p, "--format", "md")
	if !strings.Contains(out, "Target: bodyfat") {
		t.Fatalf("expected preferred target bodyfat, got:\n%s", out)
	}

	runCmd(t, "config", "set", "preferred_targets", "steps")
	out, _ = runCmd(t, "analyze", p, "--format", "md")
	if !strings.Contains(out, "Target: steps") {
		t.Fatalf("expected configured target steps, got:\n%s", out)
	}
}

func TestCLI_AnalyzeRecoverableWarnings(t *testing.T) {
	home := isolateHome(t)
	p := writeData(t, home, "fitness.csv", fitnessCSV)

	out, errOut := runCmd(t, "analyze", p, "--target", "notes")
	if out != "" {
		t.Fatalf("expected no report for a non-numeric target, got:\n%s", out)
	}
	if !strings.Contains(errOut, "⚠ Warning") || !strings.Contains(errOut, "available: height, weight, bodyfat, steps, flat") {
		t.Fatalf("unexpected warning: %q", errOut)
	}

	q := writeData(t, home, "names.csv", "name,team\nkim,a\nlee,b\n")
	out, errOut = runCmd(t, "analyze", q)
	if out != "" || !strings.Contains(errOut, "no numeric columns") {
		t.Fatalf("expected no-numeric warning, got out=%q err=%q", out, errOut)
	}
}

func TestCLI_AnalyzeLoadFailure(t *testing.T) {
	home := isolateHome(t)
	if _, _, err := execCmd(t, "analyze", filepath.Join(home, "missing.csv")); err == nil {
		t.Fatalf("expected error for missing dataset")
	}
	p := writeData(t, home, "data.parquet", "PAR1")
	_, _, err := execCmd(t, "analyze", p)
	if err == nil || !strings.Contains(err.Error(), "unsupported dataset format") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
	q := writeData(t, home, "fitness.csv", fitnessCSV)
	if _, _, err := execCmd(t, "analyze", q, "--decimal", "semicolon"); err == nil {
		t.Fatalf("expected error for invalid --decimal")
	}
}

func TestCLI_AnalyzeOutputJSONByExtension(t *testing.T) {
	home := isolateHome(t)
	p := writeData(t, home, "fitness.csv", fitnessCSV)
	outPath := filepath.Join(home, "reports", "fitness.json")

	out, _ := runCmd(t, "analyze", p, "-t", "bodyfat", "-o", outPath)
	if !strings.Contains(out, "✓ Wrote analysis to") {
		t.Fatalf("unexpected stdout: %q", out)
	}
	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var doc struct {
		Target string `json:"target"`
		Vector []struct {
			Attribute string   `json:"attribute"`
			R         *float64 `json:"r"`
		} `json:"vector"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("decode json: %v\n%s", err, b)
	}
	if doc.Target != "bodyfat" || len(doc.Vector) != 4 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	last := doc.Vector[len(doc.Vector)-1]
	if last.Attribute != "flat" || last.R != nil {
		t.Fatalf("expected undefined flat last with null r, got %+v", last)
	}
}

func TestCLI_ColumnsAndConfig(t *testing.T) {
	home := isolateHome(t)
	p := writeData(t, home, "fitness.csv", fitnessCSV)

	out, _ := runCmd(t, "columns", p)
	for _, want := range []string{"fitness.csv: 4 rows, 6 columns", "numeric", "categorical", "constant"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in columns output:\n%s", want, out)
		}
	}

	runCmd(t, "config", "set", "top_k", "3")
	if _, err := os.Stat(filepath.Join(home, ".corrlens", "config.yaml")); err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	out, _ = runCmd(t, "config", "show")
	if !strings.Contains(out, "top_k: 3") {
		t.Fatalf("expected saved top_k, got:\n%s", out)
	}
	if _, _, err := execCmd(t, "config", "set", "top_k", "zero"); err == nil {
		t.Fatalf("expected validation error")
	}
}
