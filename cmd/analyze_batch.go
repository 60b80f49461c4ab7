package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/corrlens-cli/internal/analysis"
	"github.com/KaramelBytes/corrlens-cli/internal/correlate"
	"github.com/KaramelBytes/corrlens-cli/internal/report"
	"github.com/KaramelBytes/corrlens-cli/internal/utils"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	abLoader        loaderFlags
	abTargets       []string
	abTopK          int
	abFormat        string
	abOutputDir     string
	abConcurrency   int
	abDropUndefined bool
	abNoScatter     bool
	abQuiet         bool
)

// batchJob is one (file, target) analysis; out holds its rendered report or warning.
type batchJob struct {
	path    string
	target  string
	out     []byte
	warning string
}

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze multiple CSV/TSV/XLSX files concurrently, one report per file and target",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureConfig()
		files, err := expandInputs(args)
		if err != nil {
			return err
		}
		format, err := resolveFormat(cmd, abFormat, "")
		if err != nil {
			return err
		}
		base, err := buildRequest(cmd, files[0], &abLoader)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("top-k") {
			if abTopK < 1 {
				return fmt.Errorf("--top-k must be >= 1")
			}
			base.Correlate.TopK = abTopK
		}
		base.Correlate.DropUndefined = abDropUndefined
		base.Scatter = !abNoScatter

		targets := abTargets
		if len(targets) == 0 {
			targets = []string{""}
		}
		var jobs []*batchJob
		for _, f := range files {
			for _, t := range targets {
				jobs = append(jobs, &batchJob{path: f, target: strings.TrimSpace(t)})
			}
		}

		limit := abConcurrency
		if !cmd.Flags().Changed("concurrency") && cfg != nil && cfg.BatchConcurrency > 0 {
			limit = cfg.BatchConcurrency
		}
		if limit < 1 {
			limit = 1
		}

		g, ctx := errgroup.WithContext(context.Background())
		g.SetLimit(limit)
		for _, job := range jobs {
			g.Go(func() error {
				req := base
				req.Path = job.path
				req.Target = job.target
				rep, err := analysis.Run(ctx, req)
				if err != nil {
					if correlate.Recoverable(err) {
						job.warning = err.Error()
						return nil
					}
					return fmt.Errorf("%s: %w", job.path, err)
				}
				job.target = rep.Result.Target
				var buf bytes.Buffer
				if err := rep.Render(&buf, format); err != nil {
					return fmt.Errorf("%s: %w", job.path, err)
				}
				job.out = buf.Bytes()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		total := len(jobs)
		for i, job := range jobs {
			label := filepath.Base(job.path)
			if job.target != "" {
				label = fmt.Sprintf("%s [target: %s]", label, job.target)
			}
			if !abQuiet {
				fmt.Fprintf(out, "[%d/%d] %s\n", i+1, total, label)
			}
			if job.warning != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %s: %s\n", filepath.Base(job.path), job.warning)
				continue
			}
			if abOutputDir != "" {
				outFile, err := batchOutputPath(abOutputDir, job.path, job.target, format)
				if err != nil {
					return err
				}
				if err := utils.SafeWriteFile(outFile, job.out); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				if !abQuiet {
					fmt.Fprintf(out, "✓ Wrote analysis to %s\n", outFile)
				}
				continue
			}
			if _, err := out.Write(job.out); err != nil {
				return err
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

// expandInputs resolves globs and literal paths, de-duplicated and sorted.
func expandInputs(args []string) ([]string, error) {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		arg = utils.ExpandHome(arg)
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files matched")
	}
	sort.Strings(files)
	return files, nil
}

var formatExt = map[report.Format]string{
	report.FormatText:     ".txt",
	report.FormatMarkdown: ".md",
	report.FormatJSON:     ".json",
	report.FormatYAML:     ".yaml",
}

// batchOutputPath names the report file for one job, adding a __N suffix
// instead of overwriting an existing file.
func batchOutputPath(dir, path, target string, format report.Format) (string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return "", err
	}
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if target != "" {
		stem += "__" + sanitize(target)
	}
	ext := formatExt[format]
	outFile := filepath.Join(dir, stem+ext)
	if _, err := os.Stat(outFile); err == nil {
		for idx := 2; ; idx++ {
			cand := filepath.Join(dir, fmt.Sprintf("%s__%d%s", stem, idx, ext))
			if _, err := os.Stat(cand); os.IsNotExist(err) {
				outFile = cand
				break
			}
		}
	}
	return outFile, nil
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			b.WriteRune('-')
		case ' ':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "target"
	}
	return b.String()
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	abLoader.register(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringSliceVar(&abTargets, "targets", nil, "comma-separated target columns; each file is analyzed once per target")
	analyzeBatchCmd.Flags().IntVarP(&abTopK, "top-k", "k", correlate.DefaultTopK, "number of most related attributes to select")
	analyzeBatchCmd.Flags().StringVarP(&abFormat, "format", "f", "text", "output format: text|markdown|json|yaml")
	analyzeBatchCmd.Flags().StringVar(&abOutputDir, "output-dir", "", "write one report file per file and target into this directory")
	analyzeBatchCmd.Flags().IntVar(&abConcurrency, "concurrency", 4, "maximum analyses run in parallel (overrides config)")
	analyzeBatchCmd.Flags().BoolVar(&abDropUndefined, "drop-undefined", false, "exclude undefined coefficients from the top-K selection")
	analyzeBatchCmd.Flags().BoolVar(&abNoScatter, "no-scatter", false, "skip scatter series and trend lines")
	analyzeBatchCmd.Flags().BoolVarP(&abQuiet, "quiet", "q", false, "suppress progress lines")
}
