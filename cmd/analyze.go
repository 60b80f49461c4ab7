package cmd

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/corrlens-cli/internal/analysis"
	"github.com/KaramelBytes/corrlens-cli/internal/correlate"
	"github.com/KaramelBytes/corrlens-cli/internal/report"
	"github.com/KaramelBytes/corrlens-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaLoader        loaderFlags
	anaTarget        string
	anaTopK          int
	anaFormat        string
	anaOutputPath    string
	anaDropUndefined bool
	anaNoScatter     bool
	anaOutlierThr    float64
	anaChartsDir     string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Rank the numeric columns of a CSV/TSV/XLSX by correlation with a target",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ensureConfig()
		req, err := buildRequest(cmd, args[0], &anaLoader)
		if err != nil {
			return err
		}
		req.Target = anaTarget
		if cmd.Flags().Changed("top-k") {
			if anaTopK < 1 {
				return fmt.Errorf("--top-k must be >= 1")
			}
			req.Correlate.TopK = anaTopK
		}
		req.Correlate.DropUndefined = anaDropUndefined
		req.Scatter = !anaNoScatter
		if anaOutlierThr > 0 {
			req.OutlierThreshold = anaOutlierThr
		}
		format, err := resolveFormat(cmd, anaFormat, anaOutputPath)
		if err != nil {
			return err
		}

		rep, err := analysis.Run(context.Background(), req)
		if err != nil {
			if correlate.Recoverable(err) {
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %s: %v\n", filepath.Base(req.Path), err)
				return nil
			}
			return err
		}
		var buf bytes.Buffer
		if err := rep.Render(&buf, format); err != nil {
			return err
		}
		if anaChartsDir != "" {
			if anaNoScatter {
				return fmt.Errorf("--charts needs scatter series; drop --no-scatter")
			}
			paths, err := rep.SaveCharts(utils.ExpandHome(anaChartsDir))
			if err != nil {
				return fmt.Errorf("write charts: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %d charts to %s\n", len(paths), anaChartsDir)
		}

		// Decide where to write: --output path or stdout
		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(utils.ExpandHome(anaOutputPath), buf.Bytes()); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	},
}

// buildRequest seeds an analysis request from config and the shared loader flags.
func buildRequest(cmd *cobra.Command, path string, lf *loaderFlags) (analysis.Request, error) {
	req := analysis.NewRequest(utils.ExpandHome(path), cfg)
	if err := lf.apply(cmd, &req.Load); err != nil {
		return req, err
	}
	return req, nil
}

// resolveFormat picks the output format: --format, else the --output
// extension, else the configured default.
func resolveFormat(cmd *cobra.Command, flagVal, outputPath string) (report.Format, error) {
	if cmd.Flags().Changed("format") {
		return report.ParseFormat(flagVal)
	}
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".md":
		return report.FormatMarkdown, nil
	case ".json":
		return report.FormatJSON, nil
	case ".yaml", ".yml":
		return report.FormatYAML, nil
	case ".txt":
		return report.FormatText, nil
	}
	if cfg != nil && cfg.OutputFormat != "" {
		return report.ParseFormat(cfg.OutputFormat)
	}
	return report.FormatText, nil
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	anaLoader.register(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaTarget, "target", "t", "", "target column (default: first preferred target present, else first numeric column)")
	analyzeCmd.Flags().IntVarP(&anaTopK, "top-k", "k", correlate.DefaultTopK, "number of most related attributes to select")
	analyzeCmd.Flags().StringVarP(&anaFormat, "format", "f", "text", "output format: text|markdown|json|yaml")
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report")
	analyzeCmd.Flags().BoolVar(&anaDropUndefined, "drop-undefined", false, "exclude undefined coefficients from the top-K selection")
	analyzeCmd.Flags().BoolVar(&anaNoScatter, "no-scatter", false, "skip scatter series and trend lines")
	analyzeCmd.Flags().StringVar(&anaChartsDir, "charts", "", "directory for scatter PNGs of the top-K attributes and a heat map PNG")
	analyzeCmd.Flags().Float64Var(&anaOutlierThr, "outlier-threshold", 0, "robust |z| threshold for outliers (MAD-based, overrides config)")
}
