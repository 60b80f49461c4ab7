// Package analysis wires loading, correlation and report assembly into a
// single run shared by the CLI commands and the MCP tools.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KaramelBytes/corrlens-cli/internal/config"
	"github.com/KaramelBytes/corrlens-cli/internal/correlate"
	"github.com/KaramelBytes/corrlens-cli/internal/dataset"
	"github.com/KaramelBytes/corrlens-cli/internal/report"
)

// Request describes one analysis run.
type Request struct {
	Path string
	// Target is the attribute to correlate against; empty picks a default.
	Target           string
	PreferredTargets []string
	Load             dataset.LoadOptions
	Correlate        correlate.Options
	Scatter          bool
	OutlierThreshold float64
}

// NewRequest seeds a request for path from configuration defaults.
// A nil cfg uses the package defaults.
func NewRequest(path string, cfg *config.Global) Request {
	req := Request{
		Path:      path,
		Load:      dataset.DefaultLoadOptions(),
		Correlate: correlate.DefaultOptions(),
		Scatter:   true,
	}
	if cfg == nil {
		return req
	}
	req.PreferredTargets = cfg.PreferredTargets
	if cfg.TopK > 0 {
		req.Correlate.TopK = cfg.TopK
	}
	req.OutlierThreshold = cfg.OutlierThreshold
	if cfg.Encoding != "" {
		req.Load.Encoding = cfg.Encoding
	}
	req.Load.Delimiter = config.Rune(cfg.Delimiter)
	req.Load.DecimalSeparator = config.Rune(cfg.DecimalSeparator)
	req.Load.ThousandsSeparator = config.Rune(cfg.ThousandsSeparator)
	req.Load.MaxRows = cfg.MaxRows
	req.Load.UnitNormalize = cfg.UnitNormalize
	return req
}

// Run loads the dataset, analyzes it and assembles a report. Load failures
// come back as *dataset.LoadError; correlate.Recoverable reports the
// conditions that should be shown as warnings.
func Run(ctx context.Context, req Request) (*report.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := slog.Default().With("path", req.Path)
	ds, err := dataset.Load(req.Path, req.Load)
	if err != nil {
		return nil, err
	}
	log.Debug("dataset loaded", "rows", ds.Rows, "columns", len(ds.Columns))
	for _, w := range ds.Warnings {
		log.Info("load note", "note", w)
	}

	nd := dataset.ExtractNumeric(ds)
	target := strings.TrimSpace(req.Target)
	if target == "" {
		t, ok := dataset.DefaultTarget(nd, req.PreferredTargets...)
		if !ok {
			return nil, correlate.ErrNoNumericColumns
		}
		target = t
		log.Debug("default target selected", "target", target)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := correlate.Analyze(nd, target, req.Correlate)
	if err != nil {
		return nil, err
	}
	log.Debug("correlations computed", "target", target, "attributes", nd.Names(), "top_k", res.TopK)

	rep, err := report.New(ds, nd, res, report.Options{Scatter: req.Scatter, OutlierThreshold: req.OutlierThreshold})
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}
	return rep, nil
}

// Columns loads path and profiles every column.
func Columns(ctx context.Context, path string, opt dataset.LoadOptions, threshold float64) (*dataset.Dataset, []dataset.ColumnProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	ds, err := dataset.Load(path, opt)
	if err != nil {
		return nil, nil, err
	}
	return ds, dataset.Profile(ds, threshold), nil
}
