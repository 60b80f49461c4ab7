package dataset

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// DefaultOutlierThreshold is the robust |z| above which a value counts as an outlier.
const DefaultOutlierThreshold = 3.5

// ColumnProfile captures inferred type and summary statistics per column.
type ColumnProfile struct {
	Name    string `json:"name" yaml:"name"`
	Unit    string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Kind    Kind   `json:"kind" yaml:"kind"`
	NonNull int    `json:"non_null" yaml:"non_null"`
	Missing int    `json:"missing" yaml:"missing"`
	Unique  int    `json:"unique" yaml:"unique"`
	// Numeric stats
	Min    float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max    float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Mean   float64 `json:"mean,omitempty" yaml:"mean,omitempty"`
	Std    float64 `json:"std,omitempty" yaml:"std,omitempty"`
	Median float64 `json:"median,omitempty" yaml:"median,omitempty"`
	// Outliers (robust Z via MAD)
	OutliersCount    int     `json:"outliers,omitempty" yaml:"outliers,omitempty"`
	OutliersMaxAbsZ  float64 `json:"outliers_max_abs_z,omitempty" yaml:"outliers_max_abs_z,omitempty"`
	OutlierThreshold float64 `json:"outlier_threshold,omitempty" yaml:"outlier_threshold,omitempty"`
	// Categorical top values
	TopValues []CategoryCount `json:"top_values,omitempty" yaml:"top_values,omitempty"`
}

type CategoryCount struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// Constant reports whether a numeric column has a single distinct value.
func (p ColumnProfile) Constant() bool {
	return p.Kind == KindNumeric && p.NonNull > 0 && p.Min == p.Max
}

// Profile summarizes every column of ds. Outlier counts need at least 8 values;
// threshold <= 0 uses DefaultOutlierThreshold.
func Profile(ds *Dataset, threshold float64) []ColumnProfile {
	if ds == nil {
		return nil
	}
	if threshold <= 0 {
		threshold = DefaultOutlierThreshold
	}
	out := make([]ColumnProfile, 0, len(ds.Columns))
	for _, c := range ds.Columns {
		p := ColumnProfile{Name: c.Name, Unit: c.Unit, Kind: c.Kind}
		counts := map[string]int{}
		var nums stats.Float64Data
		for _, v := range c.Values {
			if v.Missing() {
				p.Missing++
				continue
			}
			p.NonNull++
			counts[v.Raw]++
			if v.Numeric {
				nums = append(nums, v.Num)
			}
		}
		p.Unique = len(counts)
		switch c.Kind {
		case KindNumeric:
			profileNumeric(&p, nums, threshold)
		case KindCategorical:
			p.TopValues = topValues(counts, 8)
		}
		out = append(out, p)
	}
	return out
}

func profileNumeric(p *ColumnProfile, nums stats.Float64Data, threshold float64) {
	if len(nums) == 0 {
		return
	}
	p.Min, _ = stats.Min(nums)
	p.Max, _ = stats.Max(nums)
	p.Mean, _ = stats.Mean(nums)
	p.Median, _ = stats.Median(nums)
	if len(nums) > 1 {
		p.Std, _ = stats.StandardDeviationSample(nums)
	}
	if len(nums) < 8 {
		return
	}
	mad, err := stats.MedianAbsoluteDeviation(nums)
	p.OutlierThreshold = threshold
	if err != nil || mad == 0 {
		return
	}
	for _, v := range nums {
		az := math.Abs(0.6745 * (v - p.Median) / mad)
		if az > threshold {
			p.OutliersCount++
		}
		if az > p.OutliersMaxAbsZ {
			p.OutliersMaxAbsZ = az
		}
	}
}

func topValues(counts map[string]int, limit int) []CategoryCount {
	tops := make([]CategoryCount, 0, len(counts))
	for k, v := range counts {
		tops = append(tops, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	if len(tops) > limit {
		tops = tops[:limit]
	}
	return tops
}
