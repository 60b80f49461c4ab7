package dataset

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// naTokens are cell values treated as missing, matching common spreadsheet and
// dataframe exports.
var naTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {}, "-NaN": {}, "-nan": {},
	"1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {}, "NA": {}, "NULL": {}, "NaN": {},
	"None": {}, "n/a": {}, "nan": {}, "null": {},
}

func isNA(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	_, ok := naTokens[s]
	return ok
}

func parseTimeMaybe(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006", "2006.01.02",
		"2006-01-02 15:04", "2006-01-02 15:04:05", "1/2/2006 15:04", "1/2/2006 15:04:05",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// numberFormat fixes the decimal and thousands separators for a column.
// thou is 0 when digit grouping is not allowed.
type numberFormat struct {
	dec, thou rune
}

// candidateFormats lists the separator pairs to try, most common first,
// restricted to whatever the options pin down.
func candidateFormats(opt LoadOptions) []numberFormat {
	decs := []rune{'.', ','}
	if opt.DecimalSeparator != 0 {
		decs = []rune{opt.DecimalSeparator}
	}
	thous := []rune{',', '.', ' '}
	if opt.ThousandsSeparator != 0 {
		thous = []rune{opt.ThousandsSeparator}
	}
	var out []numberFormat
	for _, t := range thous {
		for _, d := range decs {
			if d != t {
				out = append(out, numberFormat{dec: d, thou: t})
			}
		}
	}
	for _, d := range decs {
		out = append(out, numberFormat{dec: d})
	}
	return out
}

// detectFormat returns the first candidate format under which every value
// parses. ok is false when no single format fits the whole column.
func detectFormat(values []string, opt LoadOptions) (numberFormat, bool) {
	for _, nf := range candidateFormats(opt) {
		fits := true
		for _, v := range values {
			if _, ok := nf.parse(v); !ok {
				fits = false
				break
			}
		}
		if fits {
			return nf, true
		}
	}
	return numberFormat{}, false
}

// parseNumeric parses a single value, detecting separators from the value alone.
func parseNumeric(s string, opt LoadOptions) (float64, bool) {
	nf, ok := detectFormat([]string{s}, opt)
	if !ok {
		return 0, false
	}
	return nf.parse(s)
}

// parse reads s with the fixed separators. Percent signs are dropped. A
// thousands separator is only accepted between groups of three digits, and
// non-finite results are rejected.
func (nf numberFormat) parse(s string) (float64, bool) {
	raw := strings.ReplaceAll(s, "%", "")
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "\u00A0", " "))
	if raw == "" || strings.Count(raw, string(nf.dec)) > 1 {
		return 0, false
	}
	intPart, frac, hasFrac := strings.Cut(raw, string(nf.dec))
	if nf.thou != 0 && strings.ContainsRune(intPart, nf.thou) {
		if !grouped(intPart, nf.thou) {
			return 0, false
		}
		intPart = strings.ReplaceAll(intPart, string(nf.thou), "")
	}
	num := intPart
	if hasFrac {
		num += "." + frac
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// grouped reports whether s is an optionally signed integer written as
// 1-3 leading digits followed by sep-separated groups of exactly three.
func grouped(s string, sep rune) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	groups := strings.Split(s, string(sep))
	for i, g := range groups {
		if i == 0 && (len(g) < 1 || len(g) > 3) || i > 0 && len(g) != 3 {
			return false
		}
		for _, r := range g {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// normalizeUnit converts x from unit to its configured target unit.
func normalizeUnit(x float64, unit string, targets map[string]string) (float64, string, bool) {
	target, ok := targets[unit]
	if !ok {
		return x, unit, false
	}
	switch unit + ">" + target {
	case "g/L>mg/L":
		return x * 1000, target, true
	case "ug/L>mg/L":
		return x / 1000, target, true
	case "°F>°C":
		return (x - 32) * 5.0 / 9.0, target, true
	default:
		return x, unit, false
	}
}

var unitPatterns = []struct {
	re   *regexp.Regexp
	pick int
}{
	{regexp.MustCompile(`^(.*)\s*\(([^)]+)\)\s*$`), 2},  // Alpha (%)
	{regexp.MustCompile(`^(.*)\s*\[([^\]]+)\]\s*$`), 2}, // Mass [mg/L]
	{regexp.MustCompile(`^(.*?)[_\s-]+(mg/L|g/L|ug/L|°[CF]|Brix|%|ppm|ppb)$`), 2},
}

// splitUnits separates a trailing unit annotation from a header name.
func splitUnits(name string) (clean string, unit string) {
	s := strings.TrimSpace(name)
	for _, p := range unitPatterns {
		if m := p.re.FindStringSubmatch(s); len(m) >= 3 {
			base := strings.TrimSpace(m[1])
			u := strings.TrimSpace(m[p.pick])
			if base != "" && u != "" {
				return base, u
			}
		}
	}
	return s, ""
}
