package config

import (
	"fmt"
	"strconv"
	"strings"
)

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoiMin(s string, floor int) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if i < floor {
		return 0, fmt.Errorf("must be >= %d", floor)
	}
	return i, nil
}

func parsePositive(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, fmt.Errorf("must be > 0")
	}
	return f, nil
}

func parseBool(s string) (bool, error) {
	return strconv.ParseBool(strings.TrimSpace(s))
}

// Rune returns the first rune of s, or 0 when s is empty. "\t" and "tab" map to a tab.
func Rune(s string) rune {
	switch s {
	case "":
		return 0
	case `\t`, "tab", "TAB":
		return '\t'
	}
	return []rune(s)[0]
}
