package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

// 辅助函数：判断切片是否包含 item
func Contains[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// MissingColumns 返回 df 中不存在的列名，保持传入顺序
func MissingColumns(df dataframe.DataFrame, names ...string) []string {
	have := df.Names()
	var missing []string
	for _, n := range names {
		if !Contains(have, n) {
			missing = append(missing, n)
		}
	}
	return missing
}

// ParseNumber parses a numeric cell as published in statistical tables:
// spaces and non-breaking spaces as thousands separators, a decimal comma,
// a trailing percent sign. A comma is read as the decimal mark only when it
// is the only separator and is not followed by exactly three digits;
// "12,345" and "1,234.5" are rejected as ambiguous.
func ParseNumber(s string) (float64, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\t':
			return -1
		case '\u2212':
			return '-'
		}
		return r
	}, s)
	clean = strings.TrimSuffix(clean, "%")
	if clean == "" {
		return 0, fmt.Errorf("empty value")
	}
	if strings.Contains(clean, ",") {
		i := strings.IndexByte(clean, ',')
		frac := clean[i+1:]
		if strings.Count(clean, ",") > 1 || strings.Contains(clean, ".") || thousandsGroup(frac) {
			return 0, fmt.Errorf("ambiguous separators: %q", s)
		}
		clean = clean[:i] + "." + frac
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

// thousandsGroup reports whether s is exactly three digits.
func thousandsGroup(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseYear parses a year cell; spreadsheets often store it as "2000.0".
func ParseYear(s string) (int, error) {
	v, err := ParseNumber(s)
	if err != nil {
		return 0, err
	}
	y := int(v)
	if float64(y) != v {
		return 0, fmt.Errorf("not a whole year: %q", s)
	}
	return y, nil
}
