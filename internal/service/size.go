package service

import (
	"math"
	"strconv"
)

// Size categories returned by SizeCategory.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// SizeCategories lists the categories in display order.
var SizeCategories = []string{SizeSmall, SizeMedium, SizeLarge}

// SizeCategory buckets a display size such as "10x25" by area.  The first
// two runs of digits are read as width and depth; area <= 200 is small,
// <= 400 medium, anything larger is large.  Strings without two integers,
// or whose area overflows, are medium.
func SizeCategory(displaySize string) string {
	dims := digitRuns(displaySize, 2)
	if len(dims) < 2 {
		return SizeMedium
	}
	w, err1 := strconv.ParseInt(dims[0], 10, 64)
	d, err2 := strconv.ParseInt(dims[1], 10, 64)
	if err1 != nil || err2 != nil {
		return SizeMedium
	}
	if w != 0 && d > math.MaxInt64/w {
		return SizeMedium
	}
	area := w * d
	switch {
	case area <= 200:
		return SizeSmall
	case area <= 400:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// digitRuns returns up to n maximal runs of ASCII digits in s.
func digitRuns(s string, n int) []string {
	var out []string
	start := -1
	for i := 0; i <= len(s); i++ {
		isDigit := i < len(s) && s[i] >= '0' && s[i] <= '9'
		if isDigit && start < 0 {
			start = i
		}
		if !isDigit && start >= 0 {
			out = append(out, s[start:i])
			start = -1
			if len(out) == n {
				break
			}
		}
	}
	return out
}
