package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	rupeePrefixRegex = regexp.MustCompile(`(?i)Rs\.?\s*`)
	numericRegex     = regexp.MustCompile(`\(?\-?\)?\s*(\d+\.?\d*)`)
)

// ParseAmount parses a currency-formatted token into a number.
// Strips ₹/$/Rs prefixes, comma separators and whitespace; parenthesized
// or hyphen-prefixed tokens are negative, e.g. "(-)0.01" -> -0.01.
// Returns 0 for empty or unparseable input, never an error — callers
// treat 0 as "absent".
func ParseAmount(token string) float64 {
	if token == "" {
		return 0
	}

	clean := strings.NewReplacer("₹", "", "$", "", ",", "", " ", "", "\t", "").Replace(token)
	clean = rupeePrefixRegex.ReplaceAllString(clean, "")

	matches := numericRegex.FindStringSubmatch(clean)
	if matches == nil {
		return 0
	}

	num, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0
	}

	if strings.Contains(clean, "-") || strings.Contains(clean, "(") {
		return -num
	}
	return num
}

// Round2 rounds to two decimals (monetary precision).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
