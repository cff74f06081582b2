package utils

import (
	"regexp"
	"strings"

	"github.com/bizledger/invoice-scan/dto"
)

// Label patterns are evaluated in priority order, first match wins.
// They all skip an optional percentage annotation between the label and
// the amount ("CGST 9%: 476.28" must capture 476.28, not 9).
const percentSkip = `[^\d\n]*(?:\d+(?:\.\d+)?\s*%)?[^\d\n]*`

var subtotalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)sub\s*-?\s*total` + percentSkip + `([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)taxable\s*(?:value|amount)` + percentSkip + `([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)base\s*amount` + percentSkip + `([\d,]+\.?\d*)`),
}

// Component amounts must carry decimals so a rate-only line like
// "CGST 9%" never yields 9 as the tax value.
var (
	cgstRegex = regexp.MustCompile(`(?i)(?:CGST|Central\s*(?:GST|Tax))` + percentSkip + `([\d,]+\.\d{1,2})`)
	sgstRegex = regexp.MustCompile(`(?i)(?:SGST|State\s*(?:GST|Tax))` + percentSkip + `([\d,]+\.\d{1,2})`)
	igstRegex = regexp.MustCompile(`(?i)IGST` + percentSkip + `([\d,]+\.\d{1,2})`)
)

var totalTaxPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)total\s*tax` + percentSkip + `([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)tax\s*amount` + percentSkip + `([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)GST\s*amount` + percentSkip + `([\d,]+\.?\d*)`),
}

var grandTotalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)grand\s*total` + percentSkip + `([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)net\s*(?:amount|payable)` + percentSkip + `([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)amount\s*due` + percentSkip + `([\d,]+\.?\d*)`),
}

var (
	totalWordRegex      = regexp.MustCompile(`(?i)total`)
	falseTotalRegex     = regexp.MustCompile(`(?i)quantity|qty|nos|items|units`)
	totalAmountCapRegex = regexp.MustCompile(`(?i)Total.*?([\d,]+\.\d{1,2})`)
)

// ExtractFinancials locates the taxable amount, tax components and grand
// total in the text and reconciles missing values arithmetically. Every
// unresolved field defaults to 0; the function never fails.
func ExtractFinancials(text string) dto.ExtractedFinancials {
	var result dto.ExtractedFinancials

	lines := splitLines(text)

	// 1. Subtotal
	result.Subtotal = matchLabeledAmount(lines, subtotalPatterns)

	// 2. Tax components, matched independently
	result.CGST = matchComponent(lines, cgstRegex)
	result.SGST = matchComponent(lines, sgstRegex)
	result.IGST = matchComponent(lines, igstRegex)

	// 3. Total tax, with a standalone-label fallback
	result.Tax = Round2(result.CGST + result.SGST + result.IGST)
	if result.Tax == 0 {
		result.Tax = matchLabeledAmount(lines, totalTaxPatterns)
	}

	// 4. Grand total: labeled patterns first, then a bottom-up scan for
	// any "Total" line that is not a quantity/items count.
	result.Total = matchLabeledAmount(lines, grandTotalPatterns)
	if result.Total == 0 {
		result.Total = scanBottomUpTotal(lines, result.Subtotal)
	}

	// 5. Reconciliation
	if result.Subtotal == 0 && result.Total > 0 && result.Tax > 0 {
		result.Subtotal = Round2(result.Total - result.Tax)
	}
	if result.Total == 0 && result.Subtotal > 0 {
		result.Total = Round2(result.Subtotal + result.Tax)
	}

	return result
}

// matchLabeledAmount tries each pattern in priority order against every
// line; the first pattern that matches any line decides the value.
func matchLabeledAmount(lines []string, patterns []*regexp.Regexp) float64 {
	for _, pattern := range patterns {
		for _, line := range lines {
			if matches := pattern.FindStringSubmatch(line); len(matches) > 1 {
				return Round2(ParseAmount(matches[1]))
			}
		}
	}
	return 0
}

func matchComponent(lines []string, pattern *regexp.Regexp) float64 {
	for _, line := range lines {
		if matches := pattern.FindStringSubmatch(line); len(matches) > 1 {
			return Round2(ParseAmount(matches[1]))
		}
	}
	return 0
}

func scanBottomUpTotal(lines []string, subtotal float64) float64 {
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if !totalWordRegex.MatchString(line) || falseTotalRegex.MatchString(line) {
			continue
		}
		matches := totalAmountCapRegex.FindStringSubmatch(line)
		if len(matches) < 2 {
			continue
		}
		value := Round2(ParseAmount(matches[1]))
		if value > subtotal || (subtotal == 0 && value > 0) {
			return value
		}
	}
	return 0
}

// splitLines yields trimmed non-empty lines.
func splitLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
