package utils

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bizledger/invoice-scan/dto"
)

// Field detectors for structured item blocks, evaluated top-to-bottom per
// line; the first that matches decides how the line is consumed.
var (
	hsnFieldRegex    = regexp.MustCompile(`(?i)HSN\s*[/\\]?\s*SAC\s*[:.]?\s*(\d{4,8})`)
	gstFieldRegex    = regexp.MustCompile(`(?i)GST\s*[:.]?\s*(\d+(?:\.\d+)?)\s*%`)
	qtyFieldRegex    = regexp.MustCompile(`(?i)Quantity\s*[:.]?\s*([\d,]+\.?\d*)\s*(?:NOS|PCS|KG|LTR|MTR|UNITS|BOX|BAGS?|SETS?|PAIRS?)?`)
	rateFieldRegex   = regexp.MustCompile(`(?i)(?:Rate|Unit\s*Price|Price)\s*[:.]?\s*[₹$]?\s*([\d,]+\.?\d*)`)
	amountFieldRegex = regexp.MustCompile(`(?i)Amount\s*[:.]?\s*[₹$]?\s*([\d,]+\.?\d*)`)

	footerLabelRegex = regexp.MustCompile(`(?i)^(subtotal|sub\s*total|total|cgst|sgst|igst|bank|declaration|amount\s*in\s*words|less\s*round)`)

	knownFieldStartRegex = regexp.MustCompile(`(?i)^(hsn|gst|quantity|rate|amount|subtotal|total|cgst|sgst|igst|bank|declaration|buyer|seller|gstin|state|e-mail|invoice|dated|sl\.?\s*no|s\.?\s*no)`)
	tableHeaderRegex     = regexp.MustCompile(`(?i)^(description|item|particular|product|qty|quantity|rate|price|amount|total|tax)`)
	numericOnlyRegex     = regexp.MustCompile(`^[\d\s.,\-%]+$`)
	unitOnlyRegex        = regexp.MustCompile(`(?i)^(nos|pcs|kg|lbs|mtr|ltr|units|box|set|pairs?|bag|packet|doz|ft|sqft|sqm)\.?$`)
	pinCodeRegex         = regexp.MustCompile(`^\d{6}$`)
	addressLineRegex     = regexp.MustCompile(`^\d+,\s`)
	lookaheadFieldRegex  = regexp.MustCompile(`(?i)^(HSN|GST|Quantity|Rate|Amount)\s*[/\\:.]`)
)

// ExtractLineItems produces the ordered list of purchased items.
// The structured multi-line strategy is tried first; if it yields at
// least one item the tabular single-line strategy is skipped.
func ExtractLineItems(text string) []dto.LineItem {
	lines := splitLines(text)

	if items := extractStructuredLineItems(lines); len(items) > 0 {
		return items
	}
	return extractTabularLineItems(lines)
}

// extractStructuredLineItems handles the field-per-line layout of Indian
// GST invoices:
//
//	Product Name
//	HSN/SAC: 25081090
//	GST: 5%
//	Quantity: 5 NOS
//	Rate: 171.43
//	Amount: 857.15
//
// It runs a small state machine over consecutive lines: either no item is
// open (seeking a name) or one is being accumulated. An Amount field
// finalizes the open item; footer labels finalize without one.
func extractStructuredLineItems(lines []string) []dto.LineItem {
	items := []dto.LineItem{}
	var current *dto.LineItem

	for i, line := range lines {
		if matches := hsnFieldRegex.FindStringSubmatch(line); len(matches) > 1 {
			if current == nil {
				current = &dto.LineItem{HSNCode: matches[1]}
				current.Name = backfillItemName(lines, i)
			} else {
				current.HSNCode = matches[1]
			}
			continue
		}

		if matches := gstFieldRegex.FindStringSubmatch(line); len(matches) > 1 && current != nil {
			current.TaxRate, _ = strconv.ParseFloat(matches[1], 64)
			continue
		}

		if matches := qtyFieldRegex.FindStringSubmatch(line); len(matches) > 1 && current != nil {
			current.Quantity, _ = strconv.ParseFloat(strings.ReplaceAll(matches[1], ",", ""), 64)
			continue
		}

		if matches := rateFieldRegex.FindStringSubmatch(line); len(matches) > 1 && current != nil {
			current.Price = ParseAmount(matches[1])
			continue
		}

		if matches := amountFieldRegex.FindStringSubmatch(line); len(matches) > 1 && current != nil {
			current.Total = ParseAmount(matches[1])
			// Amount ends the item block
			if finalized, ok := finalizeItem(current); ok {
				items = append(items, finalized)
			}
			current = nil
			continue
		}

		if footerLabelRegex.MatchString(line) {
			if finalized, ok := finalizeItem(current); ok {
				items = append(items, finalized)
			}
			current = nil
			continue
		}

		if current == nil && isItemNameCandidate(lines, i) {
			current = &dto.LineItem{Name: line}
		}
	}

	if finalized, ok := finalizeItem(current); ok {
		items = append(items, finalized)
	}

	return items
}

// backfillItemName scans up to 3 preceding lines for the item name when an
// HSN field appears with no item open.
func backfillItemName(lines []string, hsnIdx int) string {
	name := ""
	low := hsnIdx - 3
	if low < 0 {
		low = 0
	}
	for j := hsnIdx - 1; j >= low; j-- {
		prev := strings.TrimSpace(lines[j])
		if knownFieldStartRegex.MatchString(prev) || tableHeaderRegex.MatchString(prev) {
			break
		}
		if numericOnlyRegex.MatchString(prev) || unitOnlyRegex.MatchString(prev) {
			continue
		}
		if len(prev) < 2 {
			break
		}
		if name == "" {
			name = prev
		} else {
			name = prev + " " + name
		}
	}
	return strings.TrimSpace(name)
}

// isItemNameCandidate reports whether the line can open a new item: it
// must not be a recognized field, header or address line, and at least
// one structured field label must follow within the next 5 lines.
func isItemNameCandidate(lines []string, idx int) bool {
	line := lines[idx]
	if len(line) <= 3 || len(line) >= 120 {
		return false
	}
	if knownFieldStartRegex.MatchString(line) || tableHeaderRegex.MatchString(line) {
		return false
	}
	lower := strings.ToLower(line)
	if addressLineRegex.MatchString(line) || strings.Contains(lower, "pin code") || pinCodeRegex.MatchString(line) {
		return false
	}

	end := idx + 6
	if end > len(lines) {
		end = len(lines)
	}
	for j := idx + 1; j < end; j++ {
		if lookaheadFieldRegex.MatchString(lines[j]) {
			return true
		}
	}
	return false
}

// finalizeItem fills derivable fields and decides whether the partial
// item is worth keeping: it needs a name and a positive total or price.
func finalizeItem(item *dto.LineItem) (dto.LineItem, bool) {
	if item == nil || item.Name == "" || (item.Total <= 0 && item.Price <= 0) {
		return dto.LineItem{}, false
	}
	if item.Total == 0 && item.Price > 0 && item.Quantity > 0 {
		item.Total = Round2(item.Price * item.Quantity)
	}
	if item.Price == 0 && item.Total > 0 && item.Quantity > 0 {
		item.Price = Round2(item.Total / item.Quantity)
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	return *item, true
}
