package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bizledger/invoice-scan/dto"
)

var tableHeaderKeywords = []string{
	"description", "item", "particular", "product", "qty", "quantity",
	"rate", "price", "amount", "total", "hsn",
}

var tableFooterKeywords = []string{
	"subtotal", "sub total", "total tax", "grand total", "net amount",
	"bank detail", "terms", "thank you", "note:", "in words",
	"amount in words", "cgst", "sgst", "igst", "declaration", "less round",
}

var (
	numberTokenRegex = regexp.MustCompile(`[\d,]+\.?\d*`)
	bareCodeRegex    = regexp.MustCompile(`^\d{4,8}$`)
	percentTagRegex  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	qtyKeywordRegex  = regexp.MustCompile(`qty|quantity`)
	rateKeywordRegex = regexp.MustCompile(`rate|price`)
	unitWordRegex    = regexp.MustCompile(`(?i)\b(nos|pcs|kg|lbs|mtr|ltr|units|box|set|pairs?|bag|packet|doz|ft|sqft|sqm)\b`)
	edgeTrimRegex    = regexp.MustCompile(`^[\s\-.:,]+|[\s\-.:,]+$`)
)

// extractTabularLineItems handles the one-row-per-item layout:
//
//	Description | HSN | Qty | Rate | Amount
//
// The header row fixes the column order; each following row is read as
// positional numeric tokens with the rightmost amount always the total.
func extractTabularLineItems(lines []string) []dto.LineItem {
	items := []dto.LineItem{}

	headerIdx := findTableHeader(lines)
	if headerIdx == -1 {
		return items
	}

	// Column order: when the rate column sits left of the qty column the
	// positional assignment below flips.
	header := strings.ToLower(lines[headerIdx])
	rateBeforeQty := false
	qtyPos := qtyKeywordRegex.FindStringIndex(header)
	ratePos := rateKeywordRegex.FindStringIndex(header)
	if qtyPos != nil && ratePos != nil && ratePos[0] < qtyPos[0] {
		rateBeforeQty = true
	}

	for i := headerIdx + 1; i < len(lines); i++ {
		line := lines[i]
		lower := strings.ToLower(line)

		if containsAny(lower, tableFooterKeywords) {
			break
		}

		tokens := numberTokenRegex.FindAllString(line, -1)
		if len(tokens) < 2 {
			continue
		}

		// Classify tokens: bare 4-8 digit integers above 9999 are HSN
		// code candidates, everything else positive is an amount.
		var hsnCode string
		var amounts []float64
		for _, tok := range tokens {
			clean := strings.ReplaceAll(tok, ",", "")
			if bareCodeRegex.MatchString(clean) {
				if code, err := strconv.Atoi(clean); err == nil && code > 9999 {
					if hsnCode == "" {
						hsnCode = clean
					}
					continue
				}
			}
			if val := ParseAmount(tok); val > 0 {
				amounts = append(amounts, val)
			}
		}

		if len(amounts) < 2 {
			continue
		}

		// Rightmost amount is always the total.
		item := dto.LineItem{
			HSNCode:  hsnCode,
			Total:    amounts[len(amounts)-1],
			Quantity: 1,
		}
		if len(amounts) >= 3 {
			if rateBeforeQty {
				item.Quantity = amounts[len(amounts)-2]
				item.Price = amounts[len(amounts)-3]
			} else {
				item.Price = amounts[len(amounts)-2]
				item.Quantity = amounts[len(amounts)-3]
			}
		} else {
			// Two tokens only: assume a single unit at the listed total.
			item.Price = item.Total
		}

		// Guards against an HSN code slipping through as a quantity.
		if item.Quantity > 1000 {
			item.Quantity = 1
		}

		if matches := percentTagRegex.FindStringSubmatch(line); len(matches) > 1 {
			item.TaxRate, _ = strconv.ParseFloat(matches[1], 64)
		}

		item.Name = cleanRowDescription(line, tokens)
		if len(item.Name) < 2 {
			item.Name = fmt.Sprintf("Item %d", len(items)+1)
		}

		items = append(items, item)
	}

	return items
}

// findTableHeader returns the index of the first line containing at least
// two header keywords, or -1 when the text has no recognizable table.
func findTableHeader(lines []string) int {
	for i, line := range lines {
		lower := strings.ToLower(line)
		count := 0
		for _, kw := range tableHeaderKeywords {
			if strings.Contains(lower, kw) {
				count++
			}
		}
		if count >= 2 {
			return i
		}
	}
	return -1
}

// cleanRowDescription strips the matched numeric tokens, currency symbols
// and unit words from the row, leaving the item description.
func cleanRowDescription(line string, tokens []string) string {
	desc := line
	for _, tok := range tokens {
		desc = strings.Replace(desc, tok, "", 1)
	}
	desc = strings.NewReplacer("₹", "", "$", "", "|", "", "%", "").Replace(desc)
	desc = unitWordRegex.ReplaceAllString(desc, "")
	desc = strings.Join(strings.Fields(desc), " ")
	desc = edgeTrimRegex.ReplaceAllString(desc, "")
	return desc
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
