package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Indian GSTIN format: 2-digit state code + 10-char PAN + 1Z + check digit
var gstinRegex = regexp.MustCompile(`\d{2}[A-Z]{5}\d{4}[A-Z][A-Z\d]Z[A-Z\d]`)

// ExtractGSTIN returns all GSTINs found in the text, in text order.
func ExtractGSTIN(text string) []string {
	matches := gstinRegex.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}

// Ordered by label priority: the first pattern that matches anywhere wins.
var invoiceNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Invoice\s*No\.?\s*[:.]?\s*([A-Za-z0-9\-/]+(?:/[A-Za-z0-9\-]+)*)`),
	regexp.MustCompile(`(?i)Invoice\s*#\s*[:.]?\s*([A-Za-z0-9\-/]+)`),
	regexp.MustCompile(`(?i)Inv\.?\s*No\.?\s*[:.]?\s*([A-Za-z0-9\-/]+)`),
	regexp.MustCompile(`(?i)Bill\s*No\.?\s*[:.]?\s*([A-Za-z0-9\-/]+)`),
	regexp.MustCompile(`(?i)Ref\.?\s*No\.?\s*[:.]?\s*([A-Za-z0-9\-/]+)`),
}

// ExtractInvoiceNumber finds the document number via labeled patterns.
// Returns "" when no label matches.
func ExtractInvoiceNumber(text string) string {
	for _, pattern := range invoiceNumberPatterns {
		if matches := pattern.FindStringSubmatch(text); len(matches) > 1 {
			return strings.TrimSpace(matches[1])
		}
	}
	return ""
}

var datePatterns = []*regexp.Regexp{
	// "Dated: 18-Apr-25" style with month abbreviation
	regexp.MustCompile(`(?i)Dated?\s*[:.]?\s*(\d{1,2}[\-/\s](?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*[\-/\s]\d{2,4})`),
	// DD/MM/YYYY or DD-MM-YYYY
	regexp.MustCompile(`(?i)(?:Invoice\s*)?Dated?\s*[:.]?\s*(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`),
	// YYYY-MM-DD
	regexp.MustCompile(`(?i)(?:Invoice\s*)?Dated?\s*[:.]?\s*(\d{4}[/\-]\d{1,2}[/\-]\d{1,2})`),
	// "Dated: 18 April 2025"
	regexp.MustCompile(`(?i)Dated?\s*[:.]?\s*(\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4})`),
}

var monthIndex = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
	"january": 1, "february": 2, "march": 3, "april": 4, "june": 6,
	"july": 7, "august": 8, "september": 9, "october": 10,
	"november": 11, "december": 12,
}

var monthNameDateRegex = regexp.MustCompile(`(\d{1,2})[\-/\s]+([A-Za-z]+)[\-/\s]+(\d{2,4})`)

// ExtractDate finds an invoice date anchored to a Date/Dated label and
// normalizes it to YYYY-MM-DD. Two-digit years are mapped into the 2000s.
// If normalization fails the raw matched substring is returned unmodified;
// "" means no date label matched at all.
func ExtractDate(text string) string {
	for _, pattern := range datePatterns {
		matches := pattern.FindStringSubmatch(text)
		if len(matches) < 2 {
			continue
		}
		raw := strings.TrimSpace(matches[1])

		// DD-Mon-YY / DD Month YYYY forms
		if m := monthNameDateRegex.FindStringSubmatch(raw); m != nil {
			day, _ := strconv.Atoi(m[1])
			year, _ := strconv.Atoi(m[3])
			if year < 100 {
				year += 2000 // 25 -> 2025
			}
			month, ok := monthIndex[strings.ToLower(m[2])]
			if ok && day >= 1 && day <= 31 {
				return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
			}
		}

		// Numeric forms, DD/MM/YYYY or YYYY-MM-DD
		parts := regexp.MustCompile(`[/\-]`).Split(raw, -1)
		if len(parts) == 3 {
			if normalized, ok := normalizeNumericDate(parts); ok {
				return normalized
			}
		}

		return raw
	}
	return ""
}

func normalizeNumericDate(parts []string) (string, bool) {
	var year, month, day int
	if len(parts[0]) == 4 {
		year, _ = strconv.Atoi(parts[0])
		month, _ = strconv.Atoi(parts[1])
		day, _ = strconv.Atoi(parts[2])
	} else {
		day, _ = strconv.Atoi(parts[0])
		month, _ = strconv.Atoi(parts[1])
		year, _ = strconv.Atoi(parts[2])
		if year < 100 {
			year += 2000
		}
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

var vendorIgnoreWords = []string{
	"invoice", "tax invoice", "bill to", "ship to", "date", "page",
	"gst", "phone", "email", "address", "order", "po ", "original",
	"duplicate", "copy", "buyer", "seller", "consignee", "gstin",
	"state name", "e-mail", "subject",
}

var (
	leadingDateRegex  = regexp.MustCompile(`^\d+[/\-]\d+`)
	pureNumberRegex   = regexp.MustCompile(`^\d+$`)
	addressStartRegex = regexp.MustCompile(`^\d+,`)
)

// ExtractVendorName guesses the issuing party's name from the first lines
// of the document. Structural lines (headers, contact info, addresses,
// bare numbers) are skipped; the first surviving line of reasonable
// length wins. Returns "" when nothing plausible is found.
func ExtractVendorName(text string) string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if len(l) > 2 {
			lines = append(lines, l)
		}
	}
	if len(lines) > 10 {
		lines = lines[:10]
	}

	for _, line := range lines {
		lower := strings.ToLower(line)
		if lower == "tax invoice" || lower == "original" || lower == "duplicate" {
			continue
		}
		ignored := false
		for _, w := range vendorIgnoreWords {
			if strings.Contains(lower, w) {
				ignored = true
				break
			}
		}
		if ignored || len(line) <= 3 || len(line) >= 80 {
			continue
		}
		if leadingDateRegex.MatchString(line) || pureNumberRegex.MatchString(line) {
			continue
		}
		if addressStartRegex.MatchString(line) {
			continue
		}
		return line
	}
	return ""
}
