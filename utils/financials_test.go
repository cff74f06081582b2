package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFinancialsGrandTotalOnly(t *testing.T) {
	text := "Some Vendor\nGrand Total: ₹1,750.00"

	fin := ExtractFinancials(text)

	assert.Equal(t, 1750.00, fin.Total)
	assert.Equal(t, 0.0, fin.Subtotal)
	assert.Equal(t, 0.0, fin.Tax)
}

func TestExtractFinancialsTaxComponents(t *testing.T) {
	text := "CGST 9%: 476.282\nSGST 9%: 476.282"

	fin := ExtractFinancials(text)

	assert.Equal(t, 476.28, fin.CGST)
	assert.Equal(t, 476.28, fin.SGST)
	assert.Equal(t, 0.0, fin.IGST)
	assert.Equal(t, 952.56, fin.Tax)
}

func TestExtractFinancialsPercentageNotCaptured(t *testing.T) {
	// The rate annotation must be skipped, not read as the amount
	fin := ExtractFinancials("CGST @ 2.5% : 42.86\nSGST @ 2.5% : 42.86")

	assert.Equal(t, 42.86, fin.CGST)
	assert.Equal(t, 42.86, fin.SGST)
}

func TestExtractFinancialsSubtotalPercentageSkipped(t *testing.T) {
	// A GST rate annotation on the subtotal line must not become the value
	text := "Taxable Value @ 5%: 1,000.00\nGrand Total @ 5%: 1,050.00"

	fin := ExtractFinancials(text)

	assert.Equal(t, 1000.00, fin.Subtotal)
	assert.Equal(t, 1050.00, fin.Total)
}

func TestExtractFinancialsStandaloneTaxLabel(t *testing.T) {
	text := "Taxable Amount: 1,000.00\nTotal Tax: 180.00"

	fin := ExtractFinancials(text)

	assert.Equal(t, 1000.00, fin.Subtotal)
	assert.Equal(t, 180.00, fin.Tax)
	// Total reconciled as subtotal + tax
	assert.Equal(t, 1180.00, fin.Total)
}

func TestExtractFinancialsSubtotalReconciled(t *testing.T) {
	text := "CGST 9%: 90.00\nSGST 9%: 90.00\nGrand Total: 1,180.00"

	fin := ExtractFinancials(text)

	assert.Equal(t, 180.00, fin.Tax)
	assert.Equal(t, 1180.00, fin.Total)
	assert.Equal(t, 1000.00, fin.Subtotal)
}

func TestExtractFinancialsBottomUpTotalScan(t *testing.T) {
	text := `
		Subtotal: 500.00
		Total Quantity: 6 NOS
		Total 590.00
	`

	fin := ExtractFinancials(text)

	// The quantity line is a false positive and must be skipped
	assert.Equal(t, 500.00, fin.Subtotal)
	assert.Equal(t, 590.00, fin.Total)
}

func TestExtractFinancialsEmpty(t *testing.T) {
	fin := ExtractFinancials("nothing financial here")

	assert.Equal(t, 0.0, fin.Subtotal)
	assert.Equal(t, 0.0, fin.Tax)
	assert.Equal(t, 0.0, fin.Total)
}
