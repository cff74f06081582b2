package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractStructuredLineItems(t *testing.T) {
	text := `
		Tax Invoice
		Bolt
		HSN/SAC: 73181990
		GST: 18%
		Quantity: 10 NOS
		Rate: 5.00
		Amount: 50.00
	`

	items := ExtractLineItems(text)

	assert.Len(t, items, 1)
	assert.Equal(t, "Bolt", items[0].Name)
	assert.Equal(t, "73181990", items[0].HSNCode)
	assert.Equal(t, 18.0, items[0].TaxRate)
	assert.Equal(t, 10.0, items[0].Quantity)
	assert.Equal(t, 5.00, items[0].Price)
	assert.Equal(t, 50.00, items[0].Total)
}

func TestStructuredItemTotalDerived(t *testing.T) {
	// No Amount field: the footer finalizes and total = price * quantity
	text := `
		Widget Assembly
		HSN/SAC: 84204000
		Quantity: 3
		Rate: 20.00
		Subtotal: 60.00
	`

	items := ExtractLineItems(text)

	assert.Len(t, items, 1)
	assert.Equal(t, "Widget Assembly", items[0].Name)
	assert.Equal(t, 3.0, items[0].Quantity)
	assert.Equal(t, 20.00, items[0].Price)
	assert.Equal(t, 60.00, items[0].Total)
}

func TestStructuredItemNameBackfilled(t *testing.T) {
	// "Pen" is too short to open an item by itself; the HSN line picks it
	// up from the preceding lines instead
	text := `
		Pen
		HSN/SAC: 96081019
		Amount: 10.00
	`

	items := ExtractLineItems(text)

	assert.Len(t, items, 1)
	assert.Equal(t, "Pen", items[0].Name)
	assert.Equal(t, 1.0, items[0].Quantity)
	assert.Equal(t, 10.00, items[0].Total)
}

func TestStructuredBackfillStopsAtColumnHeader(t *testing.T) {
	// A column header sitting above the item name must not leak into it
	text := `
		Description
		Pen
		HSN/SAC: 96081019
		Amount: 10.00
	`

	items := ExtractLineItems(text)

	assert.Len(t, items, 1)
	assert.Equal(t, "Pen", items[0].Name)
}

func TestStructuredMultipleItems(t *testing.T) {
	text := `
		River Sand
		HSN/SAC: 25051019
		GST: 5%
		Quantity: 5 NOS
		Rate: 171.43
		Amount: 857.15
		Crushed Stone
		HSN/SAC: 25171010
		GST: 5%
		Quantity: 2 NOS
		Rate: 400.00
		Amount: 800.00
		Subtotal: 1657.15
	`

	items := ExtractLineItems(text)

	assert.Len(t, items, 2)
	assert.Equal(t, "River Sand", items[0].Name)
	assert.Equal(t, 857.15, items[0].Total)
	assert.Equal(t, "Crushed Stone", items[1].Name)
	assert.Equal(t, 800.00, items[1].Total)
}

func TestStructuredItemRequiresLookahead(t *testing.T) {
	// Ordinary prose followed by no field labels must not become an item
	text := `
		Thank you for your business
		Payment due within 30 days
		Contact us for any queries
	`

	items := ExtractLineItems(text)

	assert.Empty(t, items)
}

func TestExtractLineItemsNothingRecognizable(t *testing.T) {
	// No structured labels and no table header: empty result
	text := "This letter confirms our meeting on Tuesday.\nRegards,\nAccounts"

	assert.Empty(t, ExtractLineItems(text))
}
