package service

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bizledger/invoice-scan/client"
	"github.com/bizledger/invoice-scan/dto"
	"github.com/stretchr/testify/assert"
)

func TestExtractFromText(t *testing.T) {
	svc := &InvoiceService{}
	text := `
		Sharma Traders
		123 MG Road, Pune
		GSTIN: 27AAPFU0939F1ZV
		Invoice No: INV-2025/001
		Dated: 18-Apr-25
		Buyer: Acme Industries
		Bolt
		HSN/SAC: 73181990
		GST: 18%
		Quantity: 10 NOS
		Rate: 5.00
		Amount: 50.00
	`

	invoice := svc.ExtractFromText(text)

	assert.Equal(t, "INV-2025/001", invoice.InvoiceNumber)
	assert.Equal(t, "2025-04-18", invoice.InvoiceDate)
	assert.Equal(t, "Sharma Traders", invoice.VendorName)
	assert.Equal(t, "27AAPFU0939F1ZV", invoice.GSTIN)
	assert.Equal(t, []string{"27AAPFU0939F1ZV"}, invoice.AllGSTINs)

	assert.Len(t, invoice.Items, 1)
	assert.Equal(t, "Bolt", invoice.Items[0].Name)
	assert.Equal(t, 50.00, invoice.Items[0].Total)

	// Nothing labeled subtotal/tax/total in the text, so the financials
	// come entirely from the line items
	assert.Equal(t, 50.00, invoice.Financials.Subtotal)
	assert.Equal(t, 9.00, invoice.Financials.Tax)
	assert.Equal(t, 59.00, invoice.Financials.Total)
}

func TestExtractFromTextEmptyInput(t *testing.T) {
	svc := &InvoiceService{}

	invoice := svc.ExtractFromText("")

	assert.Equal(t, "", invoice.InvoiceNumber)
	assert.Equal(t, "", invoice.VendorName)
	assert.Equal(t, []string{}, invoice.AllGSTINs)
	assert.Empty(t, invoice.Items)
	assert.Equal(t, 0.0, invoice.Financials.Total)
}

func TestMapRecognitionResult(t *testing.T) {
	svc := &InvoiceService{}
	result := &dto.RecognitionResult{
		InvoiceMetadata: dto.RecognitionMetadata{
			InvoiceNumber: "IMG-001",
			Date:          "2025-04-18",
			VendorName:    "Pixel Mart",
		},
		LineItems: []dto.RecognitionLineItem{
			{Description: "HDMI Cable", Quantity: 2, UnitPrice: 150.00},
		},
	}

	invoice := svc.mapRecognitionResult(result)

	assert.Equal(t, "IMG-001", invoice.InvoiceNumber)
	assert.Equal(t, "Pixel Mart", invoice.VendorName)
	assert.Len(t, invoice.Items, 1)
	assert.Equal(t, 300.00, invoice.Items[0].Total)
	assert.Equal(t, 300.00, invoice.Financials.Subtotal)
	assert.Equal(t, 300.00, invoice.Financials.Total)
}

func TestScanDocumentImageViaRecognition(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result := dto.RecognitionResult{
			InvoiceMetadata: dto.RecognitionMetadata{
				InvoiceNumber: "IMG-042",
				VendorName:    "Pixel Mart",
			},
			LineItems: []dto.RecognitionLineItem{
				{Description: "HDMI Cable", Quantity: 2, UnitPrice: 150.00},
			},
		}
		json.NewEncoder(w).Encode(result)
	}))
	defer server.Close()

	svc := NewInvoiceService(nil, client.NewRecognitionClient(server.URL), nil)

	invoice, err := svc.ScanDocument(context.Background(), "bill.png", encodeTestPNG(t))

	assert.NoError(t, err)
	assert.Equal(t, "IMG-042", invoice.InvoiceNumber)
	assert.Equal(t, "Pixel Mart", invoice.VendorName)
	assert.Len(t, invoice.Items, 1)
	assert.Equal(t, 300.00, invoice.Items[0].Total)
	assert.Equal(t, 300.00, invoice.Financials.Total)
}

func TestScanDocumentUnsupportedKind(t *testing.T) {
	svc := &InvoiceService{}

	_, err := svc.ScanDocument(context.Background(), "notes.txt", []byte("hello"))

	assert.ErrorIs(t, err, dto.ErrUnsupportedDocument)
}

func encodeTestPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.White)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestReconcileKeepsExtractedValues(t *testing.T) {
	invoice := &dto.ExtractedInvoice{
		Items: []dto.LineItem{
			{Name: "Widget", Quantity: 1, Price: 100, Total: 100},
		},
		Financials: dto.ExtractedFinancials{
			Subtotal: 999.00,
			Tax:      10.00,
			Total:    1009.00,
		},
	}

	reconcileWithItems(invoice)

	assert.Equal(t, 999.00, invoice.Financials.Subtotal)
	assert.Equal(t, 10.00, invoice.Financials.Tax)
	assert.Equal(t, 1009.00, invoice.Financials.Total)
}

func TestReconcileFillsTaxFromItemRates(t *testing.T) {
	invoice := &dto.ExtractedInvoice{
		Items: []dto.LineItem{
			{Name: "Paint", Quantity: 2, Price: 500, Total: 1000, TaxRate: 18},
			{Name: "Brush", Quantity: 1, Price: 50, Total: 50},
		},
	}

	reconcileWithItems(invoice)

	assert.Equal(t, 1050.00, invoice.Financials.Subtotal)
	assert.Equal(t, 180.00, invoice.Financials.Tax)
	assert.Equal(t, 1230.00, invoice.Financials.Total)
}
