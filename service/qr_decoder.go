package service

import (
	"fmt"
	"image"
	"log"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// DecodeInvoiceQR attempts to read the e-invoice QR code printed on GST
// invoices. The payload carries supplier GSTIN and document number, which
// the scan pipeline uses to fill fields the text extraction missed.
func DecodeInvoiceQR(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to create binary bitmap: %w", err)
	}

	qrReader := qrcode.NewQRCodeReader()

	result, err := qrReader.Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("failed to decode QR code: %w", err)
	}

	qrText := result.GetText()
	log.Printf("Invoice QR decoded, length: %d bytes", len(qrText))

	return qrText, nil
}
