package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"path/filepath"
	"strings"

	"github.com/bizledger/invoice-scan/client"
	"github.com/bizledger/invoice-scan/dto"
	"github.com/bizledger/invoice-scan/utils"
)

// Below this many characters of text-layer output a PDF is treated as
// scanned and re-run through page-image OCR.
const minTextLayerChars = 20

const rawTextExcerptLimit = 2000

type InvoiceService struct {
	tesseractClient *client.TesseractClient
	recognition     *client.RecognitionClient
	pdfProcessor    PDFProcessor
}

func NewInvoiceService(
	tesseractClient *client.TesseractClient,
	recognition *client.RecognitionClient,
	pdfProcessor PDFProcessor,
) *InvoiceService {
	return &InvoiceService{
		tesseractClient: tesseractClient,
		recognition:     recognition,
		pdfProcessor:    pdfProcessor,
	}
}

// ScanDocument extracts a structured invoice from an uploaded document.
// PDFs go through the text engine; images go to the recognition service
// (with a local OCR fallback). Any other kind is the one hard failure.
func (s *InvoiceService) ScanDocument(ctx context.Context, filename string, data []byte) (*dto.ExtractedInvoice, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".pdf":
		return s.scanPDF(ctx, data)
	case ".jpg", ".jpeg", ".png":
		return s.scanImage(ctx, data)
	default:
		return nil, dto.ErrUnsupportedDocument
	}
}

func (s *InvoiceService) scanPDF(ctx context.Context, data []byte) (*dto.ExtractedInvoice, error) {
	text, err := s.pdfProcessor.ExtractText(data)
	if err != nil {
		log.Printf("PDF text extraction failed: %v", err)
	}

	// Scanned PDF: no usable text layer, OCR the page images instead
	if len(strings.TrimSpace(text)) < minTextLayerChars {
		log.Println("PDF has minimal embedded text, attempting image-based OCR")

		images, imgErr := s.pdfProcessor.ExtractImages(data)
		if imgErr != nil {
			log.Printf("Failed to extract images from PDF: %v", imgErr)
		}

		var combined strings.Builder
		for idx, img := range images {
			pageText, ocrErr := s.tesseractClient.ExtractTextFromImage(img)
			if ocrErr != nil {
				log.Printf("OCR failed for page %d: %v", idx+1, ocrErr)
				continue
			}
			combined.WriteString(pageText)
			combined.WriteString("\n")
		}
		if combined.Len() > 0 {
			text = combined.String()
		}
	}

	invoice := s.ExtractFromText(text)
	return &invoice, nil
}

func (s *InvoiceService) scanImage(ctx context.Context, data []byte) (*dto.ExtractedInvoice, error) {
	// Decoding is deferred until a path actually needs the pixels, so a
	// successful recognition call never pays for it up front.
	var img image.Image

	var invoice *dto.ExtractedInvoice

	result, err := s.recognition.ParseInvoiceImage(data)
	if err == nil {
		invoice = s.mapRecognitionResult(result)
	} else {
		log.Printf("Recognition service unavailable, falling back to local OCR: %v", err)

		decoded, _, decodeErr := image.Decode(bytes.NewReader(data))
		if decodeErr != nil {
			return nil, fmt.Errorf("failed to decode image: %w", decodeErr)
		}
		img = decoded

		text, ocrErr := s.tesseractClient.ExtractTextFromImage(img)
		if ocrErr != nil {
			return nil, fmt.Errorf("image OCR failed: %w", ocrErr)
		}
		extracted := s.ExtractFromText(text)
		invoice = &extracted
	}

	if img == nil {
		if decoded, _, decodeErr := image.Decode(bytes.NewReader(data)); decodeErr == nil {
			img = decoded
		}
	}
	if img != nil {
		s.enrichFromQR(invoice, img)
	}

	return invoice, nil
}

// ExtractFromText runs the full extraction pipeline over raw invoice
// text and reconciles financials against the summed line items. The
// engine is stateless: every call works on its own input and result.
func (s *InvoiceService) ExtractFromText(rawText string) dto.ExtractedInvoice {
	gstins := utils.ExtractGSTIN(rawText)

	invoice := dto.ExtractedInvoice{
		InvoiceNumber: utils.ExtractInvoiceNumber(rawText),
		InvoiceDate:   utils.ExtractDate(rawText),
		VendorName:    utils.ExtractVendorName(rawText),
		AllGSTINs:     gstins,
		Items:         utils.ExtractLineItems(rawText),
		Financials:    utils.ExtractFinancials(rawText),
		RawText:       excerpt(rawText),
	}
	if len(gstins) > 0 {
		invoice.GSTIN = gstins[0]
	}

	reconcileWithItems(&invoice)
	return invoice
}

// mapRecognitionResult converts the recognition service schema into the
// common invoice shape. Line-item arithmetic and financial gap-filling
// follow the same rules as the text path.
func (s *InvoiceService) mapRecognitionResult(result *dto.RecognitionResult) *dto.ExtractedInvoice {
	items := make([]dto.LineItem, 0, len(result.LineItems))
	for _, li := range result.LineItems {
		item := dto.LineItem{
			Name:     li.Description,
			Quantity: li.Quantity,
			Price:    li.UnitPrice,
			Total:    li.LineTotal,
		}
		if item.Total == 0 && item.Price > 0 && item.Quantity > 0 {
			item.Total = utils.Round2(item.Price * item.Quantity)
		}
		if item.Price == 0 && item.Total > 0 && item.Quantity > 0 {
			item.Price = utils.Round2(item.Total / item.Quantity)
		}
		if item.Quantity == 0 {
			item.Quantity = 1
		}
		items = append(items, item)
	}

	invoice := &dto.ExtractedInvoice{
		InvoiceNumber: result.InvoiceMetadata.InvoiceNumber,
		InvoiceDate:   result.InvoiceMetadata.Date,
		VendorName:    result.InvoiceMetadata.VendorName,
		AllGSTINs:     []string{},
		Items:         items,
		Financials: dto.ExtractedFinancials{
			Subtotal: result.Financials.Subtotal,
			Tax:      result.Financials.Tax,
			Total:    result.Financials.GrandTotal,
		},
	}

	reconcileWithItems(invoice)
	return invoice
}

// reconcileWithItems fills financial gaps from the line items. It never
// overwrites a value the extractor already found.
func reconcileWithItems(invoice *dto.ExtractedInvoice) {
	fin := &invoice.Financials

	if fin.Subtotal == 0 && len(invoice.Items) > 0 {
		var sum float64
		for _, item := range invoice.Items {
			sum += item.Total
		}
		fin.Subtotal = utils.Round2(sum)
	}

	if fin.Tax == 0 {
		var tax float64
		for _, item := range invoice.Items {
			if item.TaxRate > 0 {
				tax += item.Total * item.TaxRate / 100
			}
		}
		if tax > 0 {
			fin.Tax = utils.Round2(tax)
		}
	}

	if fin.Total == 0 && fin.Subtotal > 0 {
		fin.Total = utils.Round2(fin.Subtotal + fin.Tax)
	}
}

// enrichFromQR fills gstin and invoice number gaps from the e-invoice QR
// code, when one is present and decodable. Existing values are kept.
func (s *InvoiceService) enrichFromQR(invoice *dto.ExtractedInvoice, img image.Image) {
	qrText, err := DecodeInvoiceQR(img)
	if err != nil {
		return
	}

	if gstins := utils.ExtractGSTIN(qrText); len(gstins) > 0 {
		if invoice.GSTIN == "" {
			invoice.GSTIN = gstins[0]
		}
		for _, g := range gstins {
			if !containsString(invoice.AllGSTINs, g) {
				invoice.AllGSTINs = append(invoice.AllGSTINs, g)
			}
		}
	}

	// E-invoice QR payloads carry the document number as JSON
	var payload struct {
		DocNo       string `json:"DocNo"`
		SellerGstin string `json:"SellerGstin"`
	}
	if jsonErr := json.Unmarshal([]byte(qrText), &payload); jsonErr == nil {
		if invoice.InvoiceNumber == "" && payload.DocNo != "" {
			invoice.InvoiceNumber = payload.DocNo
		}
		if invoice.GSTIN == "" && payload.SellerGstin != "" {
			invoice.GSTIN = payload.SellerGstin
		}
	}
}

func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= rawTextExcerptLimit {
		return text
	}
	return string(runes[:rawTextExcerptLimit])
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
