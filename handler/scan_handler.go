package handler

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/bizledger/invoice-scan/dto"
	"github.com/bizledger/invoice-scan/service"
	"github.com/gin-gonic/gin"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

type ScanHandler struct {
	invoiceService *service.InvoiceService
	maxFileSize    int64
}

func NewScanHandler(invoiceService *service.InvoiceService, maxFileSize int64) *ScanHandler {
	return &ScanHandler{
		invoiceService: invoiceService,
		maxFileSize:    maxFileSize,
	}
}

// ScanInvoice handles the POST /invoices/scan endpoint
func (h *ScanHandler) ScanInvoice(c *gin.Context) {
	log.Println("Received invoice scan request")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "A file is required", err)
		return
	}

	if fileHeader.Size > h.maxFileSize {
		h.sendError(c, http.StatusBadRequest, "File exceeds the maximum allowed size", nil)
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		h.sendError(c, http.StatusBadRequest, dto.ErrUnsupportedDocument.Error(), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to open uploaded file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to read uploaded file", err)
		return
	}

	log.Printf("Scanning %s (%d bytes)", fileHeader.Filename, len(data))

	invoice, err := h.invoiceService.ScanDocument(context.Background(), fileHeader.Filename, data)
	if err != nil {
		if errors.Is(err, dto.ErrUnsupportedDocument) {
			h.sendError(c, http.StatusBadRequest, err.Error(), err)
			return
		}
		h.sendError(c, http.StatusInternalServerError, "Failed to scan invoice", err)
		return
	}

	log.Printf("Invoice scan completed: number=%s vendor=%s total=%.2f",
		invoice.InvoiceNumber, invoice.VendorName, invoice.Financials.Total)
	c.JSON(http.StatusOK, invoice)
}

// sendError sends a structured error response
func (h *ScanHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "SCAN_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
