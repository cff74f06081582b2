package main

import (
	"log"

	"github.com/bizledger/invoice-scan/client"
	"github.com/bizledger/invoice-scan/config"
	"github.com/bizledger/invoice-scan/handler"
	"github.com/bizledger/invoice-scan/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	// Initialize Tesseract client
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
	defer tesseractClient.Close()

	// Initialize recognition service client
	recognitionClient := client.NewRecognitionClient(cfg.RecognitionAPIURL)

	// Initialize PDF processor
	pdfProcessor := service.NewPDFProcessor()

	// Initialize service layer
	invoiceService := service.NewInvoiceService(tesseractClient, recognitionClient, pdfProcessor)

	// Initialize handler layer
	scanHandler := handler.NewScanHandler(invoiceService, cfg.MaxFileSize)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Invoice Scan",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		invoices := api.Group("/invoices")
		{
			invoices.POST("/scan", scanHandler.ScanInvoice)
		}
	}

	// Start server
	log.Printf("Starting Invoice Scan Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
