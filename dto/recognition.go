package dto

// Schema returned by the external recognition service for image invoices.
// The service does its own layout analysis, so this arrives pre-structured
// and bypasses the regex extractors entirely.

type RecognitionMetadata struct {
	InvoiceNumber string `json:"invoice_number"`
	Date          string `json:"date"`
	DueDate       string `json:"due_date,omitempty"`
	VendorName    string `json:"vendor_name"`
	CustomerName  string `json:"customer_name"`
}

type RecognitionLineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

type RecognitionFinancials struct {
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	GrandTotal float64 `json:"grand_total"`
}

type RecognitionResult struct {
	InvoiceMetadata RecognitionMetadata   `json:"invoice_metadata"`
	Financials      RecognitionFinancials `json:"financials"`
	LineItems       []RecognitionLineItem `json:"line_items"`
	Error           string                `json:"error,omitempty"`
}
