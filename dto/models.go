package dto

// ExtractedFinancials holds the money summary recovered from an invoice.
// Zero means the field was not found in the text (absent-value policy).
type ExtractedFinancials struct {
	Subtotal float64 `json:"subtotal"`
	CGST     float64 `json:"cgst"`
	SGST     float64 `json:"sgst"`
	IGST     float64 `json:"igst"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// LineItem is a single purchased item row.
type LineItem struct {
	Name     string  `json:"name"`
	HSNCode  string  `json:"hsnCode,omitempty"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	TaxRate  float64 `json:"taxRate"`
	Total    float64 `json:"total"`
}

// ExtractedInvoice is the final structured result returned to the caller.
// String fields are empty when the corresponding pattern never matched.
type ExtractedInvoice struct {
	InvoiceNumber string              `json:"invoiceNumber"`
	InvoiceDate   string              `json:"invoiceDate"`
	VendorName    string              `json:"vendorName"`
	GSTIN         string              `json:"gstin"`
	AllGSTINs     []string            `json:"allGstins"`
	Items         []LineItem          `json:"items"`
	Financials    ExtractedFinancials `json:"financials"`
	RawText       string              `json:"rawText"`
}
