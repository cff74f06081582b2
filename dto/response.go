package dto

import "errors"

// Custom errors
var (
	ErrUnsupportedDocument = errors.New("unsupported document type: only JPG, PNG and PDF invoices are accepted")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
