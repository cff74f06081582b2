package client

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/bizledger/invoice-scan/dto"
)

// RecognitionClient calls the external invoice recognition service for
// image documents. The service does its own layout analysis and returns
// the pre-structured invoice_metadata / line_items / financials schema,
// so recognized images never pass through the regex extractors.
type RecognitionClient struct {
	apiURL     string
	httpClient *http.Client
}

func NewRecognitionClient(apiURL string) *RecognitionClient {
	log.Printf("Recognition client initialized with API: %s", apiURL)

	return &RecognitionClient{
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// ParseInvoiceImage sends the image to the recognition service and
// returns its structured result.
func (rc *RecognitionClient) ParseInvoiceImage(imageData []byte) (*dto.RecognitionResult, error) {
	payload := map[string]interface{}{
		"image": base64.StdEncoding.EncodeToString(imageData),
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	resp, err := rc.httpClient.Post(rc.apiURL, "application/json", bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to call recognition API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("recognition API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result dto.RecognitionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode recognition response: %w", err)
	}

	if result.Error != "" {
		return nil, fmt.Errorf("recognition service error: %s", result.Error)
	}

	log.Printf("Recognition service returned %d line items", len(result.LineItems))
	return &result, nil
}
