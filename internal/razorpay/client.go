// Package razorpay polls the payments API and appends captured
// payments to the ledger CSV. It has no call path into the interactive
// layer; the CSV file is the sole hand-off point.
package razorpay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Payment is one record from GET /v1/payments. Amount is in minor
// currency units (paise).
type Payment struct {
	ID          string `json:"id"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   int64  `json:"created_at"`
}

// StatusCaptured marks payments that actually settled; everything else
// is ignored by the poller.
const StatusCaptured = "captured"

type paymentList struct {
	Items []Payment `json:"items"`
}

// Client is a minimal payments API client using basic auth.
type Client struct {
	BaseURL    string
	KeyID      string
	KeySecret  string
	HTTPClient *http.Client
}

// NewClient builds a client with a request timeout; the poller must
// never hang on a dead endpoint.
func NewClient(baseURL, keyID, keySecret string) *Client {
	return &Client{
		BaseURL:    baseURL,
		KeyID:      keyID,
		KeySecret:  keySecret,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// ListPayments fetches the current payment list.
func (c *Client) ListPayments(ctx context.Context) ([]Payment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/payments", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch payments: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("payments api status %d: %s", resp.StatusCode, body)
	}

	var list paymentList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return list.Items, nil
}
