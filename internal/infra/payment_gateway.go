package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// GatewayCharge is sent to the external payment provider when capturing a
// payment intent.
type GatewayCharge struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Provider  string          `json:"provider"` // stripe | paypal | manual
	PaymentID string          `json:"payment_id"`
	OrderID   string          `json:"order_id,omitempty"`
}

// GatewayResult is the provider's answer for a charge attempt.
type GatewayResult struct {
	ExternalID   string `json:"external_id"`
	ClientSecret string `json:"client_secret,omitempty"`
	Status       string `json:"status"` // "succeeded" | "requires_action" | "failed"
	Message      string `json:"message,omitempty"`
}

// PaymentGateway is an HTTP client for the external payment provider. Keeping
// it behind an interface lets the payment service run against a stub in tests.
type PaymentGateway interface {
	Charge(ctx context.Context, charge GatewayCharge) (*GatewayResult, error)
}

type paymentGateway struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewPaymentGateway(baseURL, secretKey string) PaymentGateway {
	return &paymentGateway{
		baseURL:    baseURL,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Charge posts a charge request and decodes the provider's result.
func (c *paymentGateway) Charge(ctx context.Context, charge GatewayCharge) (*GatewayResult, error) {
	body, err := json.Marshal(charge)
	if err != nil {
		return nil, fmt.Errorf("gateway: marshal charge: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/charges", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gateway: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway: provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway: provider returned %d", resp.StatusCode)
	}

	var result GatewayResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("gateway: decode response: %w", err)
	}
	return &result, nil
}
