package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// OrderCreator abstracts gateway order creation so the subscription flow
// can be tested without network calls.
type OrderCreator interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (string, error)
}

// Client talks to the Razorpay Orders API.
type Client struct {
	api *razorpay.Client
}

// NewClient creates a gateway client with the given credentials.
func NewClient(keyID, keySecret string) *Client {
	return &Client{api: razorpay.NewClient(keyID, keySecret)}
}

// CreateOrder creates a gateway order for the given amount in minor
// currency units and returns the gateway order id. The notes map is
// attached to the order for reconciliation (user id, plan id).
//
// The SDK performs the HTTP call internally without context support, so
// ctx is accepted for interface symmetry but not propagated.
func (c *Client) CreateOrder(_ context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (string, error) {
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		noteData := make(map[string]interface{}, len(notes))
		for k, v := range notes {
			noteData[k] = v
		}
		data["notes"] = noteData
	}

	body, err := c.api.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("create gateway order: %w", err)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("gateway order response missing id")
	}
	return orderID, nil
}
