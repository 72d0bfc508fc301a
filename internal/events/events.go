// Package events announces completed checkouts to interested consumers.
package events

import (
	"context"
	"time"
)

const CheckoutTopic = "shop-checkout-completed"

type CheckoutItem struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

// CheckoutCompleted is emitted once per successful checkout. Amounts are
// decimal strings with two places.
type CheckoutCompleted struct {
	CheckoutID  string         `json:"checkout_id"`
	SessionID   string         `json:"session_id"`
	Locale      string         `json:"locale"`
	Currency    string         `json:"currency"`
	Items       []CheckoutItem `json:"items"`
	ItemCount   int            `json:"item_count"`
	TotalAmount string         `json:"total_amount"`
	CompletedAt time.Time      `json:"completed_at"`
}

type Publisher interface {
	PublishCheckout(ctx context.Context, event CheckoutCompleted) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) PublishCheckout(context.Context, CheckoutCompleted) error { return nil }
func (Nop) Close() error                                             { return nil }
