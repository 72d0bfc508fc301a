package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine holds the product as it was when first added, so later catalog
// changes do not reprice the cart.
type CartLine struct {
	Product  Product   `json:"product"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
