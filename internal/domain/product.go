package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	Price              decimal.Decimal `json:"price"`
	Currency           string          `json:"currency"`
	Image              string          `json:"image"`
	Description        string          `json:"description"`
	Category           string          `json:"category"`
	Rating             float64         `json:"rating"`
	ReviewsCount       int             `json:"reviews_count"`
	InStock            bool            `json:"in_stock"`
	DiscountPercentage int             `json:"discount_percentage"`
	OriginalPrice      decimal.Decimal `json:"original_price"`
	Tags               []string        `json:"tags"`
}

// Clone returns a copy that shares no memory with p.
func (p Product) Clone() Product {
	c := p
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	return c
}

// HasDiscount reports whether the product is sold below its original price.
func (p Product) HasDiscount() bool {
	return p.DiscountPercentage > 0 && p.OriginalPrice.GreaterThan(p.Price)
}
