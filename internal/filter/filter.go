// Package filter derives the displayed product list from a catalog and the
// shopper's current selection.
package filter

import (
	"sort"
	"strings"

	"github.com/fjod/go_shop/internal/domain"
)

type SortKey string

const (
	SortByName      SortKey = "name"
	SortByPriceLow  SortKey = "price-low"
	SortByPriceHigh SortKey = "price-high"
	SortByRating    SortKey = "rating"
)

// ParseSortKey maps user input to a known key; anything else sorts by name.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.TrimSpace(strings.ToLower(s))); k {
	case SortByName, SortByPriceLow, SortByPriceHigh, SortByRating:
		return k
	default:
		return SortByName
	}
}

type Selection struct {
	Category string  `json:"category"`
	Search   string  `json:"search"`
	Sort     SortKey `json:"sort"`
}

// Products returns the products matching sel in display order. The catalog
// is never modified; the result is a new slice.
func Products(catalog []domain.Product, sel Selection, allCategory string) []domain.Product {
	out := make([]domain.Product, 0, len(catalog))
	for _, p := range catalog {
		if sel.Category != "" && sel.Category != allCategory && p.Category != sel.Category {
			continue
		}
		out = append(out, p)
	}

	if sel.Search != "" {
		query := strings.ToLower(sel.Search)
		matched := out[:0]
		for _, p := range out {
			if matches(p, query) {
				matched = append(matched, p)
			}
		}
		out = matched
	}

	sortProducts(out, ParseSortKey(string(sel.Sort)))
	return out
}

func matches(p domain.Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func sortProducts(products []domain.Product, key SortKey) {
	var less func(a, b domain.Product) bool
	switch key {
	case SortByPriceLow:
		less = func(a, b domain.Product) bool { return a.Price.LessThan(b.Price) }
	case SortByPriceHigh:
		less = func(a, b domain.Product) bool { return a.Price.GreaterThan(b.Price) }
	case SortByRating:
		less = func(a, b domain.Product) bool { return a.Rating > b.Rating }
	default:
		less = func(a, b domain.Product) bool { return a.Name < b.Name }
	}
	sort.SliceStable(products, func(i, j int) bool {
		return less(products[i], products[j])
	})
}

// Categories lists the category picker entries: the "all" sentinel first,
// then each distinct category in catalog order.
func Categories(catalog []domain.Product, allCategory string) []string {
	out := []string{allCategory}
	seen := map[string]struct{}{allCategory: {}}
	for _, p := range catalog {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
