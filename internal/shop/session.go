package shop

import (
	"time"

	"github.com/fjod/go_shop/internal/cart"
	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/filter"
	"github.com/fjod/go_shop/internal/locale"
)

type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Session is everything one shopper has selected on the shop page.
type Session struct {
	ID               string           `json:"id"`
	Locale           string           `json:"locale"`
	Selection        filter.Selection `json:"selection"`
	ViewMode         ViewMode         `json:"view_mode"`
	SelectedProduct  *domain.Product  `json:"selected_product,omitempty"`
	ShowProductModal bool             `json:"show_product_modal"`
	Cart             cart.Cart        `json:"cart"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func NewSession(id string, loc locale.Locale, now time.Time) *Session {
	return &Session{
		ID:     id,
		Locale: loc.Code,
		Selection: filter.Selection{
			Category: loc.AllCategory,
			Sort:     filter.SortByName,
		},
		ViewMode:  ViewGrid,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) locale() locale.Locale {
	if l, ok := locale.Lookup(s.Locale); ok {
		return l
	}
	return locale.English
}

func (s *Session) toggleViewMode() ViewMode {
	if s.ViewMode == ViewGrid {
		s.ViewMode = ViewList
	} else {
		s.ViewMode = ViewGrid
	}
	return s.ViewMode
}

func (s *Session) showProduct(p domain.Product) {
	s.SelectedProduct = &p
	s.ShowProductModal = true
}

func (s *Session) closeProduct() {
	s.ShowProductModal = false
	s.SelectedProduct = nil
}

// switchLocale moves the session to another catalog. Products and prices
// differ between catalogs, so selection, modal and cart start over.
func (s *Session) switchLocale(loc locale.Locale) {
	s.Locale = loc.Code
	s.Selection = filter.Selection{Category: loc.AllCategory, Sort: s.Selection.Sort}
	s.closeProduct()
	s.Cart = cart.Cart{}
}
