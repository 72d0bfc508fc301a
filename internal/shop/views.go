package shop

import (
	"github.com/fjod/go_shop/internal/cart"
	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/filter"
	"github.com/fjod/go_shop/internal/locale"
)

type ProductsView struct {
	Products   []domain.Product `json:"products"`
	Selection  filter.Selection `json:"selection"`
	ViewMode   ViewMode         `json:"view_mode"`
	Categories []string         `json:"categories"`
	Count      int              `json:"count"`
}

type ProductDetail struct {
	Product        domain.Product `json:"product"`
	Stars          []bool         `json:"stars"`
	FormattedPrice string         `json:"formatted_price"`
	FormattedWas   string         `json:"formatted_original_price,omitempty"`
	InCart         int            `json:"in_cart"`
	ShowModal      bool           `json:"show_modal"`
}

type CartLineView struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type CartView struct {
	Lines          []CartLineView `json:"lines"`
	ItemCount      int            `json:"item_count"`
	Total          string         `json:"total"`
	FormattedTotal string         `json:"formatted_total"`
	Currency       string         `json:"currency"`
	Visible        bool           `json:"visible"`
}

// stars marks which of the five rating stars are filled: star i is filled
// when i <= rating.
func stars(rating float64) []bool {
	out := make([]bool, 5)
	for i := 1; i <= 5; i++ {
		out[i-1] = float64(i) <= rating
	}
	return out
}

func newCartView(m *cart.Manager, loc locale.Locale) CartView {
	lines := m.Lines()
	view := CartView{
		Lines:          make([]CartLineView, 0, len(lines)),
		ItemCount:      m.ItemCount(),
		Total:          m.FormattedTotal(),
		FormattedTotal: loc.FormatMoney(m.Total()),
		Currency:       loc.Currency,
		Visible:        m.Visible(),
	}
	for _, l := range lines {
		view.Lines = append(view.Lines, CartLineView{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Image:     l.Product.Image,
			UnitPrice: locale.FormatAmount(l.Product.Price),
			Quantity:  l.Quantity,
			Subtotal:  locale.FormatAmount(l.Subtotal()),
		})
	}
	return view
}

func newProductDetail(p domain.Product, loc locale.Locale, inCart int, show bool) ProductDetail {
	d := ProductDetail{
		Product:        p,
		Stars:          stars(p.Rating),
		FormattedPrice: loc.FormatMoney(p.Price),
		InCart:         inCart,
		ShowModal:      show,
	}
	if p.HasDiscount() {
		d.FormattedWas = loc.FormatMoney(p.OriginalPrice)
	}
	return d
}
