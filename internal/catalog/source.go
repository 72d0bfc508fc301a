package catalog

import (
	"context"
	"errors"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/locale"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrLocaleNotFound  = errors.New("no catalog for locale")
)

// Source supplies the product list for one page load. Implementations must
// return a slice the caller may keep; it is never shared between calls.
type Source interface {
	Products(ctx context.Context, loc locale.Locale) ([]domain.Product, error)
}
