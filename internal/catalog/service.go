package catalog

import (
	"context"
	"fmt"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/locale"
	"golang.org/x/sync/singleflight"
)

// Service loads a fresh catalog per page load. Concurrent loads for the same
// locale share one read of the source.
type Service struct {
	source Source
	sfg    singleflight.Group
}

func NewService(source Source) *Service {
	return &Service{source: source}
}

func (s *Service) Products(ctx context.Context, loc locale.Locale) ([]domain.Product, error) {
	v, err, _ := s.sfg.Do(loc.Code, func() (interface{}, error) {
		// the load is shared, so one caller giving up must not fail the others
		return s.source.Products(context.WithoutCancel(ctx), loc)
	})
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", loc.Code, err)
	}

	// callers that shared the load must not share the slice
	shared := v.([]domain.Product)
	products := make([]domain.Product, len(shared))
	for i, p := range shared {
		products[i] = p.Clone()
	}
	return products, nil
}

func (s *Service) Product(ctx context.Context, loc locale.Locale, id int64) (domain.Product, error) {
	products, err := s.Products(ctx, loc)
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("%w: %d", ErrProductNotFound, id)
}
