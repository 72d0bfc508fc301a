package catalog

import (
	"context"
	"fmt"
	"os"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/locale"
	"gopkg.in/yaml.v3"
)

type fileProduct struct {
	ID                 int64    `yaml:"id"`
	Name               string   `yaml:"name"`
	Price              string   `yaml:"price"`
	Currency           string   `yaml:"currency"`
	Image              string   `yaml:"image"`
	Description        string   `yaml:"description"`
	Category           string   `yaml:"category"`
	Rating             float64  `yaml:"rating"`
	ReviewsCount       int      `yaml:"reviews_count"`
	InStock            bool     `yaml:"in_stock"`
	DiscountPercentage int      `yaml:"discount_percentage"`
	OriginalPrice      string   `yaml:"original_price"`
	Tags               []string `yaml:"tags"`
}

type fileCatalog struct {
	Locales map[string][]fileProduct `yaml:"locales"`
}

// FileSource reads catalogs from a YAML document keyed by locale code.
// Prices may be written as display strings ("¥2,199.50") or plain numbers.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Products(_ context.Context, loc locale.Locale) ([]domain.Product, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return decodeCatalog(raw, loc)
}

func decodeCatalog(raw []byte, loc locale.Locale) ([]domain.Product, error) {
	var fc fileCatalog
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	items, ok := fc.Locales[loc.Code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocaleNotFound, loc.Code)
	}

	products := make([]domain.Product, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, it := range items {
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", it.ID)
		}
		seen[it.ID] = struct{}{}

		p, err := it.toDomain(loc)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", it.ID, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func (fp fileProduct) toDomain(loc locale.Locale) (domain.Product, error) {
	p, err := locale.ParsePrice(fp.Price)
	if err != nil {
		return domain.Product{}, err
	}
	original := p
	if fp.OriginalPrice != "" {
		if original, err = locale.ParsePrice(fp.OriginalPrice); err != nil {
			return domain.Product{}, err
		}
	}
	if fp.DiscountPercentage < 0 || fp.DiscountPercentage > 100 {
		return domain.Product{}, fmt.Errorf("discount_percentage %d out of range", fp.DiscountPercentage)
	}
	if fp.Rating < 0 || fp.Rating > 5 {
		return domain.Product{}, fmt.Errorf("rating %.1f out of range", fp.Rating)
	}
	currency := fp.Currency
	if currency == "" {
		currency = loc.Currency
	}
	return domain.Product{
		ID:                 fp.ID,
		Name:               fp.Name,
		Price:              p,
		Currency:           currency,
		Image:              fp.Image,
		Description:        fp.Description,
		Category:           fp.Category,
		Rating:             fp.Rating,
		ReviewsCount:       fp.ReviewsCount,
		InStock:            fp.InStock,
		DiscountPercentage: fp.DiscountPercentage,
		OriginalPrice:      original,
		Tags:               fp.Tags,
	}, nil
}
