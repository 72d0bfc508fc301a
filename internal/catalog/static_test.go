package catalog

import (
	"context"
	"testing"

	"github.com/fjod/go_shop/internal/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSource_EnglishCatalog(t *testing.T) {
	products, err := NewStaticSource().Products(context.Background(), locale.English)
	require.NoError(t, err)
	require.Len(t, products, 6)

	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Premium Wireless Headphones", products[0].Name)
	assert.Equal(t, "299.99", products[0].Price.StringFixed(2))
	assert.Equal(t, "USD", products[0].Currency)
	assert.False(t, products[4].InStock)
}

func TestStaticSource_ChineseCatalog(t *testing.T) {
	products, err := NewStaticSource().Products(context.Background(), locale.Chinese)
	require.NoError(t, err)
	require.Len(t, products, 6)

	for _, p := range products {
		assert.Equal(t, "CNY", p.Currency)
	}
}

func TestStaticSource_FreshPerCall(t *testing.T) {
	src := NewStaticSource()
	first, err := src.Products(context.Background(), locale.English)
	require.NoError(t, err)
	first[0].Name = "changed"
	first[0].Tags[0] = "changed"

	second, err := src.Products(context.Background(), locale.English)
	require.NoError(t, err)
	assert.Equal(t, "Premium Wireless Headphones", second[0].Name)
	assert.Equal(t, "wireless", second[0].Tags[0])
}

func TestStaticSource_UnknownLocale(t *testing.T) {
	_, err := NewStaticSource().Products(context.Background(), locale.Locale{Code: "fr"})
	assert.ErrorIs(t, err, ErrLocaleNotFound)
}

func TestStaticSource_IDsUnique(t *testing.T) {
	for _, loc := range locale.Supported() {
		products, err := NewStaticSource().Products(context.Background(), loc)
		require.NoError(t, err)

		seen := map[int64]bool{}
		for _, p := range products {
			assert.False(t, seen[p.ID], "duplicate id %d in %s", p.ID, loc.Code)
			seen[p.ID] = true
			assert.True(t, p.DiscountPercentage >= 0 && p.DiscountPercentage <= 100)
			assert.True(t, p.Rating >= 0 && p.Rating <= 5)
		}
	}
}
