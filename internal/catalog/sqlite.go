package catalog

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/locale"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLSource reads catalogs from a SQLite database.
type SQLSource struct {
	db *sql.DB
}

func NewSQLSource(dbPath string) (*SQLSource, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// ":memory:" databases live per connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLSource{db: db}, nil
}

func (s *SQLSource) RunMigrations() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (s *SQLSource) Products(ctx context.Context, loc locale.Locale) ([]domain.Product, error) {
	query := `
		SELECT id, name, price, currency, image, description, category,
		       rating, reviews_count, in_stock, discount_percentage, original_price
		FROM products
		WHERE locale = ?
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, loc.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	index := make(map[int64]int)
	for rows.Next() {
		var (
			p            domain.Product
			priceText    string
			originalText string
			inStock      int
		)
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&priceText,
			&p.Currency,
			&p.Image,
			&p.Description,
			&p.Category,
			&p.Rating,
			&p.ReviewsCount,
			&inStock,
			&p.DiscountPercentage,
			&originalText,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if p.Price, err = decimal.NewFromString(priceText); err != nil {
			return nil, fmt.Errorf("product %d price: %w", p.ID, err)
		}
		if p.OriginalPrice, err = decimal.NewFromString(originalText); err != nil {
			return nil, fmt.Errorf("product %d original price: %w", p.ID, err)
		}
		p.InStock = inStock != 0
		index[p.ID] = len(products)
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	rows.Close()

	if len(products) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrLocaleNotFound, loc.Code)
	}

	if err := s.loadTags(ctx, loc, products, index); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *SQLSource) loadTags(ctx context.Context, loc locale.Locale, products []domain.Product, index map[int64]int) error {
	query := `
		SELECT product_id, tag
		FROM product_tags
		WHERE locale = ?
		ORDER BY product_id, position
	`

	rows, err := s.db.QueryContext(ctx, query, loc.Code)
	if err != nil {
		return fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			productID int64
			tag       string
		)
		if err := rows.Scan(&productID, &tag); err != nil {
			return fmt.Errorf("failed to scan tag: %w", err)
		}
		if i, ok := index[productID]; ok {
			products[i].Tags = append(products[i].Tags, tag)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("row iteration error: %w", err)
	}
	return nil
}

func (s *SQLSource) Close() error {
	return s.db.Close()
}
