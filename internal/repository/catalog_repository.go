package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"proffee/internal/catalog"
	"proffee/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCatalog = errors.New("no products in catalog")
)

// CatalogRepository defines the interface for loading the read-only catalog
type CatalogRepository interface {
	LoadCatalog(ctx context.Context) (*catalog.Catalog, error)
}

type catalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new instance of CatalogRepository
func NewCatalogRepository(db *sql.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// LoadCatalog reads products and the per-type price table into memory. The
// catalog is fixed input data; it is loaded once at startup and never
// written back.
func (r *catalogRepository) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	products, err := r.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrEmptyCatalog
	}

	prices, err := r.loadPrices(ctx)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.New(products, prices)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog data: %w", err)
	}
	return cat, nil
}

func (r *catalogRepository) loadProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, name_localized, type, description, image_path
		FROM products
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.NameLocalized,
			&p.Type,
			&p.Description,
			&p.ImagePath,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

func (r *catalogRepository) loadPrices(ctx context.Context) (domain.PriceTable, error) {
	query := `
		SELECT product_type, weight, price
		FROM product_prices
		ORDER BY product_type, weight
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load prices: %w", err)
	}
	defer rows.Close()

	prices := domain.PriceTable{}
	for rows.Next() {
		var (
			productType domain.ProductType
			weight      float64
			price       decimal.Decimal
		)
		if err := rows.Scan(&productType, &weight, &price); err != nil {
			return nil, fmt.Errorf("failed to scan price: %w", err)
		}

		if prices[productType] == nil {
			prices[productType] = map[domain.WeightVariant]decimal.Decimal{}
		}
		prices[productType][domain.WeightVariant(weight)] = price
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prices: %w", err)
	}

	return prices, nil
}
