package catalog

import (
	"errors"
	"fmt"

	"proffee/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrNoProducts          = errors.New("catalog has no products")
	ErrIncompletePriceList = errors.New("price table is missing a weight variant")
)

// Catalog is the read-only product and pricing data the cart operates
// against. It is built once at startup and never mutated.
type Catalog struct {
	products []domain.Product
	byID     map[int]domain.Product
	prices   domain.PriceTable
}

// New builds a Catalog and validates the pricing invariant: every product
// type present in products must have a price for all three weight variants.
func New(products []domain.Product, prices domain.PriceTable) (*Catalog, error) {
	if len(products) == 0 {
		return nil, ErrNoProducts
	}

	byID := make(map[int]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p

		forType, ok := prices[p.Type]
		if !ok {
			return nil, fmt.Errorf("product %d (%s): no prices for type %q", p.ID, p.Name, p.Type)
		}
		for _, w := range domain.Weights() {
			price, ok := forType[w]
			if !ok || !price.IsPositive() {
				return nil, fmt.Errorf("type %q weight %s: %w", p.Type, w, ErrIncompletePriceList)
			}
		}
	}

	return &Catalog{
		products: products,
		byID:     byID,
		prices:   prices,
	}, nil
}

// FindProduct resolves a product by id. The second return value reports
// whether the product exists; callers must treat a miss as a no-op, never
// as an error.
func (c *Catalog) FindProduct(id int) (domain.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// PriceOf looks up the unit price for a (type, weight) combination. A miss
// means the combination cannot be displayed or added; callers must not
// default the price to zero.
func (c *Catalog) PriceOf(t domain.ProductType, w domain.WeightVariant) (decimal.Decimal, bool) {
	forType, ok := c.prices[t]
	if !ok {
		return decimal.Decimal{}, false
	}
	price, ok := forType[w]
	return price, ok
}

// Products returns the full catalog in display order.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Featured returns the products matching ids, preserving the order of ids.
// Unknown ids are skipped.
func (c *Catalog) Featured(ids []int) []domain.Product {
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := c.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
