package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceTable maps product type and weight variant to a unit price in EGP.
// Every type carried by the catalog must have an entry for all three weights.
type PriceTable map[ProductType]map[WeightVariant]decimal.Decimal

// CartLineItem is a cart entry owned by the cart store. Its identity is the
// (product, weight) pair encoded in LineItemID; quantity attaches to that
// pair, not to the product alone.
//
// Name, NameLocalized, Type, Description, ImagePath and UnitPrice are
// denormalized copies of catalog data. They are untrusted when read back
// from storage and are rebuilt by the synchronization pass.
//
// The JSON tags define the persisted layout. Readers must tolerate records
// written by the pre-weight schema, where Weight and LineItemID are absent.
type CartLineItem struct {
	ProductID     int             `json:"id"`
	Name          string          `json:"name"`
	NameLocalized string          `json:"nameLocalized"`
	Type          ProductType     `json:"type"`
	Description   string          `json:"description"`
	ImagePath     string          `json:"imagePath"`
	LineItemID    string          `json:"cartItemId"`
	Weight        WeightVariant   `json:"weight"`
	UnitPrice     decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
}

// Subtotal returns UnitPrice × Quantity at full precision.
func (li CartLineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// LineItemID derives the identifier of the (product, weight) pair,
// e.g. "4_0.5".
func LineItemID(productID int, weight WeightVariant) string {
	return fmt.Sprintf("%d_%s", productID, weight)
}
