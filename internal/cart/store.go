package cart

import (
	"context"
	"encoding/json"
	"errors"

	"proffee/internal/catalog"
	"proffee/internal/domain"
	"proffee/internal/storage"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Store owns the ordered line-item list for a single cart key and mirrors
// every mutation to durable storage.
//
// All lookups against unknown ids are silent no-ops: that is the documented
// contract, not an omission. Storage failures are logged and swallowed; the
// in-memory cart stays authoritative for the session even when it may not
// survive a reload. The store is not safe for concurrent use; callers
// serialize access per cart key.
type Store struct {
	key     string
	items   []domain.CartLineItem
	catalog *catalog.Catalog
	storage storage.CartStorage
	logger  *zap.Logger
}

// NewStore creates an empty Store bound to a storage key. Call Load to
// restore a previously persisted cart.
func NewStore(key string, cat *catalog.Catalog, st storage.CartStorage, logger *zap.Logger) *Store {
	return &Store{
		key:     key,
		catalog: cat,
		storage: st,
		logger:  logger,
	}
}

// Load restores the cart from storage. An absent key or a malformed payload
// yields an empty cart; corrupt persisted state must never fail startup, so
// both cases are logged and not reported to the caller.
func (s *Store) Load(ctx context.Context) {
	s.items = nil

	data, err := s.storage.Load(ctx, s.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Error("Failed to load cart from storage",
				zap.String("cart_key", s.key),
				zap.Error(err),
			)
		}
		return
	}

	var items []domain.CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Error("Discarding corrupt persisted cart",
			zap.String("cart_key", s.key),
			zap.Error(err),
		)
		return
	}
	s.items = items
}

// Synchronize reconciles every line against the current catalog: it first
// migrates records written by the pre-weight schema, then refreshes the
// denormalized display fields and recomputes the unit price for lines whose
// product still resolves. Lines whose product has left the catalog are kept
// with their last-known data rather than dropped. Always persists, and is
// idempotent for an unchanged catalog.
//
// This pass is what keeps a cart created in a previous session consistent
// with catalog and price changes deployed since.
func (s *Store) Synchronize(ctx context.Context) {
	for i := range s.items {
		migrateLine(&s.items[i])

		item := &s.items[i]
		product, ok := s.catalog.FindProduct(item.ProductID)
		if !ok {
			// Catalog drift: keep the orphan as-is.
			continue
		}

		item.Name = product.Name
		item.NameLocalized = product.NameLocalized
		item.Type = product.Type
		item.Description = product.Description
		item.ImagePath = product.ImagePath

		if price, ok := s.catalog.PriceOf(product.Type, item.Weight); ok {
			item.UnitPrice = price
		} else {
			// No current price for this combination; the stale price is
			// still better than silently charging zero.
			s.logger.Warn("No current price for cart line",
				zap.String("cart_key", s.key),
				zap.String("line_item_id", item.LineItemID),
			)
		}
	}
	s.persist(ctx)
}

// migrateLine backfills fields absent from records persisted by the older
// schema: a missing weight becomes the quarter-kilo default and the
// line-item id is (re)derived from it.
func migrateLine(item *domain.CartLineItem) {
	if !item.Weight.Valid() {
		item.Weight = domain.DefaultWeight
	}
	if item.LineItemID == "" {
		item.LineItemID = domain.LineItemID(item.ProductID, item.Weight)
	}
}

// AddItem adds one unit of a (product, weight) combination. An unknown
// product or an unpriced combination is a silent no-op. Re-adding an
// existing combination increments its quantity instead of appending a
// duplicate line.
func (s *Store) AddItem(ctx context.Context, productID int, weight domain.WeightVariant) {
	product, ok := s.catalog.FindProduct(productID)
	if !ok {
		return
	}
	price, ok := s.catalog.PriceOf(product.Type, weight)
	if !ok {
		return
	}

	lineItemID := domain.LineItemID(productID, weight)
	if existing := s.find(lineItemID); existing != nil {
		existing.Quantity++
	} else {
		s.items = append(s.items, domain.CartLineItem{
			ProductID:     product.ID,
			Name:          product.Name,
			NameLocalized: product.NameLocalized,
			Type:          product.Type,
			Description:   product.Description,
			ImagePath:     product.ImagePath,
			LineItemID:    lineItemID,
			Weight:        weight,
			UnitPrice:     price,
			Quantity:      1,
		})
	}
	s.persist(ctx)
}

// ChangeQuantity applies a signed delta to a line's quantity. A resulting
// quantity of zero or less removes the line. Unknown ids are a silent no-op.
func (s *Store) ChangeQuantity(ctx context.Context, lineItemID string, delta int) {
	item := s.find(lineItemID)
	if item == nil {
		return
	}

	item.Quantity += delta
	if item.Quantity <= 0 {
		s.RemoveItem(ctx, lineItemID)
		return
	}
	s.persist(ctx)
}

// RemoveItem deletes a line if present. Removing an id that is not in the
// cart is a harmless no-op, so the operation is idempotent.
func (s *Store) RemoveItem(ctx context.Context, lineItemID string) {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.LineItemID != lineItemID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.persist(ctx)
}

// TotalItemCount sums quantities across all lines, for the badge indicator.
func (s *Store) TotalItemCount() int {
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// TotalPrice sums UnitPrice × Quantity across all lines at full precision.
// Two-decimal rounding happens at display time only. The flat shipping
// surcharge is not part of this total; it is disclosed separately and added
// at the external checkout step.
func (s *Store) TotalPrice() decimal.Decimal {
	total := decimal.Decimal{}
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []domain.CartLineItem {
	out := make([]domain.CartLineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) find(lineItemID string) *domain.CartLineItem {
	for i := range s.items {
		if s.items[i].LineItemID == lineItemID {
			return &s.items[i]
		}
	}
	return nil
}

// persist mirrors the in-memory cart to storage. Failures are logged and do
// not roll back the mutation: availability wins over persistence in this
// low-stakes client cache.
func (s *Store) persist(ctx context.Context) {
	items := s.items
	if items == nil {
		items = []domain.CartLineItem{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Error("Failed to serialize cart",
			zap.String("cart_key", s.key),
			zap.Error(err),
		)
		return
	}

	if err := s.storage.Save(ctx, s.key, data); err != nil {
		s.logger.Error("Failed to persist cart",
			zap.String("cart_key", s.key),
			zap.Error(err),
		)
	}
}
