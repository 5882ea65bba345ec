package transport

import (
	"net/http"

	"proffee/internal/cart"
	"proffee/internal/catalog"
	custommiddleware "proffee/internal/middleware"
	"proffee/internal/domain"
	"proffee/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SessionCookieName carries the opaque cart session identifier.
const SessionCookieName = "proffee_session"

// AddItemRequest represents the add-to-cart request payload
type AddItemRequest struct {
	ProductID int     `json:"productId" validate:"required,gt=0"`
	Weight    float64 `json:"weight" validate:"required,gt=0"`
}

// QuantityDeltaRequest represents the quantity change request payload
type QuantityDeltaRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// CartLineView is the view model for one cart row
type CartLineView struct {
	LineItemID    string  `json:"cartItemId"`
	ProductID     int     `json:"productId"`
	Name          string  `json:"name"`
	NameLocalized string  `json:"nameLocalized"`
	ImagePath     string  `json:"imagePath"`
	Weight        float64 `json:"weight"`
	WeightLabel   string  `json:"weightLabel"`
	UnitPrice     string  `json:"unitPrice"`
	Quantity      int     `json:"quantity"`
	Subtotal      string  `json:"subtotal"`
}

// CartView is the full cart response. ShippingFee is disclosed here but is
// not part of Total; the external checkout step adds it.
type CartView struct {
	Items       []CartLineView `json:"items"`
	ItemCount   int            `json:"itemCount"`
	Total       string         `json:"total"`
	Currency    string         `json:"currency"`
	ShippingFee string         `json:"shippingFee"`
}

// CartHandler exposes the cart store to the storefront.
type CartHandler struct {
	catalog     *catalog.Catalog
	storage     storage.CartStorage
	logger      *zap.Logger
	shippingFee decimal.Decimal
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cat *catalog.Catalog, st storage.CartStorage, logger *zap.Logger, shippingFee decimal.Decimal) *CartHandler {
	return &CartHandler{
		catalog:     cat,
		storage:     st,
		logger:      logger,
		shippingFee: shippingFee,
	}
}

// RegisterRoutes registers all cart routes. Mutating routes go through the
// rate limiter.
func (h *CartHandler) RegisterRoutes(r chi.Router, rateLimit func(http.Handler) http.Handler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)

		r.Group(func(r chi.Router) {
			r.Use(rateLimit)
			r.Post("/items", h.AddItem)
			r.Patch("/items/{lineItemID}", h.ChangeQuantity)
			r.Delete("/items/{lineItemID}", h.RemoveItem)
		})
	})
}

// GetCart renders the session cart after synchronizing it against the
// current catalog.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	store := h.sessionStore(w, r)
	custommiddleware.RespondWithJSON(w, http.StatusOK, h.cartView(store))
}

// AddItem adds one unit of a (product, weight) combination. Unknown products
// and unpriced combinations leave the cart untouched; the response is the
// current cart either way, so the client can refresh its badge.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := custommiddleware.DecodeAndValidate(r, &req); err != nil {
		custommiddleware.RespondWithValidationErrors(w, custommiddleware.FormatValidationErrors(err))
		return
	}

	weight := domain.WeightVariant(req.Weight)
	if !weight.Valid() {
		custommiddleware.RespondWithError(w, http.StatusBadRequest, "invalid weight variant")
		return
	}

	store := h.sessionStore(w, r)
	store.AddItem(r.Context(), req.ProductID, weight)
	custommiddleware.RespondWithJSON(w, http.StatusOK, h.cartView(store))
}

// ChangeQuantity applies a signed delta to a cart line; at zero or below the
// line is removed. An unknown line id is a no-op.
func (h *CartHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	var req QuantityDeltaRequest
	if err := custommiddleware.DecodeAndValidate(r, &req); err != nil {
		custommiddleware.RespondWithValidationErrors(w, custommiddleware.FormatValidationErrors(err))
		return
	}

	store := h.sessionStore(w, r)
	store.ChangeQuantity(r.Context(), chi.URLParam(r, "lineItemID"), req.Delta)
	custommiddleware.RespondWithJSON(w, http.StatusOK, h.cartView(store))
}

// RemoveItem deletes a cart line. Removing a line twice is harmless.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	store := h.sessionStore(w, r)
	store.RemoveItem(r.Context(), chi.URLParam(r, "lineItemID"))
	custommiddleware.RespondWithJSON(w, http.StatusOK, h.cartView(store))
}

// sessionStore loads and synchronizes the cart bound to the request's
// session, issuing a session cookie on first touch.
func (h *CartHandler) sessionStore(w http.ResponseWriter, r *http.Request) *cart.Store {
	store := cart.NewStore(h.sessionID(w, r), h.catalog, h.storage, h.logger)
	store.Load(r.Context())
	store.Synchronize(r.Context())
	return store
}

func (h *CartHandler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (h *CartHandler) cartView(store *cart.Store) CartView {
	items := store.Items()
	lines := make([]CartLineView, 0, len(items))
	for _, item := range items {
		lines = append(lines, CartLineView{
			LineItemID:    item.LineItemID,
			ProductID:     item.ProductID,
			Name:          item.Name,
			NameLocalized: item.NameLocalized,
			ImagePath:     item.ImagePath,
			Weight:        float64(item.Weight),
			WeightLabel:   item.Weight.Label(),
			UnitPrice:     item.UnitPrice.StringFixed(2),
			Quantity:      item.Quantity,
			Subtotal:      item.Subtotal().StringFixed(2),
		})
	}

	return CartView{
		Items:       lines,
		ItemCount:   store.TotalItemCount(),
		Total:       store.TotalPrice().StringFixed(2),
		Currency:    Currency,
		ShippingFee: h.shippingFee.StringFixed(2),
	}
}
