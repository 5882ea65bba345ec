package transport

import (
	"net/http"
	"strconv"

	"proffee/internal/catalog"
	"proffee/internal/domain"
	custommiddleware "proffee/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Currency is the fixed display currency of the catalog.
const Currency = "EGP"

// featuredProductIDs mirrors the storefront's featured row, in display order.
var featuredProductIDs = []int{1, 4, 7, 8}

// WeightOption is one selectable package size with its price
type WeightOption struct {
	Weight float64 `json:"weight"`
	Label  string  `json:"label"`
	Price  string  `json:"price"`
}

// ProductCard is the view model for one product grid cell
type ProductCard struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	NameLocalized string         `json:"nameLocalized"`
	Type          string         `json:"type"`
	Description   string         `json:"description"`
	ImagePath     string         `json:"imagePath"`
	Price         string         `json:"price"` // at the default (quarter-kilo) weight
	Currency      string         `json:"currency"`
	Weights       []WeightOption `json:"weights"`
}

// PriceResponse answers a live weight-change price lookup
type PriceResponse struct {
	ProductID int     `json:"productId"`
	Weight    float64 `json:"weight"`
	Label     string  `json:"label"`
	Price     string  `json:"price"`
	Currency  string  `json:"currency"`
}

// CatalogHandler serves the read-only product grid and price lookups. It
// never touches cart state.
type CatalogHandler struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(cat *catalog.Catalog, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: cat,
		logger:  logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/catalog", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/featured", h.ListFeatured)
		r.Get("/{productID}/price", h.GetPrice)
	})
}

// ListProducts returns the full product grid
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	custommiddleware.RespondWithJSON(w, http.StatusOK, h.productCards(h.catalog.Products()))
}

// ListFeatured returns the featured subset of the grid
func (h *CatalogHandler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	custommiddleware.RespondWithJSON(w, http.StatusOK, h.productCards(h.catalog.Featured(featuredProductIDs)))
}

// GetPrice returns the price of a (product, weight) combination for live UI
// updates. A combination without a price is reported as not found, never as
// a zero price.
func (h *CatalogHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		custommiddleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	weight, ok := domain.ParseWeight(r.URL.Query().Get("weight"))
	if !ok {
		custommiddleware.RespondWithError(w, http.StatusBadRequest, "invalid weight variant")
		return
	}

	product, ok := h.catalog.FindProduct(productID)
	if !ok {
		custommiddleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	price, ok := h.catalog.PriceOf(product.Type, weight)
	if !ok {
		custommiddleware.RespondWithError(w, http.StatusNotFound, "no price for this combination")
		return
	}

	custommiddleware.RespondWithJSON(w, http.StatusOK, PriceResponse{
		ProductID: productID,
		Weight:    float64(weight),
		Label:     weight.Label(),
		Price:     price.StringFixed(2),
		Currency:  Currency,
	})
}

func (h *CatalogHandler) productCards(products []domain.Product) []ProductCard {
	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		card := ProductCard{
			ID:            p.ID,
			Name:          p.Name,
			NameLocalized: p.NameLocalized,
			Type:          string(p.Type),
			Description:   p.Description,
			ImagePath:     p.ImagePath,
			Currency:      Currency,
		}

		for _, weight := range domain.Weights() {
			price, ok := h.catalog.PriceOf(p.Type, weight)
			if !ok {
				// Construction validates completeness, so a miss here means
				// the catalog drifted underneath us; skip the option.
				h.logger.Warn("Missing price for catalog product",
					zap.Int("product_id", p.ID),
					zap.String("weight", weight.String()),
				)
				continue
			}
			card.Weights = append(card.Weights, WeightOption{
				Weight: float64(weight),
				Label:  weight.Label(),
				Price:  price.StringFixed(2),
			})
			if weight == domain.DefaultWeight {
				card.Price = price.StringFixed(2)
			}
		}

		cards = append(cards, card)
	}
	return cards
}
