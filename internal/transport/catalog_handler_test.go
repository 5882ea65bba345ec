package transport

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProductsRendersGrid(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/catalog", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cards []ProductCard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	require.Len(t, cards, 3)

	first := cards[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "Plain Light Roast", first.Name)
	assert.Equal(t, "230.00", first.Price, "grid shows the quarter-kilo price by default")
	assert.Equal(t, "EGP", first.Currency)

	require.Len(t, first.Weights, 3)
	assert.Equal(t, "250g", first.Weights[0].Label)
	assert.Equal(t, "500g", first.Weights[1].Label)
	assert.Equal(t, "1kg", first.Weights[2].Label)
	assert.Equal(t, "820.00", first.Weights[2].Price)
}

func TestListFeaturedPreservesConfiguredOrder(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/catalog/featured", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cards []ProductCard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))

	// The fixture carries products 1, 4 and 7 of the featured set.
	require.Len(t, cards, 3)
	assert.Equal(t, 1, cards[0].ID)
	assert.Equal(t, 4, cards[1].ID)
	assert.Equal(t, 7, cards[2].ID)
}

func TestGetPriceForWeightChange(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/catalog/4/price?weight=0.5", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PriceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.ProductID)
	assert.Equal(t, 0.5, resp.Weight)
	assert.Equal(t, "500g", resp.Label)
	assert.Equal(t, "470.00", resp.Price)
	assert.Equal(t, "EGP", resp.Currency)
}

func TestGetPriceUnknownProduct(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/catalog/99/price?weight=0.5", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPriceRejectsInvalidWeight(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/catalog/4/price?weight=0.33", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/catalog/4/price", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
