package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vikas-0-3/farmer/internal/platform/logger"
	"github.com/vikas-0-3/farmer/internal/service"
)

type CartHandler struct {
	carts service.CartService
	log   logger.Logger
}

func NewCartHandler(carts service.CartService, log logger.Logger) *CartHandler {
	return &CartHandler{carts: carts, log: log}
}

type cartItemPayload struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// cartPayload also accepts a client-supplied totalAmount but never
// trusts it: totals are always recomputed from the line items.
type cartPayload struct {
	User        string            `json:"user"`
	Products    []cartItemPayload `json:"products"`
	TotalAmount float64           `json:"totalAmount"`
}

func toItemInputs(w http.ResponseWriter, payload []cartItemPayload) ([]service.CartItemInput, bool) {
	items := make([]service.CartItemInput, 0, len(payload))
	for _, p := range payload {
		productID, err := primitive.ObjectIDFromHex(p.Product)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "Invalid product ID")
			return nil, false
		}
		items = append(items, service.CartItemInput{ProductID: productID, Quantity: p.Quantity})
	}
	return items, true
}

// AddOrMerge handles POST /api/cart. Creates the user's cart on first
// add, merges into it afterwards.
func (h *CartHandler) AddOrMerge(w http.ResponseWriter, r *http.Request) {
	var body cartPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, err := primitive.ObjectIDFromHex(body.User)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	items, ok := toItemInputs(w, body.Products)
	if !ok {
		return
	}

	cart, created, err := h.carts.AddOrMerge(r.Context(), userID, items)
	if err != nil {
		respondError(w, err)
		return
	}

	if created {
		respondJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Cart saved",
			"cart":    cart,
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Cart updated",
		"cart":    cart,
	})
}

// GetForUser handles GET /api/cart/{userId}. A user with no cart gets
// an empty array, not an error.
func (h *CartHandler) GetForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseObjectID(w, chi.URLParam(r, "userId"))
	if !ok {
		return
	}

	carts, err := h.carts.GetForUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, carts)
}

// Replace handles PUT /api/cart/{id}, swapping the entire item list.
func (h *CartHandler) Replace(w http.ResponseWriter, r *http.Request) {
	cartID, ok := parseObjectID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var body cartPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items, ok := toItemInputs(w, body.Products)
	if !ok {
		return
	}

	cart, err := h.carts.Replace(r.Context(), cartID, items)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Cart updated",
		"cart":    cart,
	})
}

// UpdateItem handles PUT /api/cart/{cartId}/products/{itemId}.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := parseObjectID(w, chi.URLParam(r, "cartId"))
	if !ok {
		return
	}
	itemID, ok := parseObjectID(w, chi.URLParam(r, "itemId"))
	if !ok {
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart, err := h.carts.UpdateItemQuantity(r.Context(), cartID, itemID, body.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Cart product updated",
		"cart":    cart,
	})
}

// RemoveItem handles DELETE /api/cart/{cartId}/products/{itemId}.
// Removing an absent item succeeds.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := parseObjectID(w, chi.URLParam(r, "cartId"))
	if !ok {
		return
	}
	itemID, ok := parseObjectID(w, chi.URLParam(r, "itemId"))
	if !ok {
		return
	}

	cart, err := h.carts.RemoveItem(r.Context(), cartID, itemID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product removed from cart",
		"cart":    cart,
	})
}

// Delete handles DELETE /api/cart/{id}.
func (h *CartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cartID, ok := parseObjectID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.carts.Delete(r.Context(), cartID); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Cart deleted successfully")
}
