package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vikas-0-3/farmer/internal/platform/logger"
	"github.com/vikas-0-3/farmer/internal/service"
)

type OrderHandler struct {
	orders service.OrderService
	log    logger.Logger
}

func NewOrderHandler(orders service.OrderService, log logger.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

type orderItemPayload struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type orderPayload struct {
	User        string             `json:"user"`
	Products    []orderItemPayload `json:"products"`
	TotalAmount float64            `json:"totalAmount"`
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body orderPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, err := primitive.ObjectIDFromHex(body.User)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	items := make([]service.OrderItemInput, 0, len(body.Products))
	for _, p := range body.Products {
		productID, err := primitive.ObjectIDFromHex(p.Product)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "Invalid product ID")
			return
		}
		items = append(items, service.OrderItemInput{ProductID: productID, Quantity: p.Quantity})
	}

	order, err := h.orders.Create(r.Context(), userID, items, body.TotalAmount)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order created",
		"order":   order,
	})
}

// ListAll handles GET /api/orders.
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// ListForUser handles GET /api/orders/{userId}.
func (h *OrderHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseObjectID(w, chi.URLParam(r, "userId"))
	if !ok {
		return
	}

	orders, err := h.orders.ListForUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles PUT /api/orders/{orderId}.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseObjectID(w, chi.URLParam(r, "orderId"))
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), orderID, body.Status)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Order status updated",
		"order":   order,
	})
}
