package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vikas-0-3/farmer/internal/adapter/storage"
	"github.com/vikas-0-3/farmer/internal/platform/logger"
	"github.com/vikas-0-3/farmer/internal/service"
)

type ProductHandler struct {
	products service.ProductService
	store    storage.Store
	log      logger.Logger
}

func NewProductHandler(products service.ProductService, store storage.Store, log logger.Logger) *ProductHandler {
	return &ProductHandler{products: products, store: store, log: log}
}

// Create handles POST /api/products with an optional productImage part.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid form data")
		return
	}

	farmerID, ok := parseObjectID(w, r.FormValue("farmerId"))
	if !ok {
		return
	}

	mrp, err := strconv.ParseFloat(r.FormValue("mrp"), 64)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "mrp must be a number")
		return
	}
	sellingPrice, err := strconv.ParseFloat(r.FormValue("sellingPrice"), 64)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "sellingPrice must be a number")
		return
	}

	image, _, err := saveUpload(r, "productImage", "product", h.store)
	if err != nil {
		respondError(w, err)
		return
	}

	product, err := h.products.Create(r.Context(), service.CreateProductInput{
		FarmerID:        farmerID,
		ProductName:     r.FormValue("productName"),
		ProductQuantity: r.FormValue("productQuantity"),
		MRP:             mrp,
		SellingPrice:    sellingPrice,
		Category:        r.FormValue("category"),
		Status:          r.FormValue("status"),
		ProductImage:    image,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Product created successfully",
		"product": product,
	})
}

// List handles GET /api/products and GET /api/products/allproducts.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// ListByFarmer handles GET /api/products/farmer/{farmerId}.
func (h *ProductHandler) ListByFarmer(w http.ResponseWriter, r *http.Request) {
	farmerID, ok := parseObjectID(w, chi.URLParam(r, "farmerId"))
	if !ok {
		return
	}

	products, err := h.products.ListByFarmer(r.Context(), farmerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// Update handles PUT /api/products/{id}. The farmer reference only
// moves when a non-empty farmerId is sent.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if err := parseForm(r); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid form data")
		return
	}

	var input service.UpdateProductInput
	if r.Form.Has("productName") {
		v := r.FormValue("productName")
		input.ProductName = &v
	}
	if r.Form.Has("productQuantity") {
		v := r.FormValue("productQuantity")
		input.ProductQuantity = &v
	}
	if r.Form.Has("mrp") {
		mrp, err := strconv.ParseFloat(r.FormValue("mrp"), 64)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "mrp must be a number")
			return
		}
		input.MRP = &mrp
	}
	if r.Form.Has("sellingPrice") {
		price, err := strconv.ParseFloat(r.FormValue("sellingPrice"), 64)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "sellingPrice must be a number")
			return
		}
		input.SellingPrice = &price
	}
	if r.Form.Has("category") {
		v := r.FormValue("category")
		input.Category = &v
	}
	if r.Form.Has("status") {
		v := r.FormValue("status")
		input.Status = &v
	}
	if raw := r.FormValue("farmerId"); raw != "" {
		farmerID, ok := parseObjectID(w, raw)
		if !ok {
			return
		}
		input.FarmerID = &farmerID
	}

	image, uploaded, err := saveUpload(r, "productImage", "product", h.store)
	if err != nil {
		respondError(w, err)
		return
	}
	if uploaded {
		input.ProductImage = &image
	}

	product, err := h.products.Update(r.Context(), id, input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product updated successfully",
		"product": product,
	})
}

// Delete handles DELETE /api/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Product deleted successfully")
}
