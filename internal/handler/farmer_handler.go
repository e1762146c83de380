package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vikas-0-3/farmer/internal/adapter/storage"
	"github.com/vikas-0-3/farmer/internal/platform/logger"
	"github.com/vikas-0-3/farmer/internal/service"
)

type FarmerHandler struct {
	farmers service.FarmerService
	store   storage.Store
	log     logger.Logger
}

func NewFarmerHandler(farmers service.FarmerService, store storage.Store, log logger.Logger) *FarmerHandler {
	return &FarmerHandler{farmers: farmers, store: store, log: log}
}

// Create handles POST /api/farmers. Promotes an existing user to the
// farmer role and records the farm profile.
func (h *FarmerHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid form data")
		return
	}

	userID, ok := parseObjectID(w, r.FormValue("userId"))
	if !ok {
		return
	}

	photo, _, err := saveUpload(r, "farmPhoto", "farmer", h.store)
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := h.farmers.Create(r.Context(), service.CreateFarmerInput{
		UserID:    userID,
		FarmName:  r.FormValue("farmName"),
		Location:  r.FormValue("location"),
		FarmPhoto: photo,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Farmer created successfully",
		"farmerId": id,
	})
}

// List handles GET /api/farmers, each farmer joined with its user.
func (h *FarmerHandler) List(w http.ResponseWriter, r *http.Request) {
	farmers, err := h.farmers.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, farmers)
}

// ListFarms handles GET /api/farmers/farms, farm records only.
func (h *FarmerHandler) ListFarms(w http.ResponseWriter, r *http.Request) {
	farms, err := h.farmers.ListFarms(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, farms)
}

// GetByUserID handles GET /api/farmers/{userId}.
func (h *FarmerHandler) GetByUserID(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseObjectID(w, chi.URLParam(r, "userId"))
	if !ok {
		return
	}

	farmer, err := h.farmers.GetByUserID(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, farmer)
}

// Update handles PUT /api/farmers/{id}.
func (h *FarmerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if err := parseForm(r); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid form data")
		return
	}

	var input service.UpdateFarmerInput
	if r.Form.Has("farmName") {
		v := r.FormValue("farmName")
		input.FarmName = &v
	}
	if r.Form.Has("location") {
		v := r.FormValue("location")
		input.Location = &v
	}

	photo, uploaded, err := saveUpload(r, "farmPhoto", "farmer", h.store)
	if err != nil {
		respondError(w, err)
		return
	}
	if uploaded {
		input.FarmPhoto = &photo
	}

	farmer, err := h.farmers.Update(r.Context(), id, input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Farmer updated successfully",
		"farmer":  farmer,
	})
}

// Delete handles DELETE /api/farmers/{id}.
func (h *FarmerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.farmers.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Farmer deleted successfully")
}
