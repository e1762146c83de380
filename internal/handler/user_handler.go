package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vikas-0-3/farmer/internal/adapter/storage"
	"github.com/vikas-0-3/farmer/internal/domain/entity"
	"github.com/vikas-0-3/farmer/internal/platform/logger"
	"github.com/vikas-0-3/farmer/internal/service"
)

type UserHandler struct {
	users service.UserService
	auth  service.AuthService
	store storage.Store
	log   logger.Logger
}

func NewUserHandler(users service.UserService, auth service.AuthService, store storage.Store, log logger.Logger) *UserHandler {
	return &UserHandler{users: users, auth: auth, store: store, log: log}
}

// Create handles POST /api/users, which is registration under the
// admin surface.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid form data")
		return
	}

	var age int
	if raw := r.FormValue("age"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "age must be a number")
			return
		}
		age = parsed
	}

	photo, _, err := saveUpload(r, "profilePhoto", "user", h.store)
	if err != nil {
		respondError(w, err)
		return
	}

	input := service.RegisterInput{
		Name:         r.FormValue("name"),
		Age:          age,
		Gender:       r.FormValue("gender"),
		Email:        r.FormValue("email"),
		Phone:        r.FormValue("phone"),
		Password:     r.FormValue("password"),
		Address:      r.FormValue("address"),
		Role:         r.FormValue("role"),
		ProfilePhoto: photo,
	}

	id, err := h.auth.Register(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user":    user,
	})
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context(), nil)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// ListPlainUsers handles GET /api/users/allusers, restricted to the
// user role.
func (h *UserHandler) ListPlainUsers(w http.ResponseWriter, r *http.Request) {
	role := entity.RoleUser
	users, err := h.users.List(r.Context(), &role)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// Get handles GET /api/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Update handles PUT /api/users/{id}. Only fields present in the form
// are touched.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if err := parseForm(r); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid form data")
		return
	}

	var input service.UpdateUserInput
	if r.Form.Has("name") {
		v := r.FormValue("name")
		input.Name = &v
	}
	if r.Form.Has("age") {
		age, err := strconv.Atoi(r.FormValue("age"))
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "age must be a number")
			return
		}
		input.Age = &age
	}
	if r.Form.Has("gender") {
		v := r.FormValue("gender")
		input.Gender = &v
	}
	if r.Form.Has("phone") {
		v := r.FormValue("phone")
		input.Phone = &v
	}
	if r.Form.Has("address") {
		v := r.FormValue("address")
		input.Address = &v
	}

	photo, uploaded, err := saveUpload(r, "profilePhoto", "user", h.store)
	if err != nil {
		respondError(w, err)
		return
	}
	if uploaded {
		input.ProfilePhoto = &photo
	}

	user, err := h.users.Update(r.Context(), id, input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User updated successfully",
		"user":    user,
	})
}

// Delete handles DELETE /api/users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "User deleted successfully")
}
