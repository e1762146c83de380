package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vikas-0-3/farmer/internal/adapter/storage"
	"github.com/vikas-0-3/farmer/internal/platform/logger"
	"github.com/vikas-0-3/farmer/internal/service"
)

type AuthHandler struct {
	auth  service.AuthService
	store storage.Store
	log   logger.Logger
}

func NewAuthHandler(auth service.AuthService, store storage.Store, log logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, store: store, log: log}
}

// Register handles POST /api/auth/register. The body is a multipart
// form with an optional profilePhoto image part.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
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

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"userId":  id,
	})
}

// Login handles POST /api/auth/login with a JSON body.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.auth.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   result.Token,
		"role":    result.Role,
		"userId":  result.UserID,
	})
}
