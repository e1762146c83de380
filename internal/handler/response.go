package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vikas-0-3/farmer/internal/adapter/storage"
	"github.com/vikas-0-3/farmer/internal/domain/entity"
	"github.com/vikas-0-3/farmer/internal/repository"
	"github.com/vikas-0-3/farmer/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondError maps domain sentinels to HTTP statuses. Anything
// unrecognized surfaces as a 500 with the underlying message.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, entity.ErrItemNotFound):
		respondMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrDuplicateEmail),
		errors.Is(err, repository.ErrDuplicatePhone),
		errors.Is(err, repository.ErrDuplicateFarmer),
		errors.Is(err, repository.ErrDuplicateCart):
		respondMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, entity.ErrInvalidRole),
		errors.Is(err, entity.ErrInvalidGender),
		errors.Is(err, entity.ErrInvalidCategory),
		errors.Is(err, entity.ErrInvalidProductStatus),
		errors.Is(err, entity.ErrEmptyCartItems),
		errors.Is(err, entity.ErrEmptyOrderItems),
		errors.Is(err, entity.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrEmptyStatus),
		errors.Is(err, storage.ErrNotAnImage),
		errors.Is(err, storage.ErrTooLarge):
		respondMessage(w, http.StatusBadRequest, err.Error())
	default:
		respondMessage(w, http.StatusInternalServerError, err.Error())
	}
}

// parseObjectID rejects malformed IDs at the boundary.
func parseObjectID(w http.ResponseWriter, raw string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid ID")
		return primitive.NilObjectID, false
	}
	return id, true
}
