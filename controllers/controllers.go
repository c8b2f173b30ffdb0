package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/birdquest/birdquest/classifier"
	"github.com/birdquest/birdquest/imagestore"
	"github.com/birdquest/birdquest/lang"
	"github.com/birdquest/birdquest/repositories"
	"github.com/birdquest/birdquest/services"
)

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// errorBody is the JSON error envelope: a stable message plus optional
// diagnostics
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// respondError writes a JSON error body
func respondError(w http.ResponseWriter, status int, message, details string) {
	respondJSON(w, status, errorBody{Error: message, Details: details})
}

// respondServiceError maps a service-layer failure to its HTTP status and
// message per the API contract: 403 quota, 404 missing user/bird data,
// 500 classifier/storage/database failures.
func respondServiceError(w http.ResponseWriter, err error) {
	var statusErr *classifier.StatusError

	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		respondError(w, http.StatusNotFound, lang.UserNotFound, "")
	case errors.Is(err, repositories.ErrQuotaExceeded):
		respondError(w, http.StatusForbidden, lang.APILimitReached, "")
	case errors.Is(err, classifier.ErrTimeout):
		respondError(w, http.StatusInternalServerError, lang.ClassificationTimedOut, err.Error())
	case errors.As(err, &statusErr):
		respondError(w, http.StatusInternalServerError, lang.ClassifierUnavailable,
			lang.ModelAPIError(statusErr.StatusCode, statusErr.Body))
	case errors.Is(err, imagestore.ErrUpload), errors.Is(err, imagestore.ErrDelete):
		respondError(w, http.StatusInternalServerError, lang.ErrorUploadingImage, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, lang.InternalServerError, err.Error())
	}
}

// Controllers holds all controller instances
type Controllers struct {
	Auth  *AuthController
	Bird  *BirdController
	Admin *AdminController
	Image *ImageController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services) *Controllers {
	return &Controllers{
		Auth:  NewAuthController(services),
		Bird:  NewBirdController(services),
		Admin: NewAdminController(services),
		Image: NewImageController(services),
	}
}
