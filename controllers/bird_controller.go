package controllers

import (
	"io"
	"net/http"

	"github.com/birdquest/birdquest/lang"
	"github.com/birdquest/birdquest/models"
	"github.com/birdquest/birdquest/services"
	"github.com/birdquest/birdquest/userctx"
)

// maxImageBytes caps uploaded image size at 10 MiB.
const maxImageBytes = 10 << 20

// BirdController handles the discovery workflow and bird listings
type BirdController struct {
	services *services.Services
}

// NewBirdController creates a new bird controller
func NewBirdController(services *services.Services) *BirdController {
	return &BirdController{
		services: services,
	}
}

// AnalyzeBird handles POST /api/analyze-bird: one image file in, one
// classification verdict and collection outcome out.
func (c *BirdController) AnalyzeBird(w http.ResponseWriter, r *http.Request) {
	upload, ok := readImageUpload(w, r)
	if !ok {
		return
	}

	userID := userctx.GetUserID(r.Context())

	result, err := c.services.Discovery.AnalyzeBird(r.Context(), userID, upload)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Index handles GET /api/birds: reference data plus the caller's collection
func (c *BirdController) Index(w http.ResponseWriter, r *http.Request) {
	userID := userctx.GetUserID(r.Context())

	catalog, err := c.services.Collection.GetCatalog(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		OK      bool   `json:"ok"`
		Message string `json:"msg"`
		*services.BirdCatalog
	}{
		OK:          true,
		Message:     lang.SuccessRetrieveBirds,
		BirdCatalog: catalog,
	})
}

// readImageUpload extracts the "image" multipart file. Writes a 400 response
// and returns ok=false when the file is missing or unreadable.
func readImageUpload(w http.ResponseWriter, r *http.Request) (*models.ImageUpload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, lang.NoImageFile, "")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, lang.NoImageFile, err.Error())
		return nil, false
	}

	return &models.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, true
}
