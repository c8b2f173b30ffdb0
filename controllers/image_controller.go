package controllers

import (
	"net/http"

	"github.com/birdquest/birdquest/lang"
	"github.com/birdquest/birdquest/services"
	"github.com/birdquest/birdquest/userctx"
)

// ImageController handles profile picture uploads
type ImageController struct {
	services *services.Services
}

// NewImageController creates a new image controller
func NewImageController(services *services.Services) *ImageController {
	return &ImageController{
		services: services,
	}
}

// UploadProfileImage handles POST /api/profile-image: the new picture is
// stored and linked before the previous one is removed.
func (c *ImageController) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	upload, ok := readImageUpload(w, r)
	if !ok {
		return
	}

	userID := userctx.GetUserID(r.Context())

	url, err := c.services.ProfileImage.Replace(r.Context(), userID, upload)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"img_url": url,
		"msg":     lang.SuccessUploadedPicture,
	})
}
