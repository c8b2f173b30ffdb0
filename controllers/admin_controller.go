package controllers

import (
	"net/http"

	"github.com/birdquest/birdquest/lang"
	"github.com/birdquest/birdquest/services"
)

// AdminController serves the read-only admin listings
type AdminController struct {
	services *services.Services
}

// NewAdminController creates a new admin controller
func NewAdminController(services *services.Services) *AdminController {
	return &AdminController{
		services: services,
	}
}

// Users handles GET /api/admin/users
func (c *AdminController) Users(w http.ResponseWriter, r *http.Request) {
	users, err := c.services.Admin.GetAllUsers(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ok":    true,
		"msg":   lang.SuccessRetrieveUsers,
		"users": users,
	})
}

// APIStats handles GET /api/admin/api-stats
func (c *AdminController) APIStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.services.Admin.GetAPIStats(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ok":       true,
		"apiStats": stats,
	})
}

// UserConsumption handles GET /api/admin/user-consumption
func (c *AdminController) UserConsumption(w http.ResponseWriter, r *http.Request) {
	consumption, err := c.services.Admin.GetUserConsumption(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ok":              true,
		"userConsumption": consumption,
	})
}
