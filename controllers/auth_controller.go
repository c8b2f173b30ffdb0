package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gitea.com/go-chi/session"

	"github.com/birdquest/birdquest/lang"
	"github.com/birdquest/birdquest/models"
	"github.com/birdquest/birdquest/repositories"
	"github.com/birdquest/birdquest/services"
)

// AuthController establishes and tears down sessions. Account creation and
// password reset live outside this service.
type AuthController struct {
	services *services.Services
}

// NewAuthController creates a new auth controller
func NewAuthController(services *services.Services) *AuthController {
	return &AuthController{
		services: services,
	}
}

// Login handles POST /auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var form models.LoginForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	if errs := form.Validate(); len(errs) > 0 {
		respondError(w, http.StatusBadRequest, strings.Join(errs, ", "), "")
		return
	}

	user, err := c.services.Auth.Authenticate(r.Context(), form.Email, form.Password)
	if errors.Is(err, repositories.ErrUserNotFound) || errors.Is(err, services.ErrInvalidCredentials) {
		respondError(w, http.StatusUnauthorized, lang.InvalidCredentials, "")
		return
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}

	sess := session.GetSession(r)
	sess.Set("authenticated", true)
	sess.Set("email", user.Email)
	sess.Set("name", user.Name)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ok":  true,
		"msg": lang.SuccessAuthentication,
	})
}

// Logout handles POST /auth/logout
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	if err := sess.Flush(); err != nil {
		respondError(w, http.StatusInternalServerError, lang.InternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ok":  true,
		"msg": lang.SuccessLogout,
	})
}

// CheckAuth handles GET /auth/check-auth: reports the session's state so the
// client can restore context after a reload.
func (c *AuthController) CheckAuth(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	authenticated, _ := sess.Get("authenticated").(bool)
	email, _ := sess.Get("email").(string)

	if !authenticated || email == "" {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"ok": false, "email": nil, "name": nil, "user_type_id": nil,
		})
		return
	}

	account, err := c.services.Auth.GetUserContext(r.Context(), email)
	if err != nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"ok": false, "email": email, "name": nil, "user_type_id": nil,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ok":           true,
		"email":        account.Email,
		"name":         account.Name,
		"user_type_id": account.UserTypeID,
	})
}
