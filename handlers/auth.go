package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"nfl-survivor-go/logging"
	"nfl-survivor-go/models"
	"nfl-survivor-go/services"
)

// AuthHandler handles login and logout
type AuthHandler struct {
	authService  *services.AuthService
	secureCookie bool
	logger       *logging.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *services.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		secureCookie: secureCookie,
		logger:       logging.WithPrefix("AuthHandler"),
	}
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	if loginReq.Username == "" || loginReq.Password == "" {
		respondError(w, http.StatusBadRequest, "bad_request", "username and password are required")
		return
	}

	authResponse, err := h.authService.Login(r.Context(), loginReq.Username, loginReq.Password)
	if err != nil {
		h.logger.Warnf("Login failed for %s: %v", loginReq.Username, err)
		respondError(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password")
		return
	}

	h.setAuthCookie(w, authResponse.Token)
	h.logger.Infof("User %s logged in", authResponse.User.Username)
	respondJSON(w, http.StatusOK, authResponse)
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
