package middleware

import (
	"context"
	"net/http"
	"strings"

	"nfl-survivor-go/models"
	"nfl-survivor-go/services"
)

// UserContextKey is the key used to store the user in request context
type UserContextKey string

const UserKey UserContextKey = "user"

// AuthMiddleware handles JWT authentication. Identity is carried on the
// request context; handlers never read ambient session state.
type AuthMiddleware struct {
	authService *services.AuthService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(authService *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// RequireAuth rejects unauthenticated requests with 401
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.getUserFromRequest(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getUserFromRequest extracts and validates the user from the request
func (m *AuthMiddleware) getUserFromRequest(r *http.Request) (*models.User, error) {
	// Authorization header first, "Bearer <token>"
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return m.authService.GetUserFromToken(r.Context(), parts[1])
		}
	}

	// then the auth cookie
	cookie, err := r.Cookie("auth_token")
	if err == nil && cookie.Value != "" {
		return m.authService.GetUserFromToken(r.Context(), cookie.Value)
	}

	return nil, http.ErrNoCookie
}

// GetUserFromContext retrieves the authenticated user from request context
func GetUserFromContext(r *http.Request) *models.User {
	if user, ok := r.Context().Value(UserKey).(*models.User); ok {
		return user
	}
	return nil
}

// IsAuthenticated checks if the request has an authenticated user
func IsAuthenticated(r *http.Request) bool {
	return GetUserFromContext(r) != nil
}
