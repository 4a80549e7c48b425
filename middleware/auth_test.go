package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nfl-survivor-go/models"
	"nfl-survivor-go/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type singleUserRepo struct {
	user *models.User
}

func (r *singleUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if r.user != nil && r.user.Username == username {
		return r.user, nil
	}
	return nil, models.ErrUserNotFound
}

func (r *singleUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, models.ErrUserNotFound
}

func (r *singleUserRepo) Create(_ context.Context, user *models.User) error { return nil }

func (r *singleUserRepo) UpdateLastLogin(_ context.Context, id int, at time.Time) error { return nil }

func (r *singleUserRepo) GetAll(_ context.Context) ([]*models.User, error) {
	return []*models.User{r.user}, nil
}

func newAuthFixture(t *testing.T) (*services.AuthService, string) {
	t.Helper()
	user := &models.User{ID: 1, Username: "Manuel"}
	auth := services.NewAuthService(&singleUserRepo{user: user}, "test-secret")
	token, err := auth.GenerateToken(user)
	require.NoError(t, err)
	return auth, token
}

func protectedEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r)
		require.NotNil(t, user)
		w.Write([]byte(user.Username))
	})
}

func TestRequireAuthBearerToken(t *testing.T) {
	auth, token := newAuthFixture(t)
	handler := NewAuthMiddleware(auth).RequireAuth(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Manuel", rec.Body.String())
}

func TestRequireAuthCookie(t *testing.T) {
	auth, token := newAuthFixture(t)
	handler := NewAuthMiddleware(auth).RequireAuth(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	auth, _ := newAuthFixture(t)
	handler := NewAuthMiddleware(auth).RequireAuth(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsBadToken(t *testing.T) {
	auth, _ := newAuthFixture(t)
	handler := NewAuthMiddleware(auth).RequireAuth(protectedEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
