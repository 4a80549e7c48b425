package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"nfl-survivor-go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memUserRepo is an in-memory UserRepository
type memUserRepo struct {
	mu    sync.Mutex
	users map[int]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int]*models.User)}
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Username, username) {
			return user, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, models.ErrUserNotFound
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) UpdateLastLogin(_ context.Context, id int, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		user.LastLogin = &at
	}
	return nil
}

func (r *memUserRepo) GetAll(_ context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []*models.User
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, nil
}

func seedTestUser(t *testing.T, repo *memUserRepo, id int, username, password string) *models.User {
	t.Helper()
	user := &models.User{ID: id, Username: username, DisplayName: username, CreatedAt: time.Now().UTC()}
	require.NoError(t, user.HashPassword(password))
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestLoginSuccess(t *testing.T) {
	repo := newMemUserRepo()
	seedTestUser(t, repo, 1, "Manuel", "Manuel1")
	auth := NewAuthService(repo, "test-secret")

	resp, err := auth.Login(context.Background(), "Manuel", "Manuel1")
	require.NoError(t, err)
	assert.Equal(t, "Manuel", resp.User.Username)
	assert.Empty(t, resp.User.PasswordHash)
	assert.NotEmpty(t, resp.Token)

	// LastLogin was stamped
	stored, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)
}

func TestLoginCaseInsensitiveUsername(t *testing.T) {
	repo := newMemUserRepo()
	seedTestUser(t, repo, 1, "Manuel", "Manuel1")
	auth := NewAuthService(repo, "test-secret")

	_, err := auth.Login(context.Background(), "manuel", "Manuel1")
	assert.NoError(t, err)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newMemUserRepo()
	seedTestUser(t, repo, 1, "Manuel", "Manuel1")
	auth := NewAuthService(repo, "test-secret")

	_, err := auth.Login(context.Background(), "Manuel", "wrong")
	assert.Error(t, err)

	_, err = auth.Login(context.Background(), "nobody", "Manuel1")
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	repo := newMemUserRepo()
	user := seedTestUser(t, repo, 3, "Raff", "Raff1")
	auth := NewAuthService(repo, "test-secret")

	token, err := auth.GenerateToken(user)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 3, claims.UserID)
	assert.Equal(t, "Raff", claims.Username)

	loaded, err := auth.GetUserFromToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, loaded.ID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	repo := newMemUserRepo()
	user := seedTestUser(t, repo, 1, "Manuel", "Manuel1")

	auth := NewAuthService(repo, "secret-a")
	other := NewAuthService(repo, "secret-b")

	token, err := auth.GenerateToken(user)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	auth := NewAuthService(newMemUserRepo(), "test-secret")
	_, err := auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestUserSeederIsIdempotent(t *testing.T) {
	repo := newMemUserRepo()
	seeder := NewUserSeeder(repo)

	require.NoError(t, seeder.SeedUsers(context.Background()))
	users, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 4)

	// Second run must not duplicate or overwrite
	require.NoError(t, seeder.SeedUsers(context.Background()))
	users, err = repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 4)

	user, err := repo.GetByUsername(context.Background(), "Manuel")
	require.NoError(t, err)
	assert.True(t, user.CheckPassword("Manuel1"))
}
