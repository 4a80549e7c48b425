package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents a pool participant. The roster is fixed (four users),
// seeded once at startup; only the last-login timestamp changes afterwards.
type User struct {
	ID           int        `json:"id" bson:"_id"`
	Username     string     `json:"username" bson:"username"`
	DisplayName  string     `json:"display_name" bson:"display_name"`
	PasswordHash string     `json:"-" bson:"password_hash"` // Never serialize the hash in JSON
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
}

// LoginRequest represents login form data
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// HashPassword hashes the user's password using bcrypt
func (u *User) HashPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

// CheckPassword verifies the provided password against the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// ToSafeUser returns a copy of the user without the credential hash
func (u *User) ToSafeUser() User {
	return User{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
		LastLogin:   u.LastLogin,
	}
}
