package domain

import (
	"context"
	"time"
)

// Role codes recognized by the authorization layer.
const (
	RoleAdmin        = "admin"
	RoleCheckInStaff = "checkin_staff"
	RoleViewer       = "viewer"
)

// User represents a staff account able to operate check-in or administration.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Role represents an application role (e.g. admin, checkin_staff).
type Role struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID and role codes.
type TokenVerifier interface {
	Verify(token string) (userID string, roles []string, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// RoleRepository defines the interface for role storage.
type RoleRepository interface {
	ListByUserID(ctx context.Context, userID string) ([]*Role, error)
}

// AuthService authenticates staff users and issues access tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, user *User, roles []string, err error)
}
