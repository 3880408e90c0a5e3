package domain

import (
	"context"
	"time"
)

// Application roles. Every user holds exactly one.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered user. PasswordHash is never serialized.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is set by the repository on create.
func NewUser(email, passwordHash, name, role string, createdAt, updatedAt time.Time) *User {
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         role,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// UserUpdate holds the mutable profile fields. Nil means "leave unchanged".
type UserUpdate struct {
	Name  *string
	Email *string
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenClaims are the identity claims carried by a bearer token.
type TokenClaims struct {
	UserID string
	Email  string
	Role   string
}

// TokenIssuer issues signed, time-limited bearer tokens.
type TokenIssuer interface {
	Issue(userID, email, role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns its claims. Expired or malformed
// tokens return an error.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
	List(ctx context.Context, p PaginationParams) ([]*User, error)
	Delete(ctx context.Context, id string) error
}

// AuthService defines registration, login, and profile operations.
type AuthService interface {
	Register(ctx context.Context, email, password, name, role string) (*User, string, error)
	Login(ctx context.Context, email, password string) (*User, string, error)
	GetProfile(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, update UserUpdate) (*User, error)
	ListUsers(ctx context.Context, p PaginationParams) ([]*User, error)
	DeleteUser(ctx context.Context, userID string) error
}
