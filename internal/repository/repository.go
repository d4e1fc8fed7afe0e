package repository

import (
	"errors"

	"leafdoctor/internal/models"
)

var (
	ErrDuplicateUsername = errors.New("username already registered")
	ErrDuplicateToken    = errors.New("session token already issued")
)

// Authorization stores user accounts.
type Authorization interface {
	// Create inserts a user; it fails with ErrDuplicateUsername if the
	// username exists, leaving the stored hash untouched.
	Create(username, hash string) error
	GetByUsername(username string) (*models.User, error)
}

// SessionRepo maps opaque tokens to usernames.
type SessionRepo interface {
	Save(s models.Session) error
	Get(token string) (models.Session, bool)
	Delete(token string)
}

type Repository struct {
	Auth     Authorization
	Sessions SessionRepo
}

// NewRepository builds the process-wide in-memory stores. Nothing survives a
// restart.
func NewRepository() *Repository {
	return &Repository{
		Auth:     NewUserRepository(),
		Sessions: NewSessionRepository(),
	}
}
