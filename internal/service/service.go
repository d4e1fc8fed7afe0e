package service

import (
	"context"
	"io"

	"leafdoctor/internal/models"
	"leafdoctor/internal/repository"
)

// Authorization is the auth/session store seen by the HTTP layer.
type Authorization interface {
	SignUp(username, password string) (models.Session, error)
	Login(username, password string) (models.Session, error)
	Logout(token string)
	Resolve(token string) (string, bool)
}

// Classifier turns an uploaded image into ranked scores.
type Classifier interface {
	Classify(ctx context.Context, r io.Reader) (models.PredictionResult, error)
	Labels() []string
}

// Service aggregates the sub-services handed to the handlers.
type Service struct {
	Authorization
	Classifier
}

// NewService wires the in-memory stores into the auth service and attaches
// an already constructed classifier.
func NewService(repos *repository.Repository, hasher PasswordHasher, classifier Classifier) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, repos.Sessions, hasher),
		Classifier:    classifier,
	}
}
