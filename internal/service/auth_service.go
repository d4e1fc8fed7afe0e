package service

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"leafdoctor/internal/models"
	"leafdoctor/internal/repository"
)

// tokenBytes is the entropy of a session token before encoding.
const tokenBytes = 32

// Domain errors for auth flows.
var (
	ErrUserExists         = errors.New("user exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService handles sign-up, login and session lookup.
//
// There are no password rules, no lockout and no session expiry.
type AuthService struct {
	users    repository.Authorization
	sessions repository.SessionRepo
	hasher   PasswordHasher
	newToken func() (string, error)
}

func NewAuthService(users repository.Authorization, sessions repository.SessionRepo, hasher PasswordHasher) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		newToken: generateToken,
	}
}

// SignUp stores a new user and opens a session for it.
func (s *AuthService) SignUp(username, password string) (models.Session, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.Session{}, err
	}
	if err := s.users.Create(username, hash); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return models.Session{}, ErrUserExists
		}
		return models.Session{}, err
	}
	return s.openSession(username)
}

// Login checks the password and opens a new session. Unknown users and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(username, password string) (models.Session, error) {
	u, err := s.users.GetByUsername(username)
	if err != nil {
		return models.Session{}, err
	}
	if u == nil || !s.hasher.Verify(u.PasswordHash, password) {
		return models.Session{}, ErrInvalidCredentials
	}
	return s.openSession(username)
}

// Logout drops the session; unknown tokens are ignored.
func (s *AuthService) Logout(token string) {
	if token == "" {
		return
	}
	s.sessions.Delete(token)
}

// Resolve returns the username bound to token.
func (s *AuthService) Resolve(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	sess, ok := s.sessions.Get(token)
	if !ok {
		return "", false
	}
	return sess.Username, true
}

func (s *AuthService) openSession(username string) (models.Session, error) {
	token, err := s.newToken()
	if err != nil {
		return models.Session{}, err
	}
	sess := models.Session{Token: token, Username: username}
	if err := s.sessions.Save(sess); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

// generateToken returns 32 random bytes as unpadded URL-safe base64.
func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
