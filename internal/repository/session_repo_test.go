package repository

import (
	"errors"
	"testing"

	"leafdoctor/internal/models"
)

func TestSessionRepository_SaveGetDelete(t *testing.T) {
	repo := NewSessionRepository()

	if err := repo.Save(models.Session{Token: "tok", Username: "alice"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s, ok := repo.Get("tok")
	if !ok || s.Username != "alice" || s.Token != "tok" {
		t.Fatalf("Get: got %+v ok=%v", s, ok)
	}

	repo.Delete("tok")
	if _, ok := repo.Get("tok"); ok {
		t.Fatalf("expected session to be gone after Delete")
	}

	// idempotent
	repo.Delete("tok")
	repo.Delete("never-issued")
}

func TestSessionRepository_DuplicateToken(t *testing.T) {
	repo := NewSessionRepository()
	_ = repo.Save(models.Session{Token: "tok", Username: "alice"})

	err := repo.Save(models.Session{Token: "tok", Username: "mallory"})
	if !errors.Is(err, ErrDuplicateToken) {
		t.Fatalf("expected ErrDuplicateToken, got %v", err)
	}
	s, _ := repo.Get("tok")
	if s.Username != "alice" {
		t.Fatalf("token rebound to %q", s.Username)
	}
}

func TestSessionRepository_UnknownToken(t *testing.T) {
	repo := NewSessionRepository()
	if _, ok := repo.Get(""); ok {
		t.Fatalf("empty token must not resolve")
	}
}

func TestNewRepository_WiresMemoryStores(t *testing.T) {
	r := NewRepository()
	if _, ok := r.Auth.(*UserRepository); !ok {
		t.Fatalf("Auth is %T", r.Auth)
	}
	if _, ok := r.Sessions.(*SessionRepository); !ok {
		t.Fatalf("Sessions is %T", r.Sessions)
	}
}
