package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Password hasher names accepted by NewPasswordHasher.
const (
	HasherSHA256 = "sha256"
	HasherBcrypt = "bcrypt"
	HasherArgon2 = "argon2id"
)

// PasswordHasher produces and checks stored password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// NewPasswordHasher returns the hasher registered under name. Empty means
// HasherSHA256.
func NewPasswordHasher(name string) (PasswordHasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", HasherSHA256:
		return SHA256Hasher{}, nil
	case HasherBcrypt:
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	case HasherArgon2:
		return Argon2Hasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", name)
	}
}

// SHA256Hasher stores the hex SHA-256 digest of the password with no salt
// and no work factor. Identical passwords produce identical hashes and the
// digest is cheap to brute-force. Kept as the default for compatibility with
// existing hashes; select HasherBcrypt for new deployments.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Verify(hash, password string) bool {
	got, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(got), []byte(hash)) == 1
}

// BcryptHasher is the salted, adaptive alternative.
type BcryptHasher struct {
	Cost int
}

func (b BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (BcryptHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

const (
	argonPrefix  = "$argon2id$"
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// Argon2Hasher stores "$argon2id$<salt>$<key>" with raw base64 parts.
type Argon2Hasher struct{}

func (Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	enc := base64.RawStdEncoding
	return argonPrefix + enc.EncodeToString(salt) + "$" + enc.EncodeToString(key), nil
}

func (Argon2Hasher) Verify(hash, password string) bool {
	rest, ok := strings.CutPrefix(hash, argonPrefix)
	if !ok {
		return false
	}
	saltPart, keyPart, ok := strings.Cut(rest, "$")
	if !ok {
		return false
	}
	enc := base64.RawStdEncoding
	salt, err := enc.DecodeString(saltPart)
	if err != nil {
		return false
	}
	want, err := enc.DecodeString(keyPart)
	if err != nil || len(want) != argonKeyLen {
		return false
	}
	got := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return subtle.ConstantTimeCompare(got, want) == 1
}
