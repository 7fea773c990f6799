package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher abstracts the password hashing algorithm so services and tests do
// not depend on bcrypt directly.
type Hasher interface {
	Hash(password string) (string, error)

	// Check reports whether password matches hash. Malformed hashes are not
	// an error, they simply never match.
	Check(password, hash string) bool
}

var _ Hasher = (*BcryptHasher)(nil)

// BcryptHasher hashes passwords with bcrypt. The generated hash embeds its
// own random salt, so equal passwords produce distinct hashes.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (h *BcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
