package adapters

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/dbooster/trustd/internal/application/adapter"
)

// bcryptCost is the cost factor for bcrypt hashing.
const bcryptCost = 12

// passwordHasher implements the adapter.PasswordHasher interface.
type passwordHasher struct{}

// NewPasswordHasher creates a new bcrypt-backed password hasher.
func NewPasswordHasher() adapter.PasswordHasher {
	return &passwordHasher{}
}

// Hash hashes a plain text password using bcrypt.
func (h *passwordHasher) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify compares a plain text password with a stored hash.
func (h *passwordHasher) Verify(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
