package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt only looks at the first 72 bytes of its input.
const maxPasswordBytes = 72

var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// CredentialService hashes and checks passwords.
type CredentialService interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

type credentialService struct {
	cost int
}

// NewCredentialService fails when cost is outside bcrypt's supported range.
func NewCredentialService(cost int) (CredentialService, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &credentialService{cost: cost}, nil
}

// Hash returns a salted bcrypt digest. Each call draws a fresh salt.
func (s *credentialService) Hash(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hashed), nil
}

// Verify compares in constant time. A malformed digest never verifies.
func (s *credentialService) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
