package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
)

// PasswordServiceImpl hashes credentials with bcrypt at a configurable
// work factor.
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a password service with the given bcrypt
// cost. A cost outside bcrypt's valid range falls back to the library
// default, so a zero config value is safe.
func NewPasswordService(cost int) domain.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordServiceImpl{cost: cost}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify implements domain.PasswordService. The comparison is
// constant-time inside bcrypt.
func (p *PasswordServiceImpl) Verify(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
