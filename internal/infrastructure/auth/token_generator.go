package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
)

// tokenBytes matches the entropy of the original token_urlsafe default.
const tokenBytes = 32

// TokenGeneratorImpl implements domain.TokenGenerator with random
// URL-safe tokens for reset and verification links.
type TokenGeneratorImpl struct{}

// NewTokenGenerator creates a new token generator
func NewTokenGenerator() domain.TokenGenerator {
	return &TokenGeneratorImpl{}
}

// Generate implements domain.TokenGenerator
func (g *TokenGeneratorImpl) Generate() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
