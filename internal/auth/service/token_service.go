// Package service provides token generation and verification for API access.
// Implements secure random token generation and Argon2id hashing so the server
// configuration only ever holds a token hash, never the plain token.
package service

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/envseal/internal/errors"
)

// TokenService manages API token credentials.
type TokenService interface {
	// GenerateToken creates a new random API token and returns both the plain
	// token (shown once to the operator) and its Argon2id hash (stored in
	// configuration).
	GenerateToken() (plainToken string, hashedToken string, err error)

	// HashToken hashes a plain token using Argon2id.
	HashToken(plainToken string) (hashedToken string, err error)

	// CompareToken reports whether the plain token matches the stored hash.
	CompareToken(plainToken string, hashedToken string) bool
}

// tokenService implements TokenService using Argon2id hashing.
type tokenService struct {
	hasher *pwdhash.PasswordHasher
}

// GenerateToken creates a new cryptographically secure 32-byte random token.
// The token is base64-encoded for easy transmission and storage.
func (s *tokenService) GenerateToken() (plainToken string, hashedToken string, err error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}

	plainToken = base64.URLEncoding.EncodeToString(randomBytes)

	hashedToken, err = s.HashToken(plainToken)
	if err != nil {
		return "", "", err
	}

	return plainToken, hashedToken, nil
}

// HashToken hashes a plain token using Argon2id.
func (s *tokenService) HashToken(plainToken string) (hashedToken string, err error) {
	hashedToken, err = s.hasher.Hash([]byte(plainToken))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash token")
	}
	return hashedToken, nil
}

// CompareToken performs a constant-time comparison between a plain token and its hash.
func (s *tokenService) CompareToken(plainToken string, hashedToken string) bool {
	ok, err := s.hasher.Verify([]byte(plainToken), hashedToken)
	if err != nil {
		return false
	}
	return ok
}

// NewTokenService creates a new TokenService instance using Argon2id hashing.
// Uses the Moderate policy for a balance between security and performance.
func NewTokenService() TokenService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &tokenService{
		hasher: hasher,
	}
}
