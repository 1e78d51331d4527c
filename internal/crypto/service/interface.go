// Package service implements the secret-protection primitives: key
// generation, key derivation, and the authenticated encryption engine
// that produces and consumes envelopes.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/envseal/internal/crypto/domain"
)

// Engine performs authenticated encryption and decryption of single
// configuration values. Implementations are stateless; the master secret
// is an explicit parameter of every call.
type Engine interface {
	// Encrypt encrypts value under a key derived from secret and a fresh
	// salt, returning a complete envelope. Two calls with identical inputs
	// produce different envelopes.
	Encrypt(value string, secret *cryptoDomain.SecretKey) (*cryptoDomain.Envelope, error)

	// Decrypt parses envelopeText, verifies its MAC under the derived key,
	// and only then decrypts. Integrity failures abort without output.
	Decrypt(envelopeText string, secret *cryptoDomain.SecretKey) (string, error)
}

// KMSService opens KMS keepers for unwrapping a KMS-wrapped master secret.
type KMSService interface {
	// OpenKeeper opens a keeper for the configured KMS provider.
	// Returns an error if the key URI is invalid or connection fails.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}
