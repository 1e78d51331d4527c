package domain

import "context"

// KMSKeeper abstracts a KMS-backed decryption primitive used to unwrap a
// KMS-wrapped master secret at startup. *secrets.Keeper from gocloud.dev
// implements it.
type KMSKeeper interface {
	// Decrypt decrypts the ciphertext using the KMS-held key.
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)

	// Close releases resources held by the keeper.
	Close() error
}
