package service

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/allisson/envseal/internal/crypto/domain"
)

// DeriveKey derives a single-use 32-byte encryption key from the master
// secret and a per-envelope salt using PBKDF2-HMAC-SHA256 with a fixed
// iteration count.
//
// The derivation is deterministic: the same (secret, salt) pair always
// produces the same key, which is what allows decryption without storing
// the derived key anywhere. Different salts yield statistically
// independent keys, so a derived key is never reused across envelopes.
// Callers must Zero the returned key as soon as the operation completes.
func DeriveKey(secret *cryptoDomain.SecretKey, salt []byte) []byte {
	return pbkdf2.Key(
		secret.Bytes(),
		salt,
		cryptoDomain.KDFIterations,
		cryptoDomain.KeySize,
		sha256.New,
	)
}
