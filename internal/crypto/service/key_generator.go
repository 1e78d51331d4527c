package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	cryptoDomain "github.com/allisson/envseal/internal/crypto/domain"
)

// GenerateKey produces lengthBits/8 cryptographically secure random bytes
// and returns them base64-encoded for use as a master secret.
//
// lengthBits must be a multiple of 8 and at least 128; pass
// cryptoDomain.DefaultKeyBits for the standard 256-bit key. A failure of
// the secure random source returns ErrRandomnessUnavailable and is fatal:
// the generator never degrades to a weaker source.
func GenerateKey(lengthBits int) (string, error) {
	if lengthBits < cryptoDomain.MinKeyBits || lengthBits%8 != 0 {
		return "", fmt.Errorf(
			"%w: key length must be a multiple of 8 and at least %d bits, got %d",
			cryptoDomain.ErrInvalidKeySize,
			cryptoDomain.MinKeyBits,
			lengthBits,
		)
	}

	key := make([]byte, lengthBits/8)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("%w: %v", cryptoDomain.ErrRandomnessUnavailable, err)
	}
	defer cryptoDomain.Zero(key)

	return base64.StdEncoding.EncodeToString(key), nil
}
