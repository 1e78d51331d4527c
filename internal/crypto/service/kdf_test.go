package service

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/envseal/internal/crypto/domain"
)

func newTestSecret(t *testing.T) *cryptoDomain.SecretKey {
	t.Helper()

	raw := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(raw)
	require.NoError(t, err)

	secret, err := cryptoDomain.NewSecretKey(raw)
	require.NoError(t, err)
	return secret
}

func TestDeriveKey(t *testing.T) {
	secret := newTestSecret(t)
	salt := make([]byte, cryptoDomain.SaltSize)
	_, err := rand.Read(salt)
	require.NoError(t, err)

	t.Run("produces a cipher-sized key", func(t *testing.T) {
		key := DeriveKey(secret, salt)
		assert.Len(t, key, cryptoDomain.KeySize)
	})

	t.Run("deterministic for same secret and salt", func(t *testing.T) {
		first := DeriveKey(secret, salt)
		second := DeriveKey(secret, salt)
		assert.Equal(t, first, second)
	})

	t.Run("different salts produce independent keys", func(t *testing.T) {
		otherSalt := make([]byte, cryptoDomain.SaltSize)
		_, err := rand.Read(otherSalt)
		require.NoError(t, err)

		assert.NotEqual(t, DeriveKey(secret, salt), DeriveKey(secret, otherSalt))
	})

	t.Run("different secrets produce independent keys", func(t *testing.T) {
		otherSecret := newTestSecret(t)
		assert.NotEqual(t, DeriveKey(secret, salt), DeriveKey(otherSecret, salt))
	})
}
