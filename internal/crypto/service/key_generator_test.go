package service

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/envseal/internal/crypto/domain"
)

func TestGenerateKey(t *testing.T) {
	t.Run("256-bit key decodes to 32 bytes", func(t *testing.T) {
		encoded, err := GenerateKey(256)
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(encoded)
		require.NoError(t, err)
		assert.Len(t, raw, 32)
	})

	t.Run("128-bit key decodes to 16 bytes", func(t *testing.T) {
		encoded, err := GenerateKey(128)
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(encoded)
		require.NoError(t, err)
		assert.Len(t, raw, 16)
	})

	t.Run("default length", func(t *testing.T) {
		encoded, err := GenerateKey(cryptoDomain.DefaultKeyBits)
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(encoded)
		require.NoError(t, err)
		assert.Len(t, raw, cryptoDomain.KeySize)
	})

	t.Run("consecutive keys differ", func(t *testing.T) {
		first, err := GenerateKey(256)
		require.NoError(t, err)
		second, err := GenerateKey(256)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("rejects short key length", func(t *testing.T) {
		_, err := GenerateKey(64)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})

	t.Run("rejects non byte-aligned length", func(t *testing.T) {
		_, err := GenerateKey(257)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})

	t.Run("rejects zero and negative lengths", func(t *testing.T) {
		_, err := GenerateKey(0)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)

		_, err = GenerateKey(-256)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})
}
