package domain

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomEnvelope(t *testing.T) *Envelope {
	t.Helper()

	envelope := &Envelope{
		Salt:       make([]byte, SaltSize),
		IV:         make([]byte, IVSize),
		CipherText: make([]byte, 48),
		Mac:        make([]byte, MacSize),
	}
	for _, field := range [][]byte{envelope.Salt, envelope.IV, envelope.CipherText, envelope.Mac} {
		_, err := rand.Read(field)
		require.NoError(t, err)
	}
	return envelope
}

func TestEnvelope_EncodeParse(t *testing.T) {
	t.Run("round trip is lossless", func(t *testing.T) {
		envelope := randomEnvelope(t)

		text, err := envelope.Encode()
		require.NoError(t, err)

		parsed, err := ParseEnvelope(text)
		require.NoError(t, err)
		assert.Equal(t, envelope, parsed)
	})

	t.Run("wire form carries four named base64 fields", func(t *testing.T) {
		envelope := randomEnvelope(t)

		text, err := envelope.Encode()
		require.NoError(t, err)

		var wire map[string]string
		require.NoError(t, json.Unmarshal([]byte(text), &wire))
		assert.Len(t, wire, 4)
		assert.Equal(t, base64.StdEncoding.EncodeToString(envelope.Salt), wire["salt"])
		assert.Equal(t, base64.StdEncoding.EncodeToString(envelope.IV), wire["iv"])
		assert.Equal(t, base64.StdEncoding.EncodeToString(envelope.CipherText), wire["ciphertext"])
		assert.Equal(t, base64.StdEncoding.EncodeToString(envelope.Mac), wire["mac"])
	})
}

func TestParseEnvelope(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		_, err := ParseEnvelope("")
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := ParseEnvelope("definitely not an envelope")
		assert.ErrorIs(t, err, ErrInvalidEnvelopeFormat)
	})

	t.Run("error message names the expected shape", func(t *testing.T) {
		_, err := ParseEnvelope("{}")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "{salt, iv, ciphertext, mac}")
	})

	t.Run("missing field", func(t *testing.T) {
		envelope := randomEnvelope(t)
		text, err := envelope.Encode()
		require.NoError(t, err)

		var wire map[string]string
		require.NoError(t, json.Unmarshal([]byte(text), &wire))

		for _, field := range []string{"salt", "iv", "ciphertext", "mac"} {
			partial := map[string]string{}
			for k, v := range wire {
				if k != field {
					partial[k] = v
				}
			}
			data, err := json.Marshal(partial)
			require.NoError(t, err)

			_, err = ParseEnvelope(string(data))
			assert.ErrorIs(t, err, ErrInvalidEnvelopeFormat, "missing %s must fail", field)
		}
	})

	t.Run("field not base64", func(t *testing.T) {
		envelope := randomEnvelope(t)
		text, err := envelope.Encode()
		require.NoError(t, err)

		var wire map[string]string
		require.NoError(t, json.Unmarshal([]byte(text), &wire))
		wire["mac"] = "***"
		data, err := json.Marshal(wire)
		require.NoError(t, err)

		_, err = ParseEnvelope(string(data))
		assert.ErrorIs(t, err, ErrInvalidEnvelopeFormat)
	})

	t.Run("wrong field lengths", func(t *testing.T) {
		envelope := randomEnvelope(t)
		envelope.Salt = envelope.Salt[:8]

		text, err := envelope.Encode()
		require.NoError(t, err)

		_, err = ParseEnvelope(text)
		assert.ErrorIs(t, err, ErrInvalidEnvelopeFormat)
	})

	t.Run("empty ciphertext", func(t *testing.T) {
		envelope := randomEnvelope(t)
		envelope.CipherText = nil

		text, err := envelope.Encode()
		require.NoError(t, err)

		_, err = ParseEnvelope(text)
		assert.ErrorIs(t, err, ErrInvalidEnvelopeFormat)
	})
}

func TestEnvelope_MacInput(t *testing.T) {
	envelope := randomEnvelope(t)

	input := envelope.MacInput()
	require.Len(t, input, len(envelope.Salt)+len(envelope.IV)+len(envelope.CipherText))
	assert.Equal(t, envelope.Salt, input[:SaltSize])
	assert.Equal(t, envelope.IV, input[SaltSize:SaltSize+IVSize])
	assert.Equal(t, envelope.CipherText, input[SaltSize+IVSize:])
}
