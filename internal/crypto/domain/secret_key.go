// Package domain defines the data model of the secret-protection pipeline:
// master secrets, encryption envelopes, and the error taxonomy shared by
// the crypto services and the env-file codec.
package domain

import (
	"encoding/base64"
	"fmt"
	"log/slog"
)

// SecretKey is an ownership-scoped handle for master key material.
//
// The key is passed explicitly through every call that needs it and is
// scoped to one invocation: callers create it, thread it through
// encrypt/decrypt/codec calls, and Destroy it when done. It is never held
// in ambient instance state and never persisted inside an envelope.
//
// The zero value is unusable; construct via NewSecretKey or DecodeSecretKey.
type SecretKey struct {
	key []byte
}

// NewSecretKey wraps raw key material in a SecretKey handle.
// The raw bytes must be exactly 32 bytes (256 bits); returns
// ErrInvalidKeySize otherwise. The handle takes ownership of a copy,
// so the caller may zero its own buffer immediately.
func NewSecretKey(raw []byte) (*SecretKey, error) {
	if len(raw) != KeySize {
		return nil, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidKeySize, KeySize, len(raw))
	}
	key := make([]byte, KeySize)
	copy(key, raw)
	return &SecretKey{key: key}, nil
}

// DecodeSecretKey decodes a base64-encoded master secret into a SecretKey.
// The decoded material must be exactly 32 bytes. The intermediate decode
// buffer is zeroed before returning.
func DecodeSecretKey(encoded string) (*SecretKey, error) {
	if encoded == "" {
		return nil, ErrEmptyInput
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: secret is not valid base64", ErrInvalidKeySize)
	}
	defer Zero(raw)

	return NewSecretKey(raw)
}

// Bytes returns the raw key material. Callers must not retain or mutate
// the returned slice beyond the current operation.
func (s *SecretKey) Bytes() []byte {
	return s.key
}

// Destroy zeroes the key material and invalidates the handle.
// Safe to call more than once.
func (s *SecretKey) Destroy() {
	Zero(s.key)
	s.key = nil
}

// String implements fmt.Stringer and redacts the key material so the
// secret can never leak through logging or error formatting.
func (s *SecretKey) String() string {
	return "SecretKey(redacted)"
}

// LogValue implements slog.LogValuer so the redaction holds under
// structured logging as well.
func (s *SecretKey) LogValue() slog.Value {
	return slog.StringValue(s.String())
}
