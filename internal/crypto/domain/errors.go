package domain

import (
	"github.com/allisson/envseal/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures. Integrity failures are
// terminal for the operation: they are never retried, and no partial
// plaintext is ever returned alongside them.
var (
	// ErrRandomnessUnavailable indicates the secure random source could not
	// supply entropy. Key and envelope generation abort rather than fall
	// back to a weaker source.
	ErrRandomnessUnavailable = errors.Wrap(errors.ErrInternal, "secure random source unavailable")

	// ErrInvalidKeySize indicates a secret key of incorrect length.
	//
	// Master secrets must decode to exactly 32 bytes (256 bits).
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrEmptyInput indicates an empty or absent envelope was passed to
	// decryption. Treated as a hard failure, not coerced to an empty string.
	ErrEmptyInput = errors.Wrap(errors.ErrInvalidInput, "empty input")

	// ErrInvalidEnvelopeFormat indicates the envelope text is missing
	// required fields or cannot be parsed. Decryption aborts before any
	// key material is derived.
	ErrInvalidEnvelopeFormat = errors.Wrap(
		errors.ErrInvalidInput,
		"invalid envelope format, expected {salt, iv, ciphertext, mac}",
	)

	// ErrMacVerificationFailed indicates tampering or a wrong key. The MAC
	// is verified before any decryption is attempted, so no plaintext
	// oracle exists for invalid envelopes.
	ErrMacVerificationFailed = errors.Wrap(errors.ErrIntegrity, "mac verification failed")

	// ErrDecryptionFailed indicates invalid padding or an undecodable
	// plaintext after a successful MAC check. Reaching this state implies
	// a logic bug, since the MAC already vouched for the ciphertext.
	ErrDecryptionFailed = errors.Wrap(errors.ErrIntegrity, "decryption failed")

	// ErrEmptyPlaintext indicates the decrypted value was empty. Guarded
	// explicitly: a MAC-valid envelope should never carry an empty value.
	ErrEmptyPlaintext = errors.Wrap(errors.ErrIntegrity, "decrypted value is empty")
)
