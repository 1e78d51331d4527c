package domain

// Fixed parameters for the envelope construction.
//
// envseal deliberately supports a single authenticated-encryption
// construction: AES-256-CBC with PKCS#7 padding, an encrypt-then-MAC
// HMAC-SHA256 tag over salt||iv||ciphertext, and a PBKDF2-HMAC-SHA256
// derived key. There is no algorithm negotiation; every envelope written
// by this module uses these parameters.
const (
	// KeySize is the size of master and derived keys in bytes (AES-256).
	KeySize = 32

	// SaltSize is the size of the per-envelope KDF salt in bytes.
	SaltSize = 16

	// IVSize is the size of the CBC initialization vector in bytes,
	// matching the AES block size.
	IVSize = 16

	// MacSize is the size of the HMAC-SHA256 tag in bytes.
	MacSize = 32

	// KDFIterations is the PBKDF2 iteration count. High enough to resist
	// offline brute force of the master secret; fixed so envelopes remain
	// decryptable across releases.
	KDFIterations = 100_000

	// DefaultKeyBits is the key length GenerateKey uses when the caller
	// does not specify one.
	DefaultKeyBits = 256

	// MinKeyBits is the smallest key length GenerateKey will produce.
	MinKeyBits = 128
)
