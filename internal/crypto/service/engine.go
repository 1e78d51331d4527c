package service

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"unicode/utf8"

	cryptoDomain "github.com/allisson/envseal/internal/crypto/domain"
)

// EngineService implements the Engine interface with AES-256-CBC,
// PKCS#7 padding, and an encrypt-then-MAC HMAC-SHA256 tag.
//
// Every operation is self-contained: a fresh salt and IV are drawn per
// encryption, the derived key lives only for the duration of the call,
// and no state is carried between calls. The instance is therefore safe
// for concurrent use from multiple goroutines.
type EngineService struct{}

// NewEngine creates a new EngineService.
func NewEngine() *EngineService {
	return &EngineService{}
}

// Encrypt encrypts value under a key derived from secret and a fresh salt.
//
// Steps: generate salt and IV from crypto/rand, derive the key, CBC-encrypt
// the padded plaintext, then MAC salt||iv||ciphertext under the same
// derived key. The MAC binds all three fields together, so no field of the
// returned envelope can be swapped or replayed independently.
func (e *EngineService) Encrypt(
	value string,
	secret *cryptoDomain.SecretKey,
) (*cryptoDomain.Envelope, error) {
	salt := make([]byte, cryptoDomain.SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrRandomnessUnavailable, err)
	}
	iv := make([]byte, cryptoDomain.IVSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrRandomnessUnavailable, err)
	}

	key := DeriveKey(secret, salt)
	defer cryptoDomain.Zero(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	plaintext := pkcs7Pad([]byte(value), aes.BlockSize)
	cipherText := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(cipherText, plaintext)
	cryptoDomain.Zero(plaintext)

	envelope := &cryptoDomain.Envelope{
		Salt:       salt,
		IV:         iv,
		CipherText: cipherText,
	}
	envelope.Mac = computeMac(key, envelope)

	return envelope, nil
}

// Decrypt recovers the plaintext value from its serialized envelope.
//
// The MAC is verified before any decryption is attempted
// (verify-then-decrypt). A MAC mismatch means tampering or a wrong key and
// aborts with ErrMacVerificationFailed; padding problems after a valid MAC
// abort with ErrDecryptionFailed. No partial plaintext is ever returned.
func (e *EngineService) Decrypt(
	envelopeText string,
	secret *cryptoDomain.SecretKey,
) (string, error) {
	envelope, err := cryptoDomain.ParseEnvelope(envelopeText)
	if err != nil {
		return "", err
	}

	key := DeriveKey(secret, envelope.Salt)
	defer cryptoDomain.Zero(key)

	if !hmac.Equal(envelope.Mac, computeMac(key, envelope)) {
		return "", cryptoDomain.ErrMacVerificationFailed
	}

	if len(envelope.CipherText)%aes.BlockSize != 0 {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	plaintext := make([]byte, len(envelope.CipherText))
	cipher.NewCBCDecrypter(block, envelope.IV).CryptBlocks(plaintext, envelope.CipherText)
	defer cryptoDomain.Zero(plaintext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", err
	}
	if len(unpadded) == 0 {
		return "", cryptoDomain.ErrEmptyPlaintext
	}
	if !utf8.Valid(unpadded) {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	return string(unpadded), nil
}

// computeMac computes HMAC-SHA256 over salt||iv||ciphertext under key.
func computeMac(key []byte, envelope *cryptoDomain.Envelope) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(envelope.MacInput())
	return mac.Sum(nil)
}

// pkcs7Pad appends PKCS#7 padding up to the next blockSize boundary.
// A full block of padding is added when the input is already aligned.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

// pkcs7Unpad strips PKCS#7 padding, returning ErrDecryptionFailed when the
// padding bytes are inconsistent.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	if !bytes.Equal(
		data[len(data)-padLen:],
		bytes.Repeat([]byte{byte(padLen)}, padLen),
	) {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	return data[:len(data)-padLen], nil
}
