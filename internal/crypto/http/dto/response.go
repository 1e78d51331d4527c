// Package dto provides data transfer objects for HTTP request and response handling.
package dto

// EncryptResponse contains the result of a protect operation.
type EncryptResponse struct {
	Envelope string `json:"envelope"` // JSON envelope: {salt, iv, ciphertext, mac}
}

// DecryptResponse contains the result of a recover operation.
// SECURITY: The Value field contains sensitive data and should be transmitted over HTTPS.
type DecryptResponse struct {
	Value string `json:"value"`
}

// GenerateKeyResponse contains a freshly generated random key.
type GenerateKeyResponse struct {
	Key  string `json:"key"` // Base64-encoded key material
	Bits int    `json:"bits"`
}
