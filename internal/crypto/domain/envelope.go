package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Envelope is the unit of ciphertext at rest: the KDF salt, the CBC
// initialization vector, the ciphertext, and an HMAC-SHA256 tag computed
// over the other three fields under the derived key.
//
// An envelope is only valid as a whole. Tampering with any field
// invalidates the MAC, so an attacker cannot splice a valid MAC from one
// envelope onto another's ciphertext, nor reuse an old salt/iv pair with
// new ciphertext undetected.
type Envelope struct {
	Salt       []byte
	IV         []byte
	CipherText []byte
	Mac        []byte
}

// envelopeWire is the stable serialized form: a compact JSON object with
// base64-encoded fields. Encode and ParseEnvelope are exact inverses.
type envelopeWire struct {
	Salt       string `json:"salt"`
	IV         string `json:"iv"`
	CipherText string `json:"ciphertext"`
	Mac        string `json:"mac"`
}

// MacInput returns salt||iv||ciphertext, the exact byte sequence the
// envelope MAC is computed over.
func (e *Envelope) MacInput() []byte {
	input := make([]byte, 0, len(e.Salt)+len(e.IV)+len(e.CipherText))
	input = append(input, e.Salt...)
	input = append(input, e.IV...)
	input = append(input, e.CipherText...)
	return input
}

// Encode serializes the envelope to its wire form so it can be embedded
// as a single string value in a configuration file.
func (e *Envelope) Encode() (string, error) {
	wire := envelopeWire{
		Salt:       base64.StdEncoding.EncodeToString(e.Salt),
		IV:         base64.StdEncoding.EncodeToString(e.IV),
		CipherText: base64.StdEncoding.EncodeToString(e.CipherText),
		Mac:        base64.StdEncoding.EncodeToString(e.Mac),
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("failed to encode envelope: %w", err)
	}
	return string(data), nil
}

// ParseEnvelope parses the wire form back into an Envelope.
//
// Returns ErrEmptyInput for empty text and ErrInvalidEnvelopeFormat when
// the text is not a JSON object carrying all four fields as valid base64.
// No field is trusted individually; MAC verification happens later in the
// engine, over the parsed bytes.
func ParseEnvelope(text string) (*Envelope, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}

	var wire envelopeWire
	if err := json.Unmarshal([]byte(text), &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelopeFormat, err)
	}
	if wire.Salt == "" || wire.IV == "" || wire.CipherText == "" || wire.Mac == "" {
		return nil, fmt.Errorf("%w: missing field", ErrInvalidEnvelopeFormat)
	}

	envelope := &Envelope{}
	for _, field := range []struct {
		name    string
		encoded string
		dst     *[]byte
	}{
		{"salt", wire.Salt, &envelope.Salt},
		{"iv", wire.IV, &envelope.IV},
		{"ciphertext", wire.CipherText, &envelope.CipherText},
		{"mac", wire.Mac, &envelope.Mac},
	} {
		raw, err := base64.StdEncoding.DecodeString(field.encoded)
		if err != nil {
			return nil, fmt.Errorf("%w: field %s is not valid base64", ErrInvalidEnvelopeFormat, field.name)
		}
		*field.dst = raw
	}

	if len(envelope.Salt) != SaltSize || len(envelope.IV) != IVSize || len(envelope.Mac) != MacSize {
		return nil, fmt.Errorf("%w: field length mismatch", ErrInvalidEnvelopeFormat)
	}
	if len(envelope.CipherText) == 0 {
		return nil, fmt.Errorf("%w: empty ciphertext", ErrInvalidEnvelopeFormat)
	}

	return envelope, nil
}
