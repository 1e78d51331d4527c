// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/envseal/internal/validation"
)

// EncryptRequest contains the parameters for protecting a single value.
type EncryptRequest struct {
	Value string `json:"value"`
}

// Validate checks if the encrypt request is valid.
func (r *EncryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// DecryptRequest contains the parameters for recovering a protected value.
type DecryptRequest struct {
	Envelope string `json:"envelope"`
}

// Validate checks if the decrypt request is valid.
func (r *DecryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Envelope,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// GenerateKeyRequest contains the parameters for generating a random key.
// Bits may be omitted; the handler falls back to the default key length.
type GenerateKeyRequest struct {
	Bits int `json:"bits"`
}

// Validate checks if the generate key request is valid.
func (r *GenerateKeyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Bits,
			customValidation.KeyBits,
		),
	)
}
