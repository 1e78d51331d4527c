// Package validation provides custom validation rules for the application.
package validation

import (
	"fmt"
	"strings"

	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/allisson/envseal/internal/crypto/domain"
	apperrors "github.com/allisson/envseal/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// KeyBits validates a requested key length in bits: a positive multiple
// of eight no smaller than the configured minimum.
var KeyBits = validation.By(func(value interface{}) error {
	bits, ok := value.(int)
	if !ok {
		return validation.NewError("validation_key_bits_type", "must be an integer")
	}
	if bits == 0 {
		return nil // Let Required handle the zero value
	}
	if bits < cryptoDomain.MinKeyBits {
		return validation.NewError(
			"validation_key_bits_min",
			fmt.Sprintf("must be at least %d bits", cryptoDomain.MinKeyBits),
		)
	}
	if bits%8 != 0 {
		return validation.NewError("validation_key_bits_multiple", "must be a multiple of 8 bits")
	}
	return nil
})
