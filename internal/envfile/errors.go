package envfile

import (
	"github.com/allisson/envseal/internal/errors"
)

var (
	// ErrEmptyFile indicates every input line was blank or whitespace-only.
	// Fatal for the codec run: there is nothing meaningful to protect.
	ErrEmptyFile = errors.Wrap(errors.ErrInvalidInput, "configuration file has no content")

	// ErrInvalidInput indicates the codec received no line sequence at all.
	ErrInvalidInput = errors.Wrap(errors.ErrInvalidInput, "input must be a sequence of text lines")
)
