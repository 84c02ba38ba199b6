package enc

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds. Every error returned by this package unwraps to exactly one of these, so callers can
// use `errors.Is` to branch on the class of failure.
var (
	ErrInvalidAltcharsLength = errors.New("altchars must be exactly 2 bytes long")
	ErrInvalidAlphabet       = errors.New("invalid alphabet")

	ErrOverflow = errors.New("integer overflow when calculating buffer size")

	ErrInvalidByte       = errors.New("invalid byte")
	ErrInvalidPadding    = errors.New("invalid padding")
	ErrInvalidLength     = errors.New("invalid input length")
	ErrInvalidLastSymbol = errors.New("invalid last symbol")
)

// ConfigError is returned when the altchars cannot be turned into a usable alphabet.
type ConfigError struct {
	Kind    error // ErrInvalidAltcharsLength or ErrInvalidAlphabet
	Message string
}

func (e *ConfigError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Kind
}

// SizeError is returned when the output buffer for an input of the given length cannot be sized.
type SizeError struct {
	Length int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%v (input length %d)", ErrOverflow, e.Length)
}

func (e *SizeError) Unwrap() error {
	return ErrOverflow
}

// DecodeError describes malformed Base64 input. Offset is relative to the sequence that was actually
// decoded, which in permissive mode is the filtered input.
type DecodeError struct {
	Kind   error // ErrInvalidByte, ErrInvalidPadding, ErrInvalidLength or ErrInvalidLastSymbol
	Offset int
	Value  byte
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case ErrInvalidByte, ErrInvalidLastSymbol:
		return fmt.Sprintf("%v %q (0x%02x) at offset %d", e.Kind, e.Value, e.Value, e.Offset)
	case ErrInvalidLength:
		return fmt.Sprintf("%v %d, must be a multiple of 4", e.Kind, e.Offset)
	default:
		return fmt.Sprintf("%v at offset %d", e.Kind, e.Offset)
	}
}

func (e *DecodeError) Unwrap() error {
	return e.Kind
}
