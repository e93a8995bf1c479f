package preprocess

import (
	"errors"
	"fmt"
)

// Kind categorizes fatal pipeline failures. A card that cannot be located is
// deliberately not represented here: it is an expected outcome carried by
// detect.Result, never an error.
type Kind string

const (
	// KindInvalidInput marks input that is not a usable image (nil, or an
	// invalid configuration).
	KindInvalidInput Kind = "invalid_input"

	// KindUnsupportedConversion marks a failed color-space conversion.
	KindUnsupportedConversion Kind = "unsupported_conversion"

	// KindImageTooSmall marks input below the 100x100 pixel floor. Strict
	// mode only; bypass mode resolves it by force-resizing instead.
	KindImageTooSmall Kind = "image_too_small"

	// KindEnhancement marks an unexpected numeric failure in the contrast
	// stage.
	KindEnhancement Kind = "enhancement"
)

// Error is a typed pipeline failure with an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// newError builds a typed error without a cause.
func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// wrapError builds a typed error around a cause.
func wrapError(kind Kind, cause error, message string) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// IsKind reports whether err is a pipeline error of the given kind.
func IsKind(err error, kind Kind) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}
