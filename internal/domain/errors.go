package domain

import (
	"errors"
	"fmt"
)

// ErrWriteDisabled is returned by every adapter write operation. Content
// authoring moved to the provider's own tooling mid-migration; the write path
// is disabled by product policy, not by accident.
var ErrWriteDisabled = errors.New("content writes are disabled: author content in Contentful directly")

// WriteDisabledError carries the blocked operation and kind so callers can
// surface a precise deprecation notice.
type WriteDisabledError struct {
	Operation string
	Kind      Kind
}

func (e *WriteDisabledError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Kind, ErrWriteDisabled)
}

// Unwrap makes errors.Is(err, ErrWriteDisabled) hold for all write blocks.
func (e *WriteDisabledError) Unwrap() error {
	return ErrWriteDisabled
}

// NewWriteDisabledError builds the error returned by a blocked write.
func NewWriteDisabledError(operation string, kind Kind) error {
	return &WriteDisabledError{Operation: operation, Kind: kind}
}

// ProviderError wraps a failure talking to the content provider, preserving
// the original error as the cause. A nil entity with a nil error is the
// not-found result; ProviderError is reserved for transport, auth and
// rate-limit failures.
type ProviderError struct {
	Operation string
	Kind      Kind
	Err       error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s %s: %v", e.Operation, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError wraps err with the failing operation and kind.
func NewProviderError(operation string, kind Kind, err error) error {
	return &ProviderError{Operation: operation, Kind: kind, Err: err}
}
