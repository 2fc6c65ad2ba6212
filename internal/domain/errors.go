package domain

import (
	"errors"
	"fmt"
)

// ValidationError is a user-correctable problem with the request.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

type NotFoundError struct {
	Symbol string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s is not in the portfolio", e.Symbol)
}

func IsNotFoundError(err error) bool {
	var notFoundError *NotFoundError
	return errors.As(err, &notFoundError)
}

type InsufficientQuantityError struct {
	Symbol    string
	Held      int64
	Requested int64
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("cannot sell %d shares of %s: only %d held", e.Requested, e.Symbol, e.Held)
}

// UpstreamError wraps a failure of the external quote provider.
type UpstreamError struct {
	Provider string
	Symbol   string
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s request for %s failed: %v", e.Provider, e.Symbol, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func IsUpstreamError(err error) bool {
	var upstreamError *UpstreamError
	return errors.As(err, &upstreamError)
}
