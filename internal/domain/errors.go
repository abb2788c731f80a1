package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAuth: the credential exchange failed or returned a malformed payload.
	ErrAuth = errors.New("auth error")
	// ErrTransport covers network failures and non-2xx responses.
	ErrTransport = errors.New("transport error")
	// ErrNotFound: the referenced order does not exist (remotely or locally).
	ErrNotFound = errors.New("not found")
	// ErrRetryable marks a projection failure that must leave the event unmarked.
	ErrRetryable = errors.New("retryable projection failure")

	ErrInvalidEvent = errors.New("invalid event")
	ErrInvalidInput = errors.New("invalid input")
)

func wrapInvalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidEvent, msg)
}
