package domain

import (
	"errors"
	"fmt"
)

// Data integrity errors. Match with errors.Is; use errors.As on the typed
// errors below for the offending value.
var (
	ErrClientNotFound          = errors.New("client not found")
	ErrInvalidClientType       = errors.New("unexpected client type")
	ErrClientCreditUnavailable = errors.New("client credit unavailable")
)

// ClientNotFoundError is returned by a client directory for an unknown id.
type ClientNotFoundError struct {
	ID int
}

func (e *ClientNotFoundError) Error() string {
	return fmt.Sprintf("user with id %d does not exist in database", e.ID)
}

func (e *ClientNotFoundError) Is(target error) bool {
	return target == ErrClientNotFound
}

// InvalidClientTypeError carries a tier no credit policy exists for.
type InvalidClientTypeError struct {
	Type ClientType
}

func (e *InvalidClientTypeError) Error() string {
	return fmt.Sprintf("unexpected client type %q", string(e.Type))
}

func (e *InvalidClientTypeError) Is(target error) bool {
	return target == ErrInvalidClientType
}

// ClientCreditUnavailableError is returned by a credit score provider when no
// record exists for the identity.
type ClientCreditUnavailableError struct {
	LastName string
}

func (e *ClientCreditUnavailableError) Error() string {
	return fmt.Sprintf("client %s does not exist", e.LastName)
}

func (e *ClientCreditUnavailableError) Is(target error) bool {
	return target == ErrClientCreditUnavailable
}

