// Package errors defines the domain error values shared across services.
package errors

import "fmt"

// DomainError carries a stable machine code plus a human-readable message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New returns a DomainError with the given code and message.
func New(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}
