package apperrors

import (
	"errors"
	"fmt"
)

// Kind is the stable error classification exposed to the transport boundary.
// The contract is the kind, not any HTTP status code.
type Kind string

const (
	KindIngestion  Kind = "INGESTION_ERROR"
	KindNotFound   Kind = "NOT_FOUND"
	KindRetrieval  Kind = "RETRIEVAL_ERROR"
	KindGeneration Kind = "GENERATION_ERROR"
)

// Error carries a kind, a user-safe message and the wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewIngestion(message string, cause error) *Error {
	return &Error{Kind: KindIngestion, Message: message, Err: cause}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewRetrieval(message string, cause error) *Error {
	return &Error{Kind: KindRetrieval, Message: message, Err: cause}
}

func NewGeneration(message string, cause error) *Error {
	return &Error{Kind: KindGeneration, Message: message, Err: cause}
}

// KindOf extracts the kind from an error chain, or "" for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
