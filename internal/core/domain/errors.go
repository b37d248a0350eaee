package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrInvalidInput    = errors.New("invalid input")
)

// ErrorKind classifies why a call to the backend did not succeed.
type ErrorKind string

const (
	KindNone         ErrorKind = "none"
	KindTransport    ErrorKind = "transport"
	KindStatus       ErrorKind = "status"
	KindMalformed    ErrorKind = "malformed"
	KindCanceled     ErrorKind = "canceled"
	KindInvalidInput ErrorKind = "invalid_input"
)

// AuthError is returned for every failed backend exchange.
type AuthError struct {
	Op         string
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *AuthError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s: %s: HTTP %d: %s", e.Op, e.Kind, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %s: HTTP %d", e.Op, e.Kind, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
}

func (e *AuthError) Unwrap() error { return e.Err }

// KindOf extracts the ErrorKind of err. Context errors are KindCanceled and
// anything unclassified is KindTransport.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	}
	return KindTransport
}

// StatusOf returns the backend status code carried by err, or 0.
func StatusOf(err error) int {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return 0
}
