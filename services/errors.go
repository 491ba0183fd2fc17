package services

import (
	"errors"
	"fmt"
)

// ErrNoImages is returned before any remote call when the request has no photos.
var ErrNoImages = errors.New("no images supplied")

// ErrRemoteCallTimeout marks a remote call that exceeded the configured timeout.
var ErrRemoteCallTimeout = errors.New("remote call timed out")

// RemoteCallError wraps a failed call to the inference service.
type RemoteCallError struct {
	Provider string
	Err      error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("%s remote call failed: %v", e.Provider, e.Err)
}

func (e *RemoteCallError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether the remote call failed on its deadline.
func (e *RemoteCallError) IsTimeout() bool {
	return errors.Is(e.Err, ErrRemoteCallTimeout)
}

// MalformedResponseError means the sanitized reply is not a JSON object.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed JSON response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// MissingFieldError names a required key absent from the reply.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing field: " + e.Field
}

// InvalidFieldError names a key present with a wrong type or value.
type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid field: %s (%s)", e.Field, e.Reason)
}
