package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrUnavailable indicates there is neither a usable snapshot nor a network connection
	ErrUnavailable = errors.New("no restaurants available")

	// ErrUnexpectedResponse indicates the remote payload did not match the expected envelope
	ErrUnexpectedResponse = errors.New("unexpected response structure")

	// ErrServerOffline indicates the restaurant service is unreachable
	ErrServerOffline = errors.New("restaurant service is unreachable")
)

// TransportError reports a failed remote fetch. StatusCode is zero when the
// request never produced a response.
type TransportError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch data: %d %s", e.StatusCode, e.Status)
	}
	if e.Err != nil {
		return "failed to fetch data: " + e.Err.Error()
	}
	return "failed to fetch data"
}

func (e *TransportError) Unwrap() error { return e.Err }

// StorageError reports a failed read or write against the persistent store.
// It is logged by the snapshot layer and never shown to the user.
type StorageError struct {
	Op  string // "read", "write", "decode", "encode", "delete"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsTransport reports whether err came from the remote fetch
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
