package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrNoToken is returned before any network call when an
	// authenticated endpoint is used while signed out.
	ErrNoToken = errors.New("no authentication token found")

	// ErrAuthentication is returned when the backend rejects the
	// token. The expiry side effects have already run by the time a
	// caller sees it.
	ErrAuthentication = errors.New("authentication expired")

	// ErrInvalidID is returned for blank or placeholder identifiers
	// without hitting the backend.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrMissingID is returned when a create succeeds but the response
	// carries no identifier to address the new record by.
	ErrMissingID = errors.New("created record has no id")
)

// APIError carries a backend-provided failure message and status code.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// validID rejects empty identifiers and the placeholder strings that
// uninitialized form fields produce.
func validID(id string) error {
	if id == "" || id == "undefined" || id == "null" {
		return ErrInvalidID
	}
	return nil
}
