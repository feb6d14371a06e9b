package storage

import "errors"

// Well-known entry keys shared by the session and language stores.
const (
	KeyToken    = "token"
	KeyUser     = "user"
	KeyLanguage = "language"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Store is a small durable key-value store holding the handful of
// client-side entries this application persists between runs.
// Writes are last-write-wins; there is no transaction spanning keys.
type Store interface {
	// Get retrieves the value for key, or ErrNotFound.
	Get(key string) (string, error)

	// Set stores the value for key, overwriting any previous value.
	Set(key, value string) error

	// Delete removes the entry for key. Deleting a missing key is not
	// an error.
	Delete(key string) error
}
