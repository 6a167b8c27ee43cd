package domain

import "context"

// Store keys. Each key holds one JSON-encoded collection (or the current
// user), written back whole on every mutation.
const (
	KeyUser            = "user"
	KeyProperties      = "properties"
	KeySavedProperties = "savedProperties"
	KeyReservations    = "reservations"
)

// Store is the persistent key-value adapter. Implementations are synchronous
// and offer no locking or versioning: two writers race and the last write
// wins at whole-collection granularity.
type Store interface {
	// Get returns the raw value under key, or ErrKeyNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set writes the raw value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
