package driven

// KVStore is an opaque string key-value store.
// It stands in for browser local storage: values are small, reads and
// writes are synchronous.
type KVStore interface {
	// Get returns the value for key and whether it exists.
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error

	// Keys lists the stored keys with the given prefix, sorted.
	Keys(prefix string) ([]string, error)

	// Close releases resources held by the store.
	Close() error
}
