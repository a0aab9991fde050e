package localstore

// Store is the durable client-side key/value store backing cart and
// session state. Values are JSON-serializable.
type Store interface {
	// Save serializes value and stores it under key.
	Save(key string, value any) error

	// Load deserializes the value stored under key into dest.
	// Missing or malformed data returns false; callers treat that as
	// "no prior state".
	Load(key string, dest any) bool

	// Delete removes the value stored under key.
	Delete(key string) error
}
