package docstore

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrStoreUnavailable wraps any backend failure. Callers degrade to stale or
// empty data instead of crashing.
var ErrStoreUnavailable = errors.New("document store unavailable")

// Store is a keyed document store: profiles are keyed by email, catalog
// entries by product id. Documents are JSON objects regardless of backend.
type Store interface {
	// Get reads the document at collection/key into dest. Returns false
	// when the document does not exist.
	Get(ctx context.Context, collection, key string, dest any) (bool, error)

	// Set writes the document at collection/key. With merge, existing
	// top-level fields not present in record are preserved; without it the
	// document is replaced.
	Set(ctx context.Context, collection, key string, record any, merge bool) error

	// Delete removes the document at collection/key. Deleting a missing
	// document is not an error.
	Delete(ctx context.Context, collection, key string) error

	// ListAll returns every document in a collection as raw JSON.
	ListAll(ctx context.Context, collection string) ([]json.RawMessage, error)
}

// unavailable tags err with ErrStoreUnavailable so callers can match on the
// taxonomy without knowing the backend.
func unavailable(err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(ErrStoreUnavailable, err)
}

// mergeDocs overlays the top-level fields of patch onto base.
func mergeDocs(base, patch map[string]any) map[string]any {
	if base == nil {
		return patch
	}
	for k, v := range patch {
		base[k] = v
	}
	return base
}

// toDoc round-trips record through JSON into a generic map, so every
// backend stores the same field names the JSON tags declare.
func toDoc(record any) (map[string]any, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
