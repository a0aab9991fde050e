package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/alebati123/abshine-storefront/internal/docstore"
)

// MockDocStore is an in-memory implementation of docstore.Store for testing.
type MockDocStore struct {
	mu   sync.RWMutex
	data map[string]map[string]json.RawMessage // collection -> key -> document

	// For tracking calls in tests
	GetCalls    []GetCall
	SetCalls    []SetCall
	DeleteCalls []DeleteCall
	ListCalls   []string

	// Errors returned by the corresponding operation when set
	GetErr  error
	SetErr  error
	ListErr error

	// ListFn, when set, replaces the stored-data lookup in ListAll. Lets
	// tests block or reorder in-flight reads.
	ListFn func(collection string) ([]json.RawMessage, error)
}

// GetCall records parameters passed to Get
type GetCall struct {
	Collection string
	Key        string
}

// SetCall records parameters passed to Set
type SetCall struct {
	Collection string
	Key        string
	Record     any
	Merge      bool
}

// DeleteCall records parameters passed to Delete
type DeleteCall struct {
	Collection string
	Key        string
}

// NewMockDocStore creates a new MockDocStore
func NewMockDocStore() *MockDocStore {
	return &MockDocStore{
		data: make(map[string]map[string]json.RawMessage),
	}
}

var _ docstore.Store = (*MockDocStore)(nil)

// Get reads the document at collection/key into dest.
func (m *MockDocStore) Get(ctx context.Context, collection, key string, dest any) (bool, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, GetCall{Collection: collection, Key: key})
	err := m.GetErr
	var raw json.RawMessage
	var ok bool
	if m.data[collection] != nil {
		raw, ok = m.data[collection][key]
	}
	m.mu.Unlock()

	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

// Set writes the document at collection/key.
func (m *MockDocStore) Set(ctx context.Context, collection, key string, record any, merge bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetCalls = append(m.SetCalls, SetCall{Collection: collection, Key: key, Record: record, Merge: merge})
	if m.SetErr != nil {
		return m.SetErr
	}

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	if merge {
		if existing, ok := m.data[collection][key]; ok {
			var base, patch map[string]any
			if json.Unmarshal(existing, &base) == nil && json.Unmarshal(data, &patch) == nil {
				for k, v := range patch {
					base[k] = v
				}
				data, _ = json.Marshal(base)
			}
		}
	}

	if m.data[collection] == nil {
		m.data[collection] = make(map[string]json.RawMessage)
	}
	m.data[collection][key] = data
	return nil
}

// Delete removes the document at collection/key.
func (m *MockDocStore) Delete(ctx context.Context, collection, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, DeleteCall{Collection: collection, Key: key})
	if m.data[collection] != nil {
		delete(m.data[collection], key)
	}
	return nil
}

// ListAll returns every document in a collection.
func (m *MockDocStore) ListAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	m.mu.Lock()
	m.ListCalls = append(m.ListCalls, collection)
	listFn := m.ListFn
	m.mu.Unlock()

	if listFn != nil {
		return listFn(collection)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	docs := make([]json.RawMessage, 0, len(m.data[collection]))
	for _, doc := range m.data[collection] {
		docs = append(docs, doc)
	}
	return docs, nil
}

// SeedDoc stores a document directly without recording the call.
func (m *MockDocStore) SeedDoc(collection, key string, record any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.Marshal(record)
	if err != nil {
		panic(err)
	}
	if m.data[collection] == nil {
		m.data[collection] = make(map[string]json.RawMessage)
	}
	m.data[collection][key] = data
}

// Doc reads a stored document directly without recording the call.
func (m *MockDocStore) Doc(collection, key string, dest any) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	raw, ok := m.data[collection][key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Reset clears all data and recorded calls.
func (m *MockDocStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]map[string]json.RawMessage)
	m.GetCalls = nil
	m.SetCalls = nil
	m.DeleteCalls = nil
	m.ListCalls = nil
	m.GetErr = nil
	m.SetErr = nil
	m.ListErr = nil
	m.ListFn = nil
}
