package catalog

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/alebati123/abshine-storefront/internal/docstore/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(store *mocks.MockDocStore) {
	store.SeedDoc(ProductsCollection, "p1", Product{ID: "p1", Name: "Crema facial", Price: 100, Details: "50ml", Image: "./imagenes/crema.jpg"})
	store.SeedDoc(ProductsCollection, "p2", Product{ID: "p2", Name: "Serum", Price: 2500.50, Details: "30ml", Image: "./imagenes/serum.jpg"})
}

// ============================================
// Snapshot Tests
// ============================================

func TestNewSnapshot_KeepsFirstSeenOrder(t *testing.T) {
	snap := NewSnapshot([]Product{
		{ID: "b", Name: "B", Price: 2},
		{ID: "a", Name: "A", Price: 1},
		{ID: "b", Name: "B v2", Price: 3},
	})

	products := snap.Products()
	require.Len(t, products, 2)
	assert.Equal(t, "b", products[0].ID)
	assert.Equal(t, "B v2", products[0].Name)
	assert.Equal(t, "a", products[1].ID)
	assert.Equal(t, 2, snap.Len())
}

func TestSnapshot_Lookup(t *testing.T) {
	snap := NewSnapshot([]Product{{ID: "p1", Name: "Crema", Price: 100}})

	p, ok := snap.Lookup("p1")
	assert.True(t, ok)
	assert.Equal(t, "Crema", p.Name)

	_, ok = snap.Lookup("missing")
	assert.False(t, ok)
}

// ============================================
// Loader Tests
// ============================================

func TestLoader_Load(t *testing.T) {
	store := mocks.NewMockDocStore()
	seedCatalog(store)
	loader := NewLoader(store, nil)

	snap, err := loader.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, snap.Len())

	p, ok := snap.Lookup("p1")
	require.True(t, ok)
	assert.Equal(t, "Crema facial", p.Name)
	assert.Equal(t, 100.0, p.Price)
}

func TestLoader_Load_EmptyCatalog(t *testing.T) {
	loader := NewLoader(mocks.NewMockDocStore(), nil)

	snap, err := loader.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, snap.Len())
	assert.Empty(t, snap.Products())
}

func TestLoader_Load_StoreError(t *testing.T) {
	store := mocks.NewMockDocStore()
	store.ListErr = assert.AnError
	loader := NewLoader(store, nil)

	_, err := loader.Load(context.Background())

	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestLoader_Load_SkipsMalformedAndInvalidDocs(t *testing.T) {
	store := mocks.NewMockDocStore()
	store.SeedDoc(ProductsCollection, "p1", Product{ID: "p1", Name: "Crema", Price: 100})
	store.SeedDoc(ProductsCollection, "bad", json.RawMessage(`"not an object"`))
	store.SeedDoc(ProductsCollection, "negative", Product{ID: "negative", Name: "Mal", Price: -1})
	loader := NewLoader(store, nil)

	snap, err := loader.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, snap.Len())
	_, ok := snap.Lookup("p1")
	assert.True(t, ok)
}

func TestLoader_Load_NormalizesMissingImage(t *testing.T) {
	store := mocks.NewMockDocStore()
	store.SeedDoc(ProductsCollection, "p3", Product{ID: "p3", Name: "Jabón", Price: 850})
	loader := NewLoader(store, nil)

	snap, err := loader.Load(context.Background())

	require.NoError(t, err)
	p, ok := snap.Lookup("p3")
	require.True(t, ok)
	assert.Equal(t, PlaceholderImage, p.Image)
}

func TestLoader_Load_StaleResultSuperseded(t *testing.T) {
	store := mocks.NewMockDocStore()
	doc, err := json.Marshal(Product{ID: "p1", Name: "Crema", Price: 100})
	require.NoError(t, err)

	firstEntered := make(chan struct{})
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex

	store.ListFn = func(collection string) ([]json.RawMessage, error) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()

		if first {
			close(firstEntered)
			<-release
		}
		return []json.RawMessage{doc}, nil
	}

	loader := NewLoader(store, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	var staleErr error
	go func() {
		defer wg.Done()
		_, staleErr = loader.Load(context.Background())
	}()

	select {
	case <-firstEntered:
	case <-time.After(time.Second):
		t.Fatal("first load never reached the store")
	}

	// A newer load begins and completes while the first is still in flight.
	snap, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Len())

	close(release)
	wg.Wait()

	assert.ErrorIs(t, staleErr, ErrSuperseded)
}

// ============================================
// Product Tests
// ============================================

func TestProduct_Validate(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		wantErr error
	}{
		{"valid", Product{ID: "p1", Name: "Crema", Price: 100}, nil},
		{"free is valid", Product{ID: "p1", Name: "Muestra", Price: 0}, nil},
		{"missing id", Product{Name: "Crema", Price: 100}, ErrInvalidProductID},
		{"missing name", Product{ID: "p1", Price: 100}, ErrInvalidName},
		{"negative price", Product{ID: "p1", Name: "Crema", Price: -0.01}, ErrNegativePrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestProduct_Normalize(t *testing.T) {
	p := Product{ID: "p1", Name: "Crema", Price: 100}
	p.Normalize()
	assert.Equal(t, PlaceholderImage, p.Image)

	withImage := Product{ID: "p1", Name: "Crema", Price: 100, Image: "./imagenes/crema.jpg"}
	withImage.Normalize()
	assert.Equal(t, "./imagenes/crema.jpg", withImage.Image)
}
