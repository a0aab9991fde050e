package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/alebati123/abshine-storefront/internal/docstore"
)

var (
	// ErrCatalogUnavailable reports that the remote catalog could not be
	// read. Callers keep their current (possibly empty) snapshot.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrSuperseded reports that a newer load started while this one was
	// in flight; its result was discarded.
	ErrSuperseded = errors.New("catalog load superseded")
)

// Snapshot is a full, immutable copy of the catalog keyed by product id.
type Snapshot struct {
	products map[string]Product
	order    []string
}

// NewSnapshot builds a snapshot from a product list, keeping first-seen
// order for display.
func NewSnapshot(products []Product) *Snapshot {
	snap := &Snapshot{products: make(map[string]Product, len(products))}
	for _, p := range products {
		if _, ok := snap.products[p.ID]; !ok {
			snap.order = append(snap.order, p.ID)
		}
		snap.products[p.ID] = p
	}
	return snap
}

// Lookup returns the product with the given id.
func (s *Snapshot) Lookup(id string) (Product, bool) {
	p, ok := s.products[id]
	return p, ok
}

// Products returns every product in a stable order.
func (s *Snapshot) Products() []Product {
	out := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.products[id])
	}
	return out
}

// Len returns the number of products in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.products)
}

// Loader fetches catalog snapshots from the document store. Every load
// replaces the whole snapshot; there is no partial-update protocol.
type Loader struct {
	store docstore.Store
	cache Cache

	mu        sync.Mutex
	lastBegun uint64
}

// NewLoader creates a Loader. cache may be nil.
func NewLoader(store docstore.Store, cache Cache) *Loader {
	return &Loader{store: store, cache: cache}
}

// Load fetches the full catalog. If another Load begins while this one is
// in flight, the earlier result is discarded and ErrSuperseded returned,
// so a stale response can never overwrite a newer snapshot.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	gen := l.begin()

	products, err := l.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if !l.current(gen) {
		return nil, ErrSuperseded
	}

	snap := NewSnapshot(products)
	log.Printf("[Catalog] Loaded %d products", snap.Len())
	return snap, nil
}

func (l *Loader) begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastBegun++
	return l.lastBegun
}

func (l *Loader) current(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return gen == l.lastBegun
}

func (l *Loader) fetch(ctx context.Context) ([]Product, error) {
	if l.cache != nil {
		products, err := l.cache.Get(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("[Catalog] Cache read failed, falling back to store: %v", err)
		}
	}

	docs, err := l.store.ListAll(ctx, ProductsCollection)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	products := make([]Product, 0, len(docs))
	for _, doc := range docs {
		var p Product
		if err := json.Unmarshal(doc, &p); err != nil {
			log.Printf("[Catalog] Skipping malformed product document: %v", err)
			continue
		}
		if err := p.Validate(); err != nil {
			log.Printf("[Catalog] Skipping invalid product %q: %v", p.ID, err)
			continue
		}
		p.Normalize()
		products = append(products, p)
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, products); err != nil {
			log.Printf("[Catalog] Cache write failed: %v", err)
		}
	}

	return products, nil
}
