package catalog

import (
	"context"
	"log"
	"time"

	"github.com/alebati123/abshine-storefront/internal/docstore"
	"github.com/google/uuid"
)

// Admin writes the catalog. Saves and deletes go straight to the document
// store; storefront clients pick them up on their next snapshot load or
// through the change feed.
type Admin struct {
	store docstore.Store
	cache Cache
	feed  *Feed
}

// NewAdmin creates an Admin. cache and feed may be nil.
func NewAdmin(store docstore.Store, cache Cache, feed *Feed) *Admin {
	return &Admin{store: store, cache: cache, feed: feed}
}

// SaveProduct creates or updates a product. A product without an id gets a
// generated one.
func (a *Admin) SaveProduct(ctx context.Context, p Product) (Product, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	p.Normalize()

	if err := a.store.Set(ctx, ProductsCollection, p.ID, p, false); err != nil {
		return Product{}, err
	}

	a.afterWrite(ctx, ProductChange{
		Op:        OpSaved,
		ProductID: p.ID,
		Product:   p,
		ChangedAt: time.Now(),
	})
	return p, nil
}

// DeleteProduct removes a product from the catalog.
func (a *Admin) DeleteProduct(ctx context.Context, productID string) error {
	if productID == "" {
		return ErrInvalidProductID
	}

	if err := a.store.Delete(ctx, ProductsCollection, productID); err != nil {
		return err
	}

	a.afterWrite(ctx, ProductChange{
		Op:        OpDeleted,
		ProductID: productID,
		ChangedAt: time.Now(),
	})
	return nil
}

// afterWrite invalidates the cache and announces the change. Both are
// best-effort; the store is the source of truth.
func (a *Admin) afterWrite(ctx context.Context, change ProductChange) {
	if a.cache != nil {
		if err := a.cache.Invalidate(ctx); err != nil {
			log.Printf("[Catalog] Cache invalidation failed: %v", err)
		}
	}
	if a.feed != nil {
		if err := a.feed.Publish(ctx, change); err != nil {
			log.Printf("[Catalog] Failed to publish change for %s: %v", change.ProductID, err)
		}
	}
}
