package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/alebati123/abshine-storefront/internal/catalog"
	"github.com/alebati123/abshine-storefront/internal/shop"
)

// AdminHandlers exposes catalog writes, gated on the admin role.
type AdminHandlers struct {
	shop  *shop.Service
	admin *catalog.Admin

	// Reload refetches the catalog snapshot after a write. May be nil.
	Reload func(ctx context.Context) error
}

// NewAdminHandlers creates an AdminHandlers instance.
func NewAdminHandlers(shopSvc *shop.Service, admin *catalog.Admin) *AdminHandlers {
	return &AdminHandlers{shop: shopSvc, admin: admin}
}

func (h *AdminHandlers) authorize(w http.ResponseWriter) bool {
	if !h.shop.CurrentSession().IsAdmin() {
		respondJSONError(w, "Admin role required", http.StatusForbidden)
		return false
	}
	return true
}

// SaveProduct creates or updates a catalog product.
func (h *AdminHandlers) SaveProduct(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w) {
		return
	}

	var product catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	saved, err := h.admin.SaveProduct(r.Context(), product)
	switch {
	case errors.Is(err, catalog.ErrInvalidName), errors.Is(err, catalog.ErrNegativePrice):
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		respondJSONError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	h.reload(r.Context())
	respondJSON(w, http.StatusOK, saved)
}

// DeleteProduct removes a catalog product.
func (h *AdminHandlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w) {
		return
	}

	productID := extractPathParam(r.URL.Path, "/admin/products/")
	if productID == "" {
		respondJSONError(w, "Product id required", http.StatusBadRequest)
		return
	}

	if err := h.admin.DeleteProduct(r.Context(), productID); err != nil {
		respondJSONError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	h.reload(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}

func (h *AdminHandlers) reload(ctx context.Context) {
	if h.Reload == nil {
		return
	}
	if err := h.Reload(ctx); err != nil && !errors.Is(err, catalog.ErrSuperseded) {
		log.Printf("[API] Catalog reload after admin write failed: %v", err)
	}
}
