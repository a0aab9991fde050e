package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alebati123/abshine-storefront/internal/catalog"
	"github.com/alebati123/abshine-storefront/internal/shop"
	"github.com/alebati123/abshine-storefront/internal/view"
)

// Handlers exposes the storefront operations over HTTP. It is a thin UI
// collaborator: every mutation goes through the shop service and every
// response carries the freshly projected view model.
type Handlers struct {
	shop *shop.Service
}

// NewHandlers creates a Handlers instance.
func NewHandlers(shopSvc *shop.Service) *Handlers {
	return &Handlers{shop: shopSvc}
}

// stateResponse is the standard mutation response: the projected view plus
// an optional toast.
type stateResponse struct {
	View         view.ViewModel     `json:"view"`
	Notification *view.Notification `json:"notification,omitempty"`
}

func (h *Handlers) respondState(w http.ResponseWriter, status int, n *view.Notification) {
	respondJSON(w, status, stateResponse{
		View:         view.Project(h.shop.Lines(), h.shop.CurrentSession()),
		Notification: n,
	})
}

// GetCart renders the current cart and auth panels.
func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	h.shop.CheckSessionValidity()
	h.respondState(w, http.StatusOK, nil)
}

// AddToCart adds one unit of a product.
func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	outcome, err := h.shop.AddToCart(req.ProductID)
	switch {
	case errors.Is(err, shop.ErrCatalogNotReady):
		respondJSONError(w, "Catalog not ready", http.StatusServiceUnavailable)
		return
	case errors.Is(err, shop.ErrProductNotFound):
		n := view.ProductNotFound()
		respondJSON(w, http.StatusNotFound, stateResponse{
			View:         view.Project(h.shop.Lines(), h.shop.CurrentSession()),
			Notification: &n,
		})
		return
	case err != nil:
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	n := view.QuantityUpdated(outcome.Line.Name)
	if outcome.Created {
		n = view.ProductAdded(outcome.Line.Name)
	}
	h.respondState(w, http.StatusOK, &n)
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (h *Handlers) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := extractPathParam(r.URL.Path, "/cart/items/")
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	line, changed := h.shop.UpdateQuantity(productID, req.Quantity)
	var n *view.Notification
	if changed {
		notif := view.QuantityUpdated(line.Name)
		if req.Quantity <= 0 {
			notif = view.ProductRemoved(line.Name)
		}
		n = &notif
	}
	h.respondState(w, http.StatusOK, n)
}

// RemoveFromCart removes a line. Removing an absent product is a no-op.
func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	productID := extractPathParam(r.URL.Path, "/cart/items/")

	line, removed := h.shop.RemoveFromCart(productID)
	var n *view.Notification
	if removed {
		notif := view.ProductRemoved(line.Name)
		n = &notif
	}
	h.respondState(w, http.StatusOK, n)
}

// Checkout reports the next step for the checkout flow.
func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	switch h.shop.Checkout() {
	case shop.CheckoutEmptyCart:
		n := view.CartEmpty()
		respondJSON(w, http.StatusConflict, stateResponse{
			View:         view.Project(h.shop.Lines(), h.shop.CurrentSession()),
			Notification: &n,
		})
	case shop.CheckoutLoginRequired:
		n := view.LoginRequired()
		respondJSON(w, http.StatusUnauthorized, stateResponse{
			View:         view.Project(h.shop.Lines(), h.shop.CurrentSession()),
			Notification: &n,
		})
	default:
		respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// GetProducts lists the installed catalog snapshot.
func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	if !h.shop.Ready() {
		respondJSONError(w, "Catalog not ready", http.StatusServiceUnavailable)
		return
	}

	products := h.shop.Products()
	if products == nil {
		products = []catalog.Product{}
	}
	respondJSON(w, http.StatusOK, products)
}
