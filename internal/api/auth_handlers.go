package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alebati123/abshine-storefront/internal/auth"
	"github.com/alebati123/abshine-storefront/internal/profile"
	"github.com/alebati123/abshine-storefront/internal/shop"
	"github.com/alebati123/abshine-storefront/internal/view"
)

// AuthHandlers handles login, registration, logout and the signed-in
// user's customer record.
type AuthHandlers struct {
	shop     *shop.Service
	profiles *profile.Store
}

// NewAuthHandlers creates an AuthHandlers instance.
func NewAuthHandlers(shopSvc *shop.Service, profiles *profile.Store) *AuthHandlers {
	return &AuthHandlers{shop: shopSvc, profiles: profiles}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Login handles user login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sess, err := h.shop.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, profile.ErrProfileNotFound):
		respondFieldErrors(w, http.StatusUnauthorized, map[string]string{
			"email": "Credenciales incorrectas",
		})
		return
	case err != nil:
		respondJSONError(w, "Login no disponible, intentá de nuevo", http.StatusServiceUnavailable)
		return
	}

	n := view.Welcome(sess.Name)
	respondJSON(w, http.StatusOK, stateResponse{
		View:         view.Project(h.shop.Lines(), h.shop.CurrentSession()),
		Notification: &n,
	})
}

// Register handles user registration
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sess, err := h.shop.Register(r.Context(), req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		var fieldErrs shop.ValidationErrors
		if errors.As(err, &fieldErrs) {
			respondFieldErrors(w, http.StatusUnprocessableEntity, fieldErrs)
			return
		}
		respondJSONError(w, "Registro no disponible, intentá de nuevo", http.StatusServiceUnavailable)
		return
	}

	n := view.RegisteredWelcome(sess.Name)
	respondJSON(w, http.StatusCreated, stateResponse{
		View:         view.Project(h.shop.Lines(), h.shop.CurrentSession()),
		Notification: &n,
	})
}

// Logout handles user logout
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	name, _ := h.shop.Logout()

	n := view.Goodbye(name)
	respondJSON(w, http.StatusOK, stateResponse{
		View:         view.Project(h.shop.Lines(), h.shop.CurrentSession()),
		Notification: &n,
	})
}

// GetCustomer returns the signed-in user's customer record and the
// available provinces.
func (h *AuthHandlers) GetCustomer(w http.ResponseWriter, r *http.Request) {
	sess := h.shop.CurrentSession()
	if sess == nil {
		respondJSONError(w, "Not signed in", http.StatusUnauthorized)
		return
	}

	customer, _, err := h.profiles.GetCustomer(r.Context(), sess.Email)
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	customer.Email = sess.Email

	provinces, err := h.profiles.ListProvinces(r.Context())
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"customer":  customer,
		"provinces": provinces,
	})
}

// SaveCustomer merges the signed-in user's customer record.
func (h *AuthHandlers) SaveCustomer(w http.ResponseWriter, r *http.Request) {
	sess := h.shop.CurrentSession()
	if sess == nil {
		respondJSONError(w, "Not signed in", http.StatusUnauthorized)
		return
	}

	var customer profile.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	customer.Email = sess.Email

	if err := h.profiles.SaveCustomer(r.Context(), customer); err != nil {
		respondJSONError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Datos guardados"})
}
