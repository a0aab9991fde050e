package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/alebati123/abshine-storefront/internal/docstore"
)

// Document store collections. Profiles and customer records are keyed by
// email, matching the storefront's identity key.
const (
	ProfilesCollection  = "usuarios"
	CustomersCollection = "clientes"
	ProvincesCollection = "provincias"
)

// Roles a profile can carry.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var ErrProfileNotFound = errors.New("profile not found")

// Profile is the per-account record created at registration.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Customer is the shipping/contact record a signed-in user maintains.
// Saved with merge so partial form submissions never drop fields.
type Customer struct {
	Email     string    `json:"email"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Province  string    `json:"provincia,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Province is one shipping destination option.
type Province struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
}

// Store reads and writes profile data in the remote document store.
type Store struct {
	docs docstore.Store
}

// NewStore creates a profile Store.
func NewStore(docs docstore.Store) *Store {
	return &Store{docs: docs}
}

// Get reads the profile for email.
func (s *Store) Get(ctx context.Context, email string) (Profile, error) {
	var p Profile
	found, err := s.docs.Get(ctx, ProfilesCollection, email, &p)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	if !found {
		return Profile{}, ErrProfileNotFound
	}
	if p.Role == "" {
		p.Role = RoleUser
	}
	return p, nil
}

// Create writes a new profile record.
func (s *Store) Create(ctx context.Context, p Profile) error {
	if p.Role == "" {
		p.Role = RoleUser
	}
	if err := s.docs.Set(ctx, ProfilesCollection, p.Email, p, false); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// SaveCustomer merges a customer record for email.
func (s *Store) SaveCustomer(ctx context.Context, c Customer) error {
	if c.Email == "" {
		return errors.New("customer email is required")
	}
	c.UpdatedAt = time.Now()
	if err := s.docs.Set(ctx, CustomersCollection, c.Email, c, true); err != nil {
		return fmt.Errorf("save customer: %w", err)
	}
	return nil
}

// GetCustomer reads the customer record for email. A missing record is not
// an error; the form simply starts empty.
func (s *Store) GetCustomer(ctx context.Context, email string) (Customer, bool, error) {
	var c Customer
	found, err := s.docs.Get(ctx, CustomersCollection, email, &c)
	if err != nil {
		return Customer{}, false, fmt.Errorf("read customer: %w", err)
	}
	return c, found, nil
}

// ListProvinces returns the shipping destinations, sorted by name.
func (s *Store) ListProvinces(ctx context.Context) ([]Province, error) {
	docs, err := s.docs.ListAll(ctx, ProvincesCollection)
	if err != nil {
		return nil, fmt.Errorf("list provinces: %w", err)
	}

	provinces := make([]Province, 0, len(docs))
	for _, doc := range docs {
		var p Province
		if err := json.Unmarshal(doc, &p); err != nil {
			log.Printf("[Profile] Skipping malformed province document: %v", err)
			continue
		}
		provinces = append(provinces, p)
	}

	sort.Slice(provinces, func(i, j int) bool { return provinces[i].Name < provinces[j].Name })
	return provinces, nil
}
