package shop

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/alebati123/abshine-storefront/internal/auth"
	"github.com/alebati123/abshine-storefront/internal/catalog"
	"github.com/alebati123/abshine-storefront/internal/localstore"
	"github.com/alebati123/abshine-storefront/internal/profile"
	"github.com/google/uuid"
)

// Local persistence keys. Cart and session are stored separately so logout
// can clear one without touching the other.
const (
	cartStateKey    = "abshine_cart"
	sessionStateKey = "abshine_user"
)

var (
	ErrProductNotFound = errors.New("product not found")

	// ErrCatalogNotReady rejects cart additions issued before the first
	// catalog snapshot is installed. Deterministic reject, no queueing.
	ErrCatalogNotReady = errors.New("catalog not ready")
)

// Listener observes the state after every mutation. The view layer
// re-projects from the copies it receives.
type Listener func(cart []CartLine, session *Session)

// AddOutcome reports what AddToCart did, so the caller can pick between the
// "added" and "quantity updated" notifications.
type AddOutcome struct {
	Line    CartLine
	Created bool
}

// CheckoutDecision is the next step for a checkout request.
type CheckoutDecision int

const (
	CheckoutReady CheckoutDecision = iota
	CheckoutEmptyCart
	CheckoutLoginRequired
)

// Config assembles a Service.
type Config struct {
	State    localstore.Store
	Provider auth.Provider
	Profiles *profile.Store

	// SessionTTL defaults to DefaultSessionTTL.
	SessionTTL time.Duration

	// Listener may be nil.
	Listener Listener

	// Now is a clock hook for tests; defaults to time.Now.
	Now func() time.Time
}

// Service owns the cart and the authenticated session. It mirrors durable
// local storage, validates cart additions against the installed catalog
// snapshot, and notifies the listener after every mutation.
type Service struct {
	mu       sync.Mutex
	state    localstore.Store
	provider auth.Provider
	profiles *profile.Store
	listener Listener
	ttl      time.Duration
	now      func() time.Time

	snapshot *catalog.Snapshot
	cart     []CartLine
	session  *Session
}

// NewService creates a Service, restores any persisted cart and session,
// and applies the session TTL check.
func NewService(cfg Config) *Service {
	s := &Service{
		state:    cfg.State,
		provider: cfg.Provider,
		profiles: cfg.Profiles,
		listener: cfg.Listener,
		ttl:      cfg.SessionTTL,
		now:      cfg.Now,
	}
	if s.ttl <= 0 {
		s.ttl = DefaultSessionTTL
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.restore()
	s.CheckSessionValidity()
	return s
}

// restore loads persisted state. Absent or corrupt data starts clean.
func (s *Service) restore() {
	var cart []CartLine
	if s.state.Load(cartStateKey, &cart) {
		s.cart = cart
	}

	var sess Session
	if s.state.Load(sessionStateKey, &sess) && sess.Email != "" {
		s.session = &sess
	}
}

// InstallSnapshot replaces the catalog snapshot the cart validates against.
func (s *Service) InstallSnapshot(snap *catalog.Snapshot) {
	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
}

// Ready reports whether a catalog snapshot has been installed.
func (s *Service) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot != nil
}

// AddToCart adds one unit of productID to the cart. A product already in
// the cart gets its quantity incremented; a new one is appended, so display
// order follows add order.
func (s *Service) AddToCart(productID string) (AddOutcome, error) {
	s.mu.Lock()

	if s.snapshot == nil {
		s.mu.Unlock()
		return AddOutcome{}, ErrCatalogNotReady
	}

	product, ok := s.snapshot.Lookup(productID)
	if !ok {
		s.mu.Unlock()
		return AddOutcome{}, ErrProductNotFound
	}

	var outcome AddOutcome
	if i := findLine(s.cart, productID); i >= 0 {
		s.cart[i].Quantity++
		outcome = AddOutcome{Line: s.cart[i]}
	} else {
		line := CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Details:   product.Details,
			Image:     product.Image,
			Quantity:  1,
		}
		s.cart = append(s.cart, line)
		outcome = AddOutcome{Line: line, Created: true}
	}

	s.persistCart()
	cart, sess := s.copyStateLocked()
	s.mu.Unlock()

	s.notify(cart, sess)
	return outcome, nil
}

// RemoveFromCart removes the line for productID. Removing a product that is
// not in the cart is a no-op, not an error.
func (s *Service) RemoveFromCart(productID string) (CartLine, bool) {
	s.mu.Lock()

	i := findLine(s.cart, productID)
	var removed CartLine
	if i >= 0 {
		removed = s.cart[i]
		s.cart = append(s.cart[:i], s.cart[i+1:]...)
	}

	s.persistCart()
	cart, sess := s.copyStateLocked()
	s.mu.Unlock()

	s.notify(cart, sess)
	return removed, i >= 0
}

// UpdateQuantity sets the quantity of the line for productID. A quantity of
// zero or less removes the line. Updating a missing line is a no-op.
func (s *Service) UpdateQuantity(productID string, quantity int) (CartLine, bool) {
	if quantity <= 0 {
		return s.RemoveFromCart(productID)
	}

	s.mu.Lock()

	i := findLine(s.cart, productID)
	var updated CartLine
	if i >= 0 {
		s.cart[i].Quantity = quantity
		updated = s.cart[i]
	}

	s.persistCart()
	cart, sess := s.copyStateLocked()
	s.mu.Unlock()

	s.notify(cart, sess)
	return updated, i >= 0
}

// CartTotal recomputes the cart total.
func (s *Service) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartTotal(s.cart)
}

// CartItemCount recomputes the total quantity across all lines.
func (s *Service) CartItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartItemCount(s.cart)
}

// Lines returns a copy of the cart in display order.
func (s *Service) Lines() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]CartLine, len(s.cart))
	copy(lines, s.cart)
	return lines
}

// CurrentSession returns a copy of the active session, or nil.
func (s *Service) CurrentSession() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	sess := *s.session
	return &sess
}

// Products returns the installed catalog snapshot's products, or nil when
// the catalog has not loaded yet.
func (s *Service) Products() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return nil
	}
	return s.snapshot.Products()
}

// Login authenticates against the provider, fetches the profile for the
// identity and establishes a session. The pending cart is preserved.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	identity, err := s.provider.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	prof, err := s.profiles.Get(ctx, identity.Email)
	if err != nil {
		return nil, err
	}

	return s.establishSession(prof), nil
}

// Register validates the form locally, then creates a credential and a
// profile, and signs the new user in. Validation failures return a
// ValidationErrors without touching the network; provider errors surface on
// the email field.
func (s *Service) Register(ctx context.Context, name, email, password, confirmPassword string) (*Session, error) {
	if errs := validateRegistration(name, email, password, confirmPassword); len(errs) > 0 {
		return nil, errs
	}

	identity, err := s.provider.CreateAccount(ctx, email, password)
	if err != nil {
		return nil, ValidationErrors{"email": err.Error()}
	}

	prof := profile.Profile{Name: name, Email: identity.Email, Role: profile.RoleUser}
	if err := s.profiles.Create(ctx, prof); err != nil {
		return nil, err
	}

	return s.establishSession(prof), nil
}

func (s *Service) establishSession(prof profile.Profile) *Session {
	s.mu.Lock()

	s.session = &Session{
		Name:      prof.Name,
		Email:     prof.Email,
		Role:      prof.Role,
		LoginAt:   s.now(),
		SessionID: uuid.New().String(),
	}
	s.persistSession()
	cart, sess := s.copyStateLocked()
	s.mu.Unlock()

	s.notify(cart, sess)
	return sess
}

// Logout clears the session. The cart survives logout by design. Returns
// the name that was signed in, for the goodbye message.
func (s *Service) Logout() (string, bool) {
	s.mu.Lock()

	if s.session == nil {
		s.mu.Unlock()
		return "", false
	}
	name := s.session.Name
	s.session = nil

	if err := s.state.Delete(sessionStateKey); err != nil {
		log.Printf("[Shop] Failed to clear persisted session: %v", err)
	}
	cart, sess := s.copyStateLocked()
	s.mu.Unlock()

	s.notify(cart, sess)
	return name, true
}

// CheckSessionValidity forces a logout when the session age exceeds the
// TTL. Called at startup and re-checked opportunistically; there is no
// background timer.
func (s *Service) CheckSessionValidity() bool {
	s.mu.Lock()
	expired := s.session != nil && s.session.Expired(s.now(), s.ttl)
	s.mu.Unlock()

	if expired {
		log.Printf("[Shop] Session expired, logging out")
		s.Logout()
	}
	return expired
}

// Checkout decides the next step for a checkout request without mutating
// anything: an empty cart is rejected, an anonymous user is sent to login.
func (s *Service) Checkout() CheckoutDecision {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case len(s.cart) == 0:
		return CheckoutEmptyCart
	case s.session == nil:
		return CheckoutLoginRequired
	default:
		return CheckoutReady
	}
}

// persistCart is best-effort: a failed write is logged and the in-memory
// state stays correct. The next mutation retries.
func (s *Service) persistCart() {
	if err := s.state.Save(cartStateKey, s.cart); err != nil {
		log.Printf("[Shop] Failed to persist cart: %v", err)
	}
}

func (s *Service) persistSession() {
	if err := s.state.Save(sessionStateKey, s.session); err != nil {
		log.Printf("[Shop] Failed to persist session: %v", err)
	}
}

func (s *Service) copyStateLocked() ([]CartLine, *Session) {
	cart := make([]CartLine, len(s.cart))
	copy(cart, s.cart)

	var sess *Session
	if s.session != nil {
		c := *s.session
		sess = &c
	}
	return cart, sess
}

func (s *Service) notify(cart []CartLine, sess *Session) {
	if s.listener != nil {
		s.listener(cart, sess)
	}
}
