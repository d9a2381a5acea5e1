package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/teapos/internal/pos"
)

// Role controls which parts of the terminal a session may use.
type Role string

const (
	RoleCashier Role = "cashier"
	RoleManager Role = "manager"
	RoleKiosk   Role = "kiosk"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCashier, RoleManager, RoleKiosk:
		return true
	}
	return false
}

// Session is one terminal session. Each session owns exactly one cart
// and one checkout flow; neither is ever shared across sessions.
type Session struct {
	ID         uuid.UUID
	Role       Role
	EmployeeID int
	Name       string
	Cart       *pos.Cart
	Checkout   *pos.Checkout
	CreatedAt  time.Time
}

// Registry tracks live sessions by ID.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[uuid.UUID]*Session)}
}

// Create registers a new session with a fresh empty cart.
func (r *Registry) Create(role Role, employeeID int, name string) *Session {
	s := &Session{
		ID:         uuid.New(),
		Role:       role,
		EmployeeID: employeeID,
		Name:       name,
		Cart:       pos.NewCart(),
		Checkout:   pos.NewCheckout(),
		CreatedAt:  time.Now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return s
}

// Get looks up a live session.
func (r *Registry) Get(id uuid.UUID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Delete drops a session and its cart.
func (r *Registry) Delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
