package services

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/example/teapos/internal/pos"
)

// ErrCatalogUnavailable blocks all ordering until the menu and add-on
// lists have been fetched at least once.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// CatalogService caches the backend's menu and add-on lists. Cart lines
// snapshot prices at insert time, so a stale cache never corrupts an
// existing cart; it only affects new lines.
type CatalogService struct {
	client *BackendClient

	mu          sync.RWMutex
	items       []pos.MenuItem
	itemsByID   map[int]pos.MenuItem
	addOns      []pos.AddOn
	addOnsByID  map[string]pos.AddOn
	loaded      bool
	refreshedAt time.Time
}

// NewCatalogService builds a catalog around the backend client. The
// catalog starts unavailable; call Refresh to load it.
func NewCatalogService(client *BackendClient) *CatalogService {
	return &CatalogService{client: client}
}

// Refresh refetches both lists. The cached snapshot is swapped only if
// both fetches succeed, so a failed refresh keeps serving the last good
// catalog.
func (s *CatalogService) Refresh() error {
	items, err := s.client.FetchMenu()
	if err != nil {
		return err
	}
	addOns, err := s.client.FetchAddOns()
	if err != nil {
		return err
	}

	itemsByID := make(map[int]pos.MenuItem, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}
	addOnsByID := make(map[string]pos.AddOn, len(addOns))
	for _, addOn := range addOns {
		addOnsByID[addOn.ID] = addOn
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.itemsByID = itemsByID
	s.addOns = addOns
	s.addOnsByID = addOnsByID
	s.loaded = true
	s.refreshedAt = time.Now()

	log.Printf("[Catalog] refreshed: %d menu items, %d add-ons", len(items), len(addOns))
	return nil
}

// Ready reports whether the catalog has been loaded at least once.
func (s *CatalogService) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// MenuItems returns the cached menu.
func (s *CatalogService) MenuItems() ([]pos.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return nil, ErrCatalogUnavailable
	}
	items := make([]pos.MenuItem, len(s.items))
	copy(items, s.items)
	return items, nil
}

// AddOns returns the cached add-on list.
func (s *CatalogService) AddOns() ([]pos.AddOn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return nil, ErrCatalogUnavailable
	}
	addOns := make([]pos.AddOn, len(s.addOns))
	copy(addOns, s.addOns)
	return addOns, nil
}

// MenuItem looks up a cached menu item by ID.
func (s *CatalogService) MenuItem(id int) (pos.MenuItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return pos.MenuItem{}, false
	}
	item, ok := s.itemsByID[id]
	return item, ok
}

// AddOnIndex returns a copy of the add-on price lookup used by the
// customization resolver.
func (s *CatalogService) AddOnIndex() map[string]pos.AddOn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index := make(map[string]pos.AddOn, len(s.addOnsByID))
	for id, addOn := range s.addOnsByID {
		index[id] = addOn
	}
	return index
}

// RefreshedAt reports when the catalog was last loaded.
func (s *CatalogService) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}
