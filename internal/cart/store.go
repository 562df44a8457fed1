package cart

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Store holds the live cart of every active session. Mutations are
// strictly ordered per user; the mirror is written after each one, and a
// mirror failure never surfaces to the caller.
type Store struct {
	mu       sync.Mutex
	carts    map[string][]Item
	hydrated map[string]bool
	mirror   Mirror
	logger   zerolog.Logger
}

func NewStore(mirror Mirror, logger zerolog.Logger) *Store {
	return &Store{
		carts:    make(map[string][]Item),
		hydrated: make(map[string]bool),
		mirror:   mirror,
		logger:   logger,
	}
}

// Get returns the current cart, hydrating it from the mirror on first
// access. Missing or unreadable mirror data degrades to an empty cart.
func (s *Store) Get(ctx context.Context, userID string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(ctx, userID)
}

// Add appends a new line with quantity 1, or bumps the quantity of an
// existing line with the same id.
func (s *Store) Add(ctx context.Context, userID string, item Item) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hydrate(ctx, userID)
	items := s.carts[userID]

	found := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		item.Quantity = 1
		items = append(items, item)
	}
	s.carts[userID] = items

	s.persist(ctx, userID)
	return s.snapshot(ctx, userID)
}

// UpdateQuantity sets the line's quantity, clamped to at least 1.
// Absent ids are a no-op; removal is the only way out of the cart.
func (s *Store) UpdateQuantity(ctx context.Context, userID string, itemID, quantity int) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hydrate(ctx, userID)
	items := s.carts[userID]

	if quantity < 1 {
		quantity = 1
	}
	for i := range items {
		if items[i].ID == itemID {
			items[i].Quantity = quantity
			break
		}
	}

	s.persist(ctx, userID)
	return s.snapshot(ctx, userID)
}

// Remove deletes the line with the given id; no-op if absent.
func (s *Store) Remove(ctx context.Context, userID string, itemID int) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hydrate(ctx, userID)
	items := s.carts[userID]

	for i := range items {
		if items[i].ID == itemID {
			s.carts[userID] = append(items[:i], items[i+1:]...)
			break
		}
	}

	s.persist(ctx, userID)
	return s.snapshot(ctx, userID)
}

// Clear empties the cart and removes the mirror entry entirely rather
// than writing an empty list.
func (s *Store) Clear(ctx context.Context, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	s.hydrated[userID] = true

	if err := s.mirror.Delete(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("cart mirror delete failed")
	}
}

// Count returns the derived sum of quantities.
func (s *Store) Count(ctx context.Context, userID string) int {
	return s.Get(ctx, userID).Count()
}

// hydrate loads the mirrored cart once per user. Callers hold s.mu.
func (s *Store) hydrate(ctx context.Context, userID string) {
	if s.hydrated[userID] {
		return
	}
	s.hydrated[userID] = true

	items, err := s.mirror.Load(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("cart mirror load failed, starting empty")
		return
	}
	if len(items) > 0 {
		s.carts[userID] = items
	}
}

// persist writes the full cart to the mirror. Callers hold s.mu.
func (s *Store) persist(ctx context.Context, userID string) {
	if err := s.mirror.Save(ctx, userID, s.carts[userID]); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("cart mirror save failed")
	}
}

// snapshot copies the cart so callers cannot mutate store state.
// Callers hold s.mu.
func (s *Store) snapshot(ctx context.Context, userID string) Cart {
	s.hydrate(ctx, userID)
	items := s.carts[userID]
	out := make([]Item, len(items))
	copy(out, items)
	return Cart{UserID: userID, Items: out}
}
