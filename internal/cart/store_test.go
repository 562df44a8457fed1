package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

type mirrorMock struct {
	LoadFunc   func(ctx context.Context, userID string) ([]Item, error)
	SaveFunc   func(ctx context.Context, userID string, items []Item) error
	DeleteFunc func(ctx context.Context, userID string) error

	saves   int
	deletes int
}

func (m *mirrorMock) Load(ctx context.Context, userID string) ([]Item, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mirrorMock) Save(ctx context.Context, userID string, items []Item) error {
	m.saves++
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, userID, items)
	}
	return nil
}

func (m *mirrorMock) Delete(ctx context.Context, userID string) error {
	m.deletes++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID)
	}
	return nil
}

func newTestStore(mirror Mirror) *Store {
	return NewStore(mirror, zerolog.Nop())
}

func burger() Item {
	return Item{ID: 1, Name: "Burger", Price: 10, Image: "🍔"}
}

func pizza() Item {
	return Item{ID: 2, Name: "Pizza", Price: 12, Image: "🍕"}
}

func TestAddIncrementsExistingLine(t *testing.T) {
	s := newTestStore(&mirrorMock{})
	ctx := context.Background()

	s.Add(ctx, "u1", burger())
	s.Add(ctx, "u1", pizza())
	c := s.Add(ctx, "u1", burger())

	if len(c.Items) != 2 {
		t.Fatalf("expected 2 distinct lines, got %d", len(c.Items))
	}
	if c.Items[0].ID != 1 || c.Items[0].Quantity != 2 {
		t.Fatalf("expected burger quantity 2 at insertion position, got %+v", c.Items[0])
	}
	if c.Count() != 3 {
		t.Fatalf("expected count 3, got %d", c.Count())
	}
}

func TestAddPersistsAfterEveryMutation(t *testing.T) {
	mirror := &mirrorMock{}
	s := newTestStore(mirror)
	ctx := context.Background()

	s.Add(ctx, "u1", burger())
	s.UpdateQuantity(ctx, "u1", 1, 5)
	s.Remove(ctx, "u1", 1)

	if mirror.saves != 3 {
		t.Fatalf("expected 3 mirror saves, got %d", mirror.saves)
	}
}

func TestUpdateQuantityClampsToOne(t *testing.T) {
	s := newTestStore(&mirrorMock{})
	ctx := context.Background()

	s.Add(ctx, "u1", burger())

	for _, q := range []int{0, -1, -100} {
		c := s.UpdateQuantity(ctx, "u1", 1, q)
		if c.Items[0].Quantity != 1 {
			t.Fatalf("quantity %d should clamp to 1, got %d", q, c.Items[0].Quantity)
		}
	}

	c := s.UpdateQuantity(ctx, "u1", 1, 4)
	if c.Items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", c.Items[0].Quantity)
	}
}

func TestUpdateQuantityAbsentIDIsNoop(t *testing.T) {
	s := newTestStore(&mirrorMock{})
	ctx := context.Background()

	s.Add(ctx, "u1", burger())
	c := s.UpdateQuantity(ctx, "u1", 99, 5)

	if len(c.Items) != 1 || c.Items[0].Quantity != 1 {
		t.Fatalf("unexpected cart after absent-id update: %+v", c.Items)
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(&mirrorMock{})
	ctx := context.Background()

	s.Add(ctx, "u1", burger())
	s.Add(ctx, "u1", pizza())

	c := s.Remove(ctx, "u1", 1)
	if len(c.Items) != 1 || c.Items[0].ID != 2 {
		t.Fatalf("unexpected cart after remove: %+v", c.Items)
	}

	c = s.Remove(ctx, "u1", 99)
	if len(c.Items) != 1 {
		t.Fatalf("absent-id remove should be a no-op, got %+v", c.Items)
	}
}

func TestClearDeletesMirrorEntry(t *testing.T) {
	mirror := &mirrorMock{}
	s := newTestStore(mirror)
	ctx := context.Background()

	s.Add(ctx, "u1", burger())
	s.Clear(ctx, "u1")

	if mirror.deletes != 1 {
		t.Fatalf("expected mirror delete, got %d", mirror.deletes)
	}
	if c := s.Get(ctx, "u1"); len(c.Items) != 0 {
		t.Fatalf("expected empty cart after clear, got %+v", c.Items)
	}
}

func TestClearThenRehydrateIsEmpty(t *testing.T) {
	// Simulates a reload: a fresh store over the same mirror.
	mirror := NewMemoryMirror()
	ctx := context.Background()

	first := newTestStore(mirror)
	first.Add(ctx, "u1", burger())
	first.Clear(ctx, "u1")

	second := newTestStore(mirror)
	if c := second.Get(ctx, "u1"); len(c.Items) != 0 {
		t.Fatalf("expected empty cart after rehydration, got %+v", c.Items)
	}
}

func TestHydrationLoadsMirroredCart(t *testing.T) {
	mirror := &mirrorMock{LoadFunc: func(ctx context.Context, userID string) ([]Item, error) {
		return []Item{{ID: 3, Name: "Sushi", Price: 15, Quantity: 2}}, nil
	}}
	s := newTestStore(mirror)

	c := s.Get(context.Background(), "u1")
	if len(c.Items) != 1 || c.Items[0].Quantity != 2 {
		t.Fatalf("expected hydrated cart, got %+v", c.Items)
	}
	if c.Count() != 2 {
		t.Fatalf("expected count 2, got %d", c.Count())
	}
}

func TestHydrationFailureDegradesToEmpty(t *testing.T) {
	mirror := &mirrorMock{LoadFunc: func(ctx context.Context, userID string) ([]Item, error) {
		return nil, errors.New("corrupt mirror data")
	}}
	s := newTestStore(mirror)
	ctx := context.Background()

	if c := s.Get(ctx, "u1"); len(c.Items) != 0 {
		t.Fatalf("expected empty cart on load failure, got %+v", c.Items)
	}

	// The failed load must not be retried into a later surprise hydration.
	c := s.Add(ctx, "u1", burger())
	if len(c.Items) != 1 || c.Items[0].Quantity != 1 {
		t.Fatalf("unexpected cart after add: %+v", c.Items)
	}
}

func TestMirrorSaveFailureNotSurfaced(t *testing.T) {
	mirror := &mirrorMock{SaveFunc: func(ctx context.Context, userID string, items []Item) error {
		return errors.New("mirror down")
	}}
	s := newTestStore(mirror)
	ctx := context.Background()

	c := s.Add(ctx, "u1", burger())
	if len(c.Items) != 1 {
		t.Fatalf("in-memory state should win over mirror failure, got %+v", c.Items)
	}
}

func TestTotal(t *testing.T) {
	s := newTestStore(&mirrorMock{})
	ctx := context.Background()

	s.Add(ctx, "u1", burger())
	s.Add(ctx, "u1", burger())
	c := s.Add(ctx, "u1", Item{ID: 5, Name: "Salad", Price: 9})

	if got := c.Total(); got != 29 {
		t.Fatalf("expected total 29, got %f", got)
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	s := newTestStore(&mirrorMock{})
	ctx := context.Background()

	s.Add(ctx, "u1", burger())
	s.Add(ctx, "u2", pizza())

	if c := s.Get(ctx, "u1"); len(c.Items) != 1 || c.Items[0].ID != 1 {
		t.Fatalf("unexpected u1 cart: %+v", c.Items)
	}
	if c := s.Get(ctx, "u2"); len(c.Items) != 1 || c.Items[0].ID != 2 {
		t.Fatalf("unexpected u2 cart: %+v", c.Items)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestStore(&mirrorMock{})
	ctx := context.Background()

	c := s.Add(ctx, "u1", burger())
	c.Items[0].Quantity = 100

	if got := s.Get(ctx, "u1"); got.Items[0].Quantity != 1 {
		t.Fatalf("caller mutation leaked into store: %+v", got.Items)
	}
}
