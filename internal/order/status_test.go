package order

import (
	"errors"
	"testing"
)

func TestStatusAdvancesLinearly(t *testing.T) {
	s := StatusPreparing

	s, err := s.Next()
	if err != nil || s != StatusReadyForPickup {
		t.Fatalf("expected Ready for Pickup, got %s (%v)", s, err)
	}

	s, err = s.Next()
	if err != nil || s != StatusCompleted {
		t.Fatalf("expected Completed, got %s (%v)", s, err)
	}

	s, err = s.Next()
	if !errors.Is(err, ErrNoNextStatus) {
		t.Fatalf("expected ErrNoNextStatus past Completed, got %v", err)
	}
	if s != StatusCompleted {
		t.Fatalf("rejected advance must not move the status, got %s", s)
	}
}

func TestStatusReverts(t *testing.T) {
	s, err := StatusReadyForPickup.Prev()
	if err != nil || s != StatusPreparing {
		t.Fatalf("expected Preparing, got %s (%v)", s, err)
	}

	s, err = StatusCompleted.Prev()
	if err != nil || s != StatusReadyForPickup {
		t.Fatalf("expected Ready for Pickup, got %s (%v)", s, err)
	}

	s, err = StatusPreparing.Prev()
	if !errors.Is(err, ErrNoPreviousStatus) {
		t.Fatalf("expected ErrNoPreviousStatus from Preparing, got %v", err)
	}
	if s != StatusPreparing {
		t.Fatalf("rejected revert must not move the status, got %s", s)
	}
}

func TestStatusUnknown(t *testing.T) {
	if Status("Shipped").Valid() {
		t.Fatal("unexpected valid status")
	}
	if _, err := Status("Shipped").Next(); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if _, err := Status("Shipped").Prev(); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
