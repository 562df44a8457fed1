package order

import "errors"

type Status string

const (
	StatusPreparing      Status = "Preparing"
	StatusReadyForPickup Status = "Ready for Pickup"
	StatusCompleted      Status = "Completed"
)

var (
	ErrNoNextStatus     = errors.New("order is already completed")
	ErrNoPreviousStatus = errors.New("order has not left preparing")
)

// statusOrder is the strictly linear progression; no branching, no skipping.
var statusOrder = []Status{StatusPreparing, StatusReadyForPickup, StatusCompleted}

func (s Status) Valid() bool {
	for _, v := range statusOrder {
		if s == v {
			return true
		}
	}
	return false
}

// Next returns the following status, or ErrNoNextStatus from Completed.
func (s Status) Next() (Status, error) {
	for i, v := range statusOrder {
		if s != v {
			continue
		}
		if i == len(statusOrder)-1 {
			return s, ErrNoNextStatus
		}
		return statusOrder[i+1], nil
	}
	return s, errors.New("unknown status: " + string(s))
}

// Prev returns the preceding status, or ErrNoPreviousStatus from Preparing.
func (s Status) Prev() (Status, error) {
	for i, v := range statusOrder {
		if s != v {
			continue
		}
		if i == 0 {
			return s, ErrNoPreviousStatus
		}
		return statusOrder[i-1], nil
	}
	return s, errors.New("unknown status: " + string(s))
}
