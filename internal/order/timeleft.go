package order

import "time"

// PickupSLA is the fixed preparation window promised at checkout.
const PickupSLA = 30 * time.Minute

// TimeLeft derives the remaining pickup countdown in seconds from the
// order's creation millis. Never stored; recomputed per read.
func TimeLeft(timestampMillis int64, now time.Time) int64 {
	elapsed := (now.UnixMilli() - timestampMillis) / 1000
	left := int64(PickupSLA/time.Second) - elapsed
	if left < 0 {
		return 0
	}
	return left
}

// CountdownVisible reports whether the countdown is meaningful for the
// order. Once an order leaves Preparing the timer is suppressed.
func (o *Order) CountdownVisible() bool {
	return o.Status == StatusPreparing
}
