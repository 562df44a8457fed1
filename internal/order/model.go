package order

import "time"

// Item is the persisted projection of a cart line. Price is intentionally
// not stored per item; only the aggregate total survives checkout.
type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Order struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Items     []Item    `json:"items"`
	Total     float64   `json:"total"`
	Status    Status    `json:"status"`
	PlacedAt  time.Time `json:"placedAt"`
	Timestamp int64     `json:"timestamp"` // epoch millis at creation
}
