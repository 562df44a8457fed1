package cart

// Item is one cart line. ID is the menu item identity; at most one line
// exists per distinct ID and Quantity never falls below 1.
type Item struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

type Cart struct {
	UserID string `json:"userId"`
	Items  []Item `json:"items"`
}

// Count is the derived sum of quantities, recomputed on every read.
func (c Cart) Count() int {
	total := 0
	for _, it := range c.Items {
		total += it.Quantity
	}
	return total
}

// Total is the sum of price x quantity over all lines.
func (c Cart) Total() float64 {
	total := 0.0
	for _, it := range c.Items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
