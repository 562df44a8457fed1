package menu

// Item is one entry of the menu catalog. Image is an opaque display
// token the frontend renders as-is.
type Item struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}
