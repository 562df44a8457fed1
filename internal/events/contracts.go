package events

import (
	"time"

	"github.com/NandakishoreN09/Grabit/internal/order"
)

type OrderPlaced struct {
	EventType string           `json:"eventType"`
	EventID   string           `json:"eventId"`
	OrderID   string           `json:"orderId"`
	UserID    string           `json:"userId"`
	UserName  string           `json:"userName"`
	Items     []OrderItemEvent `json:"items"`
	Total     float64          `json:"total"`
	Status    order.Status     `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
}

type OrderItemEvent struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type OrderStatusChanged struct {
	EventType      string       `json:"eventType"`
	EventID        string       `json:"eventId"`
	OrderID        string       `json:"orderId"`
	UserID         string       `json:"userId"`
	PreviousStatus order.Status `json:"previousStatus"`
	Status         order.Status `json:"status"`
	Timestamp      time.Time    `json:"timestamp"`
}
