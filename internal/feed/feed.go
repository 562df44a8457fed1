package feed

import (
	"context"

	"github.com/NandakishoreN09/Grabit/internal/order"
)

// OrderFeed pairs the two read modes for order views: a one-shot fetch
// and a live subscription. Callers pick one explicitly, and every
// subscription comes with its release function.
type OrderFeed interface {
	FetchOnce(ctx context.Context, userID string) ([]order.Order, error)
	FetchAll(ctx context.Context) ([]order.Order, error)
	Subscribe(buffer int) (<-chan Event, func())
}

type orderFeed struct {
	repo order.Repository
	hub  *Hub
}

func NewOrderFeed(repo order.Repository, hub *Hub) OrderFeed {
	return &orderFeed{repo: repo, hub: hub}
}

func (f *orderFeed) FetchOnce(ctx context.Context, userID string) ([]order.Order, error) {
	return f.repo.ListByUser(ctx, userID)
}

func (f *orderFeed) FetchAll(ctx context.Context) ([]order.Order, error) {
	return f.repo.ListAll(ctx)
}

func (f *orderFeed) Subscribe(buffer int) (<-chan Event, func()) {
	return f.hub.Subscribe(buffer)
}
