package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/NandakishoreN09/Grabit/internal/cart"
	"github.com/NandakishoreN09/Grabit/internal/order"
	"github.com/NandakishoreN09/Grabit/internal/user"
)

// ErrEmptyCart rejects a checkout with no items; nothing is written.
var ErrEmptyCart = errors.New("cart is empty")

// PersistenceError reports that the order write (or id allocation)
// failed. The cart is left untouched so the checkout can be retried.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist order: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Result is what the payment/redirect step consumes on success.
type Result struct {
	OrderID string  `json:"orderId"`
	Total   float64 `json:"total"`
}

type CartStore interface {
	Get(ctx context.Context, userID string) cart.Cart
	Clear(ctx context.Context, userID string)
}

type OrderWriter interface {
	Create(ctx context.Context, o *order.Order) error
}

type IDAllocator interface {
	NextOrderID(ctx context.Context) (string, error)
}

type ProfileReader interface {
	Get(ctx context.Context, userID string) (*user.Profile, error)
}

type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, o *order.Order) error
}

// Service turns a cart into a persisted order. The cart is cleared only
// after the write confirms; a failed write leaves it intact.
type Service struct {
	carts     CartStore
	orders    OrderWriter
	ids       IDAllocator
	users     ProfileReader
	publisher EventPublisher
	logger    zerolog.Logger
	now       func() time.Time
}

func NewService(carts CartStore, orders OrderWriter, ids IDAllocator, users ProfileReader, publisher EventPublisher, logger zerolog.Logger) *Service {
	return &Service{
		carts:     carts,
		orders:    orders,
		ids:       ids,
		users:     users,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) Checkout(ctx context.Context, userID string) (*Result, error) {
	c := s.carts.Get(ctx, userID)
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	userName := s.resolveName(ctx, userID)

	orderID, err := s.ids.NextOrderID(ctx)
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}

	now := s.now().UTC()
	o := &order.Order{
		ID:        orderID,
		UserID:    userID,
		UserName:  userName,
		Total:     c.Total(),
		Status:    order.StatusPreparing,
		PlacedAt:  now,
		Timestamp: now.UnixMilli(),
	}
	for _, it := range c.Items {
		o.Items = append(o.Items, order.Item{Name: it.Name, Quantity: it.Quantity})
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, &PersistenceError{Err: err}
	}

	s.carts.Clear(ctx, userID)

	// Best effort; the order is already durable.
	if err := s.publisher.PublishOrderPlaced(ctx, o); err != nil {
		s.logger.Warn().Err(err).Str("order_id", o.ID).Msg("publish OrderPlaced failed")
	}

	s.logger.Info().Str("order_id", o.ID).Str("user_id", userID).Float64("total", o.Total).Msg("order placed")
	return &Result{OrderID: o.ID, Total: o.Total}, nil
}

// resolveName degrades to the sentinel when the profile is absent or the
// lookup fails; a missing name never blocks checkout.
func (s *Service) resolveName(ctx context.Context, userID string) string {
	p, err := s.users.Get(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("profile lookup failed")
		return user.UnknownName
	}
	return user.DisplayName(p)
}
