package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/NandakishoreN09/Grabit/internal/feed"
	"github.com/NandakishoreN09/Grabit/internal/order"
)

type StatusPublisher interface {
	PublishOrderStatusChanged(ctx context.Context, orderID, userID string, from, to order.Status) error
}

type AdminHandler struct {
	repo      order.Repository
	feed      feed.OrderFeed
	publisher StatusPublisher
	logger    zerolog.Logger
	now       func() time.Time
}

func NewAdminHandler(repo order.Repository, orderFeed feed.OrderFeed, publisher StatusPublisher, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{repo: repo, feed: orderFeed, publisher: publisher, logger: logger, now: time.Now}
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.feed.FetchAll(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}

	now := h.now()
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o, now))
	}
	writeJSON(w, http.StatusOK, out)
}

// AdvanceStatus moves the order one step forward in the lifecycle.
func (h *AdminHandler) AdvanceStatus(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, order.Status.Next)
}

// RevertStatus moves the order one step back in the lifecycle.
func (h *AdminHandler) RevertStatus(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, order.Status.Prev)
}

func (h *AdminHandler) transition(w http.ResponseWriter, r *http.Request, step func(order.Status) (order.Status, error)) {
	orderID := chi.URLParam(r, "orderId")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.repo.GetByID(ctx, orderID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load order")
		return
	}
	if o == nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	next, err := step(o.Status)
	if err != nil {
		if errors.Is(err, order.ErrNoNextStatus) || errors.Is(err, order.ErrNoPreviousStatus) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "invalid order status")
		return
	}

	if err := h.repo.UpdateStatus(ctx, orderID, next); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update order status")
		return
	}

	// Best effort; readers catch up via fetch if the broker is down.
	if err := h.publisher.PublishOrderStatusChanged(ctx, o.ID, o.UserID, o.Status, next); err != nil {
		h.logger.Warn().Err(err).Str("order_id", o.ID).Msg("publish OrderStatusChanged failed")
	}

	o.Status = next
	writeJSON(w, http.StatusOK, toOrderResponse(*o, h.now()))
}

// Stream pushes every order status change over SSE for the admin panel.
func (h *AdminHandler) Stream(w http.ResponseWriter, r *http.Request) {
	streamEvents(w, r, h.feed, func(feed.Event) bool { return true })
}
