package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/NandakishoreN09/Grabit/internal/feed"
	"github.com/NandakishoreN09/Grabit/internal/order"
)

type OrderHandler struct {
	repo order.Repository
	feed feed.OrderFeed
	now  func() time.Time
}

func NewOrderHandler(repo order.Repository, orderFeed feed.OrderFeed) *OrderHandler {
	return &OrderHandler{repo: repo, feed: orderFeed, now: time.Now}
}

type orderResponse struct {
	order.Order
	TimeLeft *int64 `json:"timeLeft,omitempty"`
}

// toOrderResponse attaches the derived countdown, but only while the
// order is still Preparing; afterwards the timer is meaningless.
func toOrderResponse(o order.Order, now time.Time) orderResponse {
	resp := orderResponse{Order: o}
	if o.CountdownVisible() {
		left := order.TimeLeft(o.Timestamp, now)
		resp.TimeLeft = &left
	}
	if resp.Items == nil {
		resp.Items = []order.Item{}
	}
	return resp
}

func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.feed.FetchOnce(ctx, userID)
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

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	orderID := chi.URLParam(r, "orderId")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.repo.GetByID(ctx, orderID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load order")
		return
	}
	if o == nil || (o.UserID != userID && !IsAdmin(r.Context())) {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(*o, h.now()))
}

// Stream pushes live status changes for the caller's orders over SSE.
// The subscription is released when the client disconnects.
func (h *OrderHandler) Stream(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	streamEvents(w, r, h.feed, func(ev feed.Event) bool {
		return ev.UserID == userID
	})
}

func streamEvents(w http.ResponseWriter, r *http.Request, f feed.OrderFeed, keep func(feed.Event) bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	events, release := f.Subscribe(16)
	defer release()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(25 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			_, _ = w.Write([]byte(": ping\n\n"))
			flusher.Flush()
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !keep(ev) {
				continue
			}
			body, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			_, _ = w.Write([]byte("data: "))
			_, _ = w.Write(body)
			_, _ = w.Write([]byte("\n\n"))
			flusher.Flush()
		}
	}
}
