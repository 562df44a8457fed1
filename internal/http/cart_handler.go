package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/NandakishoreN09/Grabit/internal/cart"
	"github.com/NandakishoreN09/Grabit/internal/checkout"
	"github.com/NandakishoreN09/Grabit/internal/menu"
)

type CartStore interface {
	Get(ctx context.Context, userID string) cart.Cart
	Add(ctx context.Context, userID string, item cart.Item) cart.Cart
	UpdateQuantity(ctx context.Context, userID string, itemID, quantity int) cart.Cart
	Remove(ctx context.Context, userID string, itemID int) cart.Cart
	Clear(ctx context.Context, userID string)
}

type CheckoutService interface {
	Checkout(ctx context.Context, userID string) (*checkout.Result, error)
}

type CartHandler struct {
	carts    CartStore
	menu     menu.Repository
	checkout CheckoutService
}

func NewCartHandler(carts CartStore, menuRepo menu.Repository, checkoutSvc CheckoutService) *CartHandler {
	return &CartHandler{carts: carts, menu: menuRepo, checkout: checkoutSvc}
}

type cartResponse struct {
	UserID string      `json:"userId"`
	Items  []cart.Item `json:"items"`
	Count  int         `json:"count"`
	Total  float64     `json:"total"`
}

func toCartResponse(c cart.Cart) cartResponse {
	if c.Items == nil {
		c.Items = []cart.Item{}
	}
	return cartResponse{UserID: c.UserID, Items: c.Items, Count: c.Count(), Total: c.Total()}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	writeJSON(w, http.StatusOK, toCartResponse(h.carts.Get(r.Context(), userID)))
}

// AddItem resolves the menu item server-side so clients cannot invent
// prices, then adds one unit to the cart.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	var body struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	it, err := h.menu.GetByID(ctx, body.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load menu item")
		return
	}
	if it == nil {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}

	c := h.carts.Add(ctx, userID, cart.Item{
		ID:    it.ID,
		Name:  it.Name,
		Price: it.Price,
		Image: it.Image,
	})
	writeJSON(w, http.StatusOK, toCartResponse(c))
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	itemID, err := strconv.Atoi(chi.URLParam(r, "itemId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	c := h.carts.UpdateQuantity(r.Context(), userID, itemID, body.Quantity)
	writeJSON(w, http.StatusOK, toCartResponse(c))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	itemID, err := strconv.Atoi(chi.URLParam(r, "itemId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	c := h.carts.Remove(r.Context(), userID, itemID)
	writeJSON(w, http.StatusOK, toCartResponse(c))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())
	h.carts.Clear(r.Context(), userID)
	writeJSON(w, http.StatusOK, toCartResponse(cart.Cart{UserID: userID}))
}

func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := h.checkout.Checkout(ctx, userID)
	if err != nil {
		var pe *checkout.PersistenceError
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			writeError(w, http.StatusBadRequest, "your cart is empty")
		case errors.As(err, &pe):
			writeError(w, http.StatusBadGateway, "failed to place order, please retry")
		default:
			writeError(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, result)
}
