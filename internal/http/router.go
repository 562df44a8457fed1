package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/NandakishoreN09/Grabit/internal/user"
)

type RouterDeps struct {
	Menu    *MenuHandler
	Cart    *CartHandler
	Orders  *OrderHandler
	Admin   *AdminHandler
	Profile *ProfileHandler
	Admins  user.AdminRepository

	CORSAllowOrigins []string
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(CORS(deps.CORSAllowOrigins))

	r.Get("/health", healthHandler)

	r.Get("/api/menu", deps.Menu.List)

	// Session-scoped surfaces; identity comes from the auth layer.
	r.Group(func(r chi.Router) {
		r.Use(RequireUser)

		r.Route("/api/cart", func(r chi.Router) {
			r.Get("/", deps.Cart.GetCart)
			r.Delete("/", deps.Cart.ClearCart)
			r.Post("/items", deps.Cart.AddItem)
			r.Patch("/items/{itemId}", deps.Cart.UpdateItem)
			r.Delete("/items/{itemId}", deps.Cart.RemoveItem)
		})

		r.Post("/api/checkout", deps.Cart.Checkout)

		r.Route("/api/orders", func(r chi.Router) {
			r.Get("/", deps.Orders.ListMine)
			r.Get("/stream", deps.Orders.Stream)
			r.Get("/{orderId}", deps.Orders.GetOrder)
		})

		r.Route("/api/profile", func(r chi.Router) {
			r.Get("/", deps.Profile.GetProfile)
			r.Put("/", deps.Profile.PutProfile)
			r.Patch("/name", deps.Profile.UpdateName)
		})

		r.Route("/api/admin", func(r chi.Router) {
			r.Use(RequireAdmin(deps.Admins))

			r.Get("/orders", deps.Admin.ListOrders)
			r.Get("/orders/stream", deps.Admin.Stream)
			r.Post("/orders/{orderId}/advance", deps.Admin.AdvanceStatus)
			r.Post("/orders/{orderId}/revert", deps.Admin.RevertStatus)
		})
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "grabit-storefront",
	})
}
