package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 15 * time.Second

// NewRouter returns the base router. Handlers attach their routes through
// Register; everything except the websocket feed runs under a request timeout.
func NewRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func timed(r chi.Router) chi.Router {
	return r.With(middleware.Timeout(requestTimeout))
}

// Server groups the handlers behind one router. Admin routes share a single
// session gate.
type Server struct {
	Catalog  *CatalogHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Settings *SettingsHandler
	Auth     *AuthHandler
	Products *ProductsAdminHandler
	Orders   *OrdersAdminHandler
}

func (s *Server) Routes() *chi.Mux {
	r := NewRouter()
	s.Catalog.Register(r)
	s.Cart.Register(r)
	s.Checkout.Register(r)
	s.Settings.Register(r)
	s.Auth.Register(r)

	r.Group(func(r chi.Router) {
		r.Use(s.Auth.Auth.RequireSession)
		s.Products.Register(r)
		s.Orders.Register(r)
		s.Settings.RegisterAdmin(r)
	})
	return r
}
