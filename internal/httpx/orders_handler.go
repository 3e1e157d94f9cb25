package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ariefcatur/go-storefront/internal/cart"
	"github.com/ariefcatur/go-storefront/internal/orders"
)

// CheckoutHandler turns the caller's cart into an order and a handoff link.
type CheckoutHandler struct {
	Sessions *cart.Sessions
	Pipeline *orders.Pipeline
}

func (h *CheckoutHandler) Register(r chi.Router) {
	timed(r).Post("/checkout", h.checkout)
}

func (h *CheckoutHandler) checkout(w http.ResponseWriter, r *http.Request) {
	var form orders.CheckoutForm
	if !decodeJSON(w, r, &form) {
		return
	}

	ctx := orders.WithTrace(r.Context(), middleware.GetReqID(r.Context()))
	var res *orders.Result
	err := h.Sessions.With(sessionID(w, r), func(c *cart.Cart) error {
		var err error
		res, err = h.Pipeline.Submit(ctx, c, form)
		return err
	})
	if err != nil {
		fail(w, "checkout", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// OrdersAdminHandler serves the dashboard's order list.
type OrdersAdminHandler struct {
	Orders *orders.Admin
	Feed   http.Handler
}

// Register expects r to be already gated by an admin session.
func (h *OrdersAdminHandler) Register(r chi.Router) {
	if h.Feed != nil {
		r.Handle("/admin/orders/feed", h.Feed)
	}
	t := timed(r)
	t.Get("/admin/orders", h.list)
	t.Get("/admin/orders/{id}", h.get)
	t.Delete("/admin/orders/{id}", h.delete)
}

func (h *OrdersAdminHandler) list(w http.ResponseWriter, r *http.Request) {
	f, err := orders.ParseFilter(r.URL.Query().Get("q"), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	out, err := h.Orders.List(ctx, f)
	if err != nil {
		fail(w, "admin-orders", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OrdersAdminHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	v, err := h.Orders.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		fail(w, "admin-orders", err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *OrdersAdminHandler) delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Orders.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		fail(w, "admin-orders", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
