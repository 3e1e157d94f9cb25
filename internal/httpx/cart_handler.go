package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-storefront/internal/cart"
	"github.com/ariefcatur/go-storefront/internal/catalog"
	"github.com/ariefcatur/go-storefront/internal/money"
	"github.com/ariefcatur/go-storefront/internal/orders"
)

const cartCookie = "cart_session"

type CartHandler struct {
	Sessions *cart.Sessions
	Catalog  *catalog.Service
}

func (h *CartHandler) Register(r chi.Router) {
	r = timed(r)
	r.Get("/cart", h.get)
	r.Post("/cart/items", h.add)
	r.Delete("/cart/items/{productID}", h.remove)
	r.Delete("/cart", h.clear)
}

// sessionID returns the caller's cart session, issuing a cookie for new
// sessions.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(cartCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := cart.NewSessionID()
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

type cartView struct {
	Lines      []cart.Line `json:"lines"`
	TotalItems int         `json:"total_items"`
	Total      money.Price `json:"total"`
}

func viewOf(c *cart.Cart) cartView {
	lines := c.Lines()
	if lines == nil {
		lines = []cart.Line{}
	}
	return cartView{
		Lines:      lines,
		TotalItems: c.TotalItemCount(),
		Total:      money.NewPrice(orders.Total(orders.Snapshot(lines))),
	}
}

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request) {
	var v cartView
	_ = h.Sessions.With(sessionID(w, r), func(c *cart.Cart) error {
		v = viewOf(c)
		return nil
	})
	writeJSON(w, http.StatusOK, v)
}

type addItemReq struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity"`
	Color     string `json:"color"`
	Fabric    string `json:"fabric"`
}

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	var req addItemReq
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "missing product_id")
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Catalog.Get(ctx, req.ProductID)
	if err != nil {
		fail(w, "cart", err)
		return
	}

	var v cartView
	err = h.Sessions.With(sessionID(w, r), func(c *cart.Cart) error {
		if err := c.Add(p, qty, req.Color, req.Fabric); err != nil {
			return err
		}
		v = viewOf(c)
		return nil
	})
	if err != nil {
		fail(w, "cart", err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")
	var v cartView
	_ = h.Sessions.With(sessionID(w, r), func(c *cart.Cart) error {
		c.Remove(id)
		v = viewOf(c)
		return nil
	})
	writeJSON(w, http.StatusOK, v)
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request) {
	var v cartView
	_ = h.Sessions.With(sessionID(w, r), func(c *cart.Cart) error {
		c.Clear()
		v = viewOf(c)
		return nil
	})
	writeJSON(w, http.StatusOK, v)
}
