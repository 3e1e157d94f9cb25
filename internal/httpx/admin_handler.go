package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-storefront/internal/catalog"
)

// ProductsAdminHandler is product CRUD for the dashboard.
type ProductsAdminHandler struct {
	Catalog *catalog.Service
}

// Register expects r to be already gated by an admin session.
func (h *ProductsAdminHandler) Register(r chi.Router) {
	r = timed(r)
	r.Get("/admin/products", h.list)
	r.Post("/admin/products", h.create)
	r.Put("/admin/products/{id}", h.update)
	r.Delete("/admin/products/{id}", h.delete)
}

func (h *ProductsAdminHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ps, err := h.Catalog.ListAll(ctx)
	if err != nil {
		fail(w, "admin-products", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": ps, "count": len(ps)})
}

func (h *ProductsAdminHandler) create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Catalog.Create(ctx, req.input())
	if err != nil {
		fail(w, "admin-products", err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductsAdminHandler) update(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Catalog.Update(ctx, chi.URLParam(r, "id"), req.input())
	if err != nil {
		fail(w, "admin-products", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsAdminHandler) delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.Catalog.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		fail(w, "admin-products", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
