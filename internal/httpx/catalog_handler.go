package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-storefront/internal/catalog"
	"github.com/ariefcatur/go-storefront/internal/money"
)

type CatalogHandler struct {
	Catalog *catalog.Service
}

func (h *CatalogHandler) Register(r chi.Router) {
	r = timed(r)
	r.Get("/products", h.list)
	r.Get("/products/{id}", h.get)
}

func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cat, err := catalog.ParseCategory(q.Get("category"))
	if err != nil {
		fail(w, "catalog", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, err := h.Catalog.Browse(ctx, catalog.Query{
		Category: cat,
		Search:   q.Get("q"),
		Sort:     catalog.ParseSort(q.Get("sort")),
	})
	if err != nil {
		fail(w, "catalog", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": ps, "count": len(ps)})
}

func (h *CatalogHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Catalog.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		fail(w, "catalog", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// listField accepts either a JSON array or the editor's comma-separated
// string.
type listField []string

func (l *listField) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = catalog.SplitList(s)
		return nil
	}
	var xs []string
	if err := json.Unmarshal(b, &xs); err != nil {
		return err
	}
	*l = catalog.CleanList(xs)
	return nil
}

type productRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Price       money.Price `json:"price"`
	Colors      listField   `json:"colors"`
	Fabrics     listField   `json:"fabrics"`
	Dimensions  string      `json:"dimensions"`
	Images      listField   `json:"images"`
	Active      *bool       `json:"active"`
	IsFeatured  bool        `json:"is_featured"`
}

func (p productRequest) input() catalog.Input {
	active := true
	if p.Active != nil {
		active = *p.Active
	}
	return catalog.Input{
		Name:        p.Name,
		Description: strings.TrimSpace(p.Description),
		Category:    catalog.Category(strings.TrimSpace(p.Category)),
		Price:       p.Price.Decimal,
		Colors:      p.Colors,
		Fabrics:     p.Fabrics,
		Dimensions:  strings.TrimSpace(p.Dimensions),
		Images:      p.Images,
		Active:      active,
		IsFeatured:  p.IsFeatured,
	}
}
