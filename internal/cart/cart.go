// Package cart holds the volatile, per-session shopping cart.
package cart

import (
	"errors"

	"github.com/ariefcatur/go-storefront/internal/catalog"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidVariant  = errors.New("variant is not offered for this product")
)

// Line is one cart entry. At most one Line exists per (product id, color,
// fabric); the product is a snapshot taken when the line was created.
type Line struct {
	Product        catalog.Product `json:"product"`
	Quantity       int             `json:"quantity"`
	SelectedColor  string          `json:"selected_color,omitempty"`
	SelectedFabric string          `json:"selected_fabric,omitempty"`
}

func (l Line) matches(id, color, fabric string) bool {
	return l.Product.ID == id && l.SelectedColor == color && l.SelectedFabric == fabric
}

// Cart is not safe for concurrent use; Sessions serializes access.
type Cart struct {
	lines []Line
}

func New() *Cart { return &Cart{} }

// Add merges into an existing line with the same selection or appends a new
// one. Nothing changes when the quantity or variant is invalid.
func (c *Cart) Add(p catalog.Product, quantity int, color, fabric string) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if color != "" && !p.HasColor(color) {
		return ErrInvalidVariant
	}
	if fabric != "" && !p.HasFabric(fabric) {
		return ErrInvalidVariant
	}
	for i := range c.lines {
		if c.lines[i].matches(p.ID, color, fabric) {
			c.lines[i].Quantity += quantity
			return nil
		}
	}
	c.lines = append(c.lines, Line{Product: p, Quantity: quantity, SelectedColor: color, SelectedFabric: fabric})
	return nil
}

// Remove drops every line of the product regardless of variant.
func (c *Cart) Remove(productID string) {
	kept := c.lines[:0]
	for _, l := range c.lines {
		if l.Product.ID != productID {
			kept = append(kept, l)
		}
	}
	clear(c.lines[len(kept):])
	c.lines = kept
}

func (c *Cart) Clear() { c.lines = nil }

func (c *Cart) TotalItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Lines returns a copy; callers may keep it after the cart changes.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int      { return len(c.lines) }
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }
