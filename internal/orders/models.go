package orders

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-storefront/internal/cart"
	"github.com/ariefcatur/go-storefront/internal/catalog"
	"github.com/ariefcatur/go-storefront/internal/money"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
	ErrNotFound  = errors.New("order not found")
)

// Item is the frozen copy of a cart line kept on the order. It never follows
// later catalog edits.
type Item struct {
	ProductID      string           `json:"id"`
	Name           string           `json:"name"`
	Category       catalog.Category `json:"category,omitempty"`
	Image          string           `json:"image,omitempty"`
	Price          money.Price      `json:"price"`
	Quantity       int              `json:"quantity"`
	SelectedColor  string           `json:"selected_color,omitempty"`
	SelectedFabric string           `json:"selected_fabric,omitempty"`
}

// UnmarshalJSON also reads item records written by the earlier storefront,
// which used camelCase variant keys and kept the product's image list.
func (it *Item) UnmarshalJSON(b []byte) error {
	type plain Item
	var aux struct {
		plain
		LegacyColor  string   `json:"selectedColor"`
		LegacyFabric string   `json:"selectedFabric"`
		LegacyImages []string `json:"images"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*it = Item(aux.plain)
	if it.SelectedColor == "" {
		it.SelectedColor = aux.LegacyColor
	}
	if it.SelectedFabric == "" {
		it.SelectedFabric = aux.LegacyFabric
	}
	if it.Image == "" && len(aux.LegacyImages) > 0 {
		it.Image = aux.LegacyImages[0]
	}
	return nil
}

// Qty is the quantity used for totals. Records written without a quantity
// count as one unit.
func (it Item) Qty() int {
	if it.Quantity <= 0 {
		return 1
	}
	return it.Quantity
}

func (it Item) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Qty())))
}

type Order struct {
	ID            string       `json:"id"`
	CustomerName  string       `json:"customer_name"`
	CustomerPhone string       `json:"customer_phone"`
	CustomerCity  string       `json:"customer_city"`
	Items         []Item       `json:"items"`
	TotalPrice    *money.Price `json:"total_price"`
	Notes         string       `json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// CheckoutForm is what the customer fills in; notes are optional.
type CheckoutForm struct {
	Name  string `json:"customer_name" validate:"required"`
	Phone string `json:"customer_phone" validate:"required"`
	City  string `json:"customer_city" validate:"required"`
	Notes string `json:"notes"`
}

func (f *CheckoutForm) trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.Phone = strings.TrimSpace(f.Phone)
	f.City = strings.TrimSpace(f.City)
	f.Notes = strings.TrimSpace(f.Notes)
}

// StoredTotal reports the total recorded with the order, if any.
func (o Order) StoredTotal() (decimal.Decimal, bool) {
	if o.TotalPrice == nil {
		return decimal.Zero, false
	}
	return o.TotalPrice.Decimal, true
}

// Snapshot copies the cart lines into order items.
func Snapshot(lines []cart.Line) []Item {
	out := make([]Item, 0, len(lines))
	for _, l := range lines {
		out = append(out, Item{
			ProductID:      l.Product.ID,
			Name:           l.Product.Name,
			Category:       l.Product.Category,
			Image:          l.Product.Cover(),
			Price:          l.Product.Price,
			Quantity:       l.Quantity,
			SelectedColor:  l.SelectedColor,
			SelectedFabric: l.SelectedFabric,
		})
	}
	return out
}

// Total sums price times quantity over items, rounded to cents. Prices that
// did not decode as numbers already count as zero.
func Total(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Subtotal())
	}
	return money.Cents(sum)
}
