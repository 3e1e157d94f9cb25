package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-storefront/internal/catalog"
	"github.com/ariefcatur/go-storefront/internal/money"
)

const DateLayout = "2006-01-02"

// AdminStore is the order persistence the dashboard needs; *Repo satisfies it.
type AdminStore interface {
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id string) (Order, error)
	Delete(ctx context.Context, id string) error
}

// View is an order as the dashboard shows it. Both totals are exposed;
// DisplayTotal prefers the sum over items and falls back to the stored total
// for records without items.
type View struct {
	Order
	StoredTotal         *money.Price `json:"stored_total"`
	ItemsTotal          money.Price  `json:"items_total"`
	DisplayTotal        money.Price  `json:"display_total"`
	Diverged            bool         `json:"diverged"`
	CustomerWhatsAppURL string       `json:"customer_whatsapp_url"`
}

func Reconcile(o Order, base string) View {
	v := View{Order: o, StoredTotal: o.TotalPrice}
	items := Total(o.Items)
	v.ItemsTotal = money.NewPrice(items)

	stored, ok := o.StoredTotal()
	switch {
	case len(o.Items) > 0:
		v.DisplayTotal = v.ItemsTotal
		v.Diverged = ok && !money.Cents(stored).Equal(items)
	case ok:
		v.DisplayTotal = money.NewPrice(money.Cents(stored))
	default:
		v.DisplayTotal = money.NewPrice(decimal.Zero)
	}

	if d := digits(o.CustomerPhone); d != "" {
		v.CustomerWhatsAppURL = strings.TrimRight(base, "/") + "/" + NormalizePhone(d)
	}
	return v
}

// Filter narrows the admin list by customer name substring and by the UTC
// calendar day of creation. Zero values match everything.
type Filter struct {
	Name string
	Date string
}

func ParseFilter(name, date string) (Filter, error) {
	date = strings.TrimSpace(date)
	if date != "" {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return Filter{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", date)
		}
	}
	return Filter{Name: strings.TrimSpace(name), Date: date}, nil
}

func (f Filter) Match(o Order) bool {
	if f.Name != "" && !strings.Contains(catalog.Fold(o.CustomerName), catalog.Fold(f.Name)) {
		return false
	}
	if f.Date != "" && o.CreatedAt.UTC().Format(DateLayout) != f.Date {
		return false
	}
	return true
}

type Summary struct {
	Count int         `json:"count"`
	Total money.Price `json:"total"`
}

type Listing struct {
	Orders  []View  `json:"orders"`
	Summary Summary `json:"summary"`
}

func Summarize(vs []View) Summary {
	sum := decimal.Zero
	for _, v := range vs {
		sum = sum.Add(v.DisplayTotal.Decimal)
	}
	return Summary{Count: len(vs), Total: money.NewPrice(money.Cents(sum))}
}

type Admin struct {
	Store   AdminStore
	BaseURL string
}

func (a *Admin) List(ctx context.Context, f Filter) (Listing, error) {
	all, err := a.Store.List(ctx)
	if err != nil {
		return Listing{}, err
	}
	vs := make([]View, 0, len(all))
	for _, o := range all {
		if f.Match(o) {
			vs = append(vs, Reconcile(o, a.BaseURL))
		}
	}
	return Listing{Orders: vs, Summary: Summarize(vs)}, nil
}

// All returns every order unfiltered, newest first.
func (a *Admin) All(ctx context.Context) ([]Order, error) {
	return a.Store.List(ctx)
}

func (a *Admin) Get(ctx context.Context, id string) (View, error) {
	o, err := a.Store.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	return Reconcile(o, a.BaseURL), nil
}

func (a *Admin) Delete(ctx context.Context, id string) error {
	return a.Store.Delete(ctx, id)
}
