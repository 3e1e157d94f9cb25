package orders

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/ariefcatur/go-storefront/internal/cart"
	"github.com/ariefcatur/go-storefront/internal/money"
	"github.com/ariefcatur/go-storefront/internal/settings"
)

// Store persists orders; *Repo satisfies it.
type Store interface {
	Create(ctx context.Context, o Order) (Order, error)
}

// Notifier announces a saved order to whoever watches the order feed.
type Notifier interface {
	OrderCreated(ctx context.Context, o Order) error
}

// Opener triggers the external handoff. It must not block on delivery.
type Opener interface {
	Open(ctx context.Context, link string)
}

type OpenerFunc func(ctx context.Context, link string)

func (f OpenerFunc) Open(ctx context.Context, link string) { f(ctx, link) }

type SettingsSource interface {
	Current() settings.Settings
}

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

var validate = validator.New()

// Result describes one checkout. Saved is false when the order record could
// not be written; the handoff happened anyway.
type Result struct {
	Order       Order  `json:"order"`
	Saved       bool   `json:"saved"`
	SaveErr     error  `json:"-"`
	Warning     string `json:"warning,omitempty"`
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
	RedirectTo  string `json:"redirect_to"`
}

type Pipeline struct {
	Store       Store
	Settings    SettingsSource
	Notifier    Notifier
	Opener      Opener
	BaseURL     string
	SaveTimeout time.Duration
	Now         func() time.Time
}

// Submit turns the cart into an order and a handoff link. Only an empty cart
// or an incomplete form stop it, and both do so before any side effect. A
// failed save is reported in the result. The cart is cleared exactly once,
// after the handoff.
func (p *Pipeline) Submit(ctx context.Context, c *cart.Cart, form CheckoutForm) (*Result, error) {
	if c == nil || c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	form.trim()
	if err := validate.Struct(form); err != nil {
		return nil, fromValidator(err)
	}

	items := Snapshot(c.Lines())
	total := Total(items)
	order := Order{
		CustomerName:  form.Name,
		CustomerPhone: form.Phone,
		CustomerCity:  form.City,
		Items:         items,
		TotalPrice:    priceOf(total),
		Notes:         form.Notes,
		CreatedAt:     p.now(),
	}

	res := &Result{Order: order, RedirectTo: "/"}
	saved, err := p.save(ctx, order)
	if err != nil {
		log.Printf("[checkout] order not saved, continuing with handoff: %v", err)
		res.SaveErr = err
		res.Warning = "order could not be recorded; the message was still prepared"
	} else {
		res.Order = saved
		res.Saved = true
		p.notify(ctx, saved)
	}

	cfg := p.Settings.Current()
	res.Message = RenderMessage(cfg.StoreName, res.Order)
	res.WhatsAppURL = DeepLink(p.BaseURL, NormalizePhone(cfg.WhatsAppNumber), res.Message)

	if p.Opener != nil {
		p.Opener.Open(ctx, res.WhatsAppURL)
	}
	c.Clear()
	return res, nil
}

func (p *Pipeline) save(ctx context.Context, o Order) (Order, error) {
	if p.Store == nil {
		return Order{}, errors.New("no order store configured")
	}
	if p.SaveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.SaveTimeout)
		defer cancel()
	}
	return p.Store.Create(ctx, o)
}

func (p *Pipeline) notify(ctx context.Context, o Order) {
	if p.Notifier == nil {
		return
	}
	if err := p.Notifier.OrderCreated(ctx, o); err != nil {
		log.Printf("[checkout] notify order %s: %v", o.ID, err)
	}
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now().UTC()
	}
	return time.Now().UTC()
}

func fromValidator(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, fieldName(fe.Field()))
	}
	return &ValidationError{Fields: fields}
}

func fieldName(f string) string {
	switch f {
	case "Name":
		return "customer_name"
	case "Phone":
		return "customer_phone"
	case "City":
		return "customer_city"
	default:
		return strings.ToLower(f)
	}
}

func priceOf(d decimal.Decimal) *money.Price {
	p := money.NewPrice(d)
	return &p
}
