package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/ariefcatur/go-storefront/internal/money"
)

var (
	ErrNotFound        = errors.New("product not found")
	ErrUnknownCategory = errors.New("unknown category")
)

type Category string

const (
	CategoryAll      Category = ""
	CategorySofa     Category = "sofa"
	CategoryArmchair Category = "armchair"
	CategoryChaise   Category = "chaise"
	CategoryPouf     Category = "pouf"
	CategoryBed      Category = "bed"
)

var Categories = []Category{CategorySofa, CategoryArmchair, CategoryChaise, CategoryPouf, CategoryBed}

// storefront labels used by the Portuguese front end
var categoryAliases = map[string]Category{
	"":         CategoryAll,
	"all":      CategoryAll,
	"todos":    CategoryAll,
	"sofa":     CategorySofa,
	"sofá":     CategorySofa,
	"armchair": CategoryArmchair,
	"poltrona": CategoryArmchair,
	"chaise":   CategoryChaise,
	"pouf":     CategoryPouf,
	"puff":     CategoryPouf,
	"bed":      CategoryBed,
	"cama":     CategoryBed,
}

// ParseCategory maps a query value to a Category. The "all" pseudo-category
// (and the empty string) map to CategoryAll.
func ParseCategory(s string) (Category, error) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return CategoryAll, ErrUnknownCategory
	}
	return c, nil
}

func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// Product is the catalog record. A zero Price means "price on request".
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    Category    `json:"category"`
	Price       money.Price `json:"price"`
	Colors      []string    `json:"colors"`
	Fabrics     []string    `json:"fabrics"`
	Dimensions  string      `json:"dimensions"`
	Images      []string    `json:"images"`
	Active      bool        `json:"active"`
	IsFeatured  bool        `json:"is_featured"`
	CreatedAt   time.Time   `json:"created_at"`
}

func (p Product) Cover() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

func (p Product) PriceOnRequest() bool { return p.Price.IsZero() }

func (p Product) HasColor(c string) bool  { return contains(p.Colors, c) }
func (p Product) HasFabric(f string) bool { return contains(p.Fabrics, f) }

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
