package catalog

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// PlaceholderImage is used when a product is saved without images so the
// storefront always has a cover.
const PlaceholderImage = "https://picsum.photos/800/600"

// Input is the admin payload for creating or updating a product.
type Input struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Category    Category        `json:"category" validate:"required,oneof=sofa armchair chaise pouf bed"`
	Price       decimal.Decimal `json:"price"`
	Colors      []string        `json:"colors"`
	Fabrics     []string        `json:"fabrics"`
	Dimensions  string          `json:"dimensions"`
	Images      []string        `json:"images" validate:"dive,url"`
	Active      bool            `json:"active"`
	IsFeatured  bool            `json:"is_featured"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize trims list entries, drops empties and applies the placeholder
// image, then validates the result.
func (in *Input) Normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	if c, err := ParseCategory(string(in.Category)); err == nil && c != CategoryAll {
		in.Category = c
	}
	in.Colors = CleanList(in.Colors)
	in.Fabrics = CleanList(in.Fabrics)
	in.Images = CleanList(in.Images)
	if len(in.Images) == 0 {
		in.Images = []string{PlaceholderImage}
	}
	if err := validate.Struct(in); err != nil {
		return fromValidator(err)
	}
	if in.Price.IsNegative() {
		return &ValidationError{Fields: []string{"Price (gte)"}}
	}
	return nil
}

// CleanList trims entries and drops empty ones.
func CleanList(xs []string) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		if t := strings.TrimSpace(x); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SplitList parses the comma-separated form used by the admin editor
// ("Cinza, Bege, ").
func SplitList(s string) []string {
	return CleanList(strings.Split(s, ","))
}
