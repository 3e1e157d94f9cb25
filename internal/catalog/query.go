package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

type SortMode string

const (
	SortNewest    SortMode = "newest"
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
)

func ParseSort(s string) SortMode {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	default:
		return SortNewest
	}
}

type Query struct {
	Category Category
	Search   string
	Sort     SortMode
}

// Fold normalizes text for case-insensitive substring matching.
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// Apply filters by category, then by text, then sorts featured products first
// and breaks ties with the selected mode. The input slice is not modified.
func Apply(products []Product, q Query) []Product {
	needle := Fold(strings.TrimSpace(q.Search))

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if q.Category != CategoryAll && p.Category != q.Category {
			continue
		}
		if needle != "" &&
			!strings.Contains(Fold(p.Name), needle) &&
			!strings.Contains(Fold(p.Description), needle) {
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b Product) int {
		if a.IsFeatured != b.IsFeatured {
			if a.IsFeatured {
				return -1
			}
			return 1
		}
		switch q.Sort {
		case SortPriceAsc:
			return a.Price.Cmp(b.Price.Decimal)
		case SortPriceDesc:
			return b.Price.Cmp(a.Price.Decimal)
		default:
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	})
	return out
}
