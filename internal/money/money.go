// Package money holds the storefront's price handling: lenient decoding of
// stored prices and Brazilian Real formatting.
package money

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Price decodes from a JSON number, a numeric string or null. Anything that
// is not a number decodes to zero instead of failing the whole document.
type Price struct {
	decimal.Decimal
}

func NewPrice(d decimal.Decimal) Price { return Price{Decimal: d} }

func PriceFromFloat(f float64) Price { return Price{Decimal: decimal.NewFromFloat(f)} }

// Coerce converts an arbitrary decoded value to a decimal; unsupported or
// non-numeric values become zero.
func Coerce(v any) decimal.Decimal {
	switch x := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return x
	case Price:
		return x.Decimal
	case float64:
		return decimal.NewFromFloat(x)
	case float32:
		return decimal.NewFromFloat32(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int64:
		return decimal.NewFromInt(x)
	case json.Number:
		return parse(string(x))
	case string:
		return parse(x)
	default:
		return decimal.Zero
	}
}

func parse(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		p.Decimal = decimal.Zero
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			p.Decimal = decimal.Zero
			return nil
		}
		p.Decimal = parse(s)
		return nil
	}
	p.Decimal = parse(string(b))
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}

// Cents rounds to two decimal places, half away from zero.
func Cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
