package catalog

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound    = errors.New("product not found")
	ErrInvalidSize = errors.New("invalid size")
)

// Size is one of the fixed package sizes a product is sold in.
type Size string

const (
	Size250g Size = "250g"
	Size500g Size = "500g"
	Size1kg  Size = "1kg"
)

var sizes = []Size{Size250g, Size500g, Size1kg}

func ParseSize(s string) (Size, error) {
	for _, sz := range sizes {
		if string(sz) == s {
			return sz, nil
		}
	}
	return "", errors.Wrapf(ErrInvalidSize, "%q", s)
}

type Product struct {
	ID     string                   `json:"id"`
	Name   string                   `json:"name"`
	Image  string                   `json:"image"`
	Prices map[Size]decimal.Decimal `json:"prices"`
}

// Price returns the unit price for size, or zero when the product is not sold in it.
func (p Product) Price(size Size) decimal.Decimal {
	if price, ok := p.Prices[size]; ok {
		return price
	}
	return decimal.Zero
}
