package catalog

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
)

type Catalog interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, productID string) (Product, error)
}

type StaticCatalog struct {
	products map[string]Product
}

func NewStaticCatalog(products ...Product) *StaticCatalog {
	c := &StaticCatalog{products: make(map[string]Product, len(products))}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *StaticCatalog) List(ctx context.Context) ([]Product, error) {
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (c *StaticCatalog) Get(ctx context.Context, productID string) (Product, error) {
	p, ok := c.products[productID]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func prices(small, medium, large int64) map[Size]decimal.Decimal {
	return map[Size]decimal.Decimal{
		Size250g: decimal.NewFromInt(small),
		Size500g: decimal.NewFromInt(medium),
		Size1kg:  decimal.NewFromInt(large),
	}
}

// DefaultProducts is the seed catalog served when no external catalog is configured.
func DefaultProducts() []Product {
	return []Product{
		{ID: "basmati-rice", Name: "Basmati Rice", Image: "/images/basmati-rice.jpg", Prices: prices(80, 140, 250)},
		{ID: "turmeric-powder", Name: "Turmeric Powder", Image: "/images/turmeric-powder.jpg", Prices: prices(80, 150, 280)},
		{ID: "red-chilli-powder", Name: "Red Chilli Powder", Image: "/images/red-chilli-powder.jpg", Prices: prices(90, 170, 320)},
		{ID: "coriander-powder", Name: "Coriander Powder", Image: "/images/coriander-powder.jpg", Prices: prices(70, 130, 240)},
		{ID: "mango-pickle", Name: "Mango Pickle", Image: "/images/mango-pickle.jpg", Prices: prices(120, 220, 420)},
	}
}
