package cart

import (
	"github.com/shopspring/decimal"

	"github.com/Abhinay142/mom-made-goodies-house/internal/catalog"
)

type Item struct {
	Product  catalog.Product `json:"product"`
	Size     catalog.Size    `json:"size"`
	Quantity int             `json:"quantity"`
}

func (it Item) UnitPrice() decimal.Decimal {
	return it.Product.Price(it.Size)
}

func (it Item) Subtotal() decimal.Decimal {
	return it.UnitPrice().Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Line is the read model of an item as shown on the cart page.
type Line struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Size      catalog.Size    `json:"size"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func (it Item) Line() Line {
	return Line{
		ProductID: it.Product.ID,
		Name:      it.Product.Name,
		Image:     it.Product.Image,
		Size:      it.Size,
		Quantity:  it.Quantity,
		UnitPrice: it.UnitPrice(),
		Subtotal:  it.Subtotal(),
	}
}

type key struct {
	productID string
	size      catalog.Size
}
