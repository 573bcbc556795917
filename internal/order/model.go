package order

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/Abhinay142/mom-made-goodies-house/internal/catalog"
)

var (
	ErrNotFound           = errors.New("order not found")
	ErrInvalidPaymentMode = errors.New("invalid payment mode")
)

type PaymentMode string

const (
	PaymentCOD    PaymentMode = "cod"
	PaymentOnline PaymentMode = "online"
)

func ParsePaymentMode(s string) (PaymentMode, error) {
	switch PaymentMode(s) {
	case PaymentCOD, PaymentOnline:
		return PaymentMode(s), nil
	case "":
		return PaymentCOD, nil
	default:
		return "", errors.Wrapf(ErrInvalidPaymentMode, "%q", s)
	}
}

// Label is the human readable name used in customer messages.
func (m PaymentMode) Label() string {
	if m == PaymentCOD {
		return "Cash on Delivery"
	}
	return "Online Payment"
}

// Line is a value snapshot of a cart entry taken when the order was placed.
type Line struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Size      catalog.Size    `json:"size"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Order struct {
	ID          string          `json:"orderId"`
	CustomerID  string          `json:"customerId"`
	Items       []Line          `json:"items"`
	Total       decimal.Decimal `json:"totalAmount"`
	PaymentMode PaymentMode     `json:"paymentMode"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (o *Order) clone() *Order {
	cp := *o
	cp.Items = make([]Line, len(o.Items))
	copy(cp.Items, o.Items)
	return &cp
}
