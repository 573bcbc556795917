package contact

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhinay142/mom-made-goodies-house/internal/cart"
	"github.com/Abhinay142/mom-made-goodies-house/internal/catalog"
	"github.com/Abhinay142/mom-made-goodies-house/internal/handoff"
	"github.com/Abhinay142/mom-made-goodies-house/internal/order"
)

type fakePlacer struct {
	AddOrderFn func(ctx context.Context, items []cart.Item, total decimal.Decimal, mode order.PaymentMode) (*order.Order, error)
}

func (f fakePlacer) AddOrder(ctx context.Context, items []cart.Item, total decimal.Decimal, mode order.PaymentMode) (*order.Order, error) {
	return f.AddOrderFn(ctx, items, total, mode)
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newAction(orders *order.Service) *Action {
	log := quietLogger()
	return NewAction(orders, handoff.New("916304226513", handoff.LoggingLauncher{Logger: log}, log), log)
}

func scenarioCart() *cart.Cart {
	c := cart.New()
	c.Add(catalog.Product{
		ID:     "basmati-rice",
		Name:   "Basmati Rice",
		Prices: map[catalog.Size]decimal.Decimal{catalog.Size1kg: decimal.NewFromInt(250)},
	}, catalog.Size1kg, 2)
	c.Add(catalog.Product{
		ID:     "turmeric-powder",
		Name:   "Turmeric Powder",
		Prices: map[catalog.Size]decimal.Decimal{catalog.Size250g: decimal.NewFromInt(80)},
	}, catalog.Size250g, 1)
	return c
}

func TestInvoke_InquiryByDefault(t *testing.T) {
	ctx := context.Background()
	orders := order.NewService(order.NewMemoryRepository(), nil, quietLogger())
	c := scenarioCart()

	res, err := newAction(orders).Invoke(ctx, c, Options{})
	require.NoError(t, err)

	assert.Equal(t, handoff.InquiryMessage, res.Message)
	assert.Equal(t, handoff.Link("916304226513", handoff.InquiryMessage), res.URL)
	assert.Nil(t, res.Order)
	assert.Equal(t, 2, c.Len())

	list, err := orders.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInvoke_EmptyCartFallsBackToInquiry(t *testing.T) {
	orders := order.NewService(order.NewMemoryRepository(), nil, quietLogger())

	res, err := newAction(orders).Invoke(context.Background(), cart.New(), Options{IncludeOrderDetails: true})
	require.NoError(t, err)

	assert.Equal(t, handoff.InquiryMessage, res.Message)
	assert.Nil(t, res.Order)
}

func TestInvoke_OrderDetails(t *testing.T) {
	ctx := context.Background()
	orders := order.NewService(order.NewMemoryRepository(), nil, quietLogger())
	c := scenarioCart()

	res, err := newAction(orders).Invoke(ctx, c, Options{PaymentMode: order.PaymentOnline, IncludeOrderDetails: true})
	require.NoError(t, err)

	require.NotNil(t, res.Order)
	assert.True(t, res.Order.Total.Equal(decimal.NewFromInt(580)))
	assert.Equal(t, order.PaymentOnline, res.Order.PaymentMode)
	assert.True(t, c.IsEmpty())

	assert.Contains(t, res.Message, "Payment Mode: Online Payment")
	assert.Contains(t, res.Message, "• Basmati Rice (1kg) - Qty: 2 - ₹500")
	assert.Contains(t, res.Message, "• Turmeric Powder (250g) - Qty: 1 - ₹80")
	assert.Contains(t, res.Message, "Total Amount: ₹580")
	assert.Equal(t, handoff.Link("916304226513", res.Message), res.URL)

	stored, err := orders.Get(ctx, res.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Order.CustomerID, stored.CustomerID)
}

func TestInvoke_DefaultsToCashOnDelivery(t *testing.T) {
	orders := order.NewService(order.NewMemoryRepository(), nil, quietLogger())

	res, err := newAction(orders).Invoke(context.Background(), scenarioCart(), Options{IncludeOrderDetails: true})
	require.NoError(t, err)

	assert.Equal(t, order.PaymentCOD, res.Order.PaymentMode)
	assert.Contains(t, res.Message, "Payment Mode: Cash on Delivery")
}

func TestInvoke_OrderFailureKeepsCart(t *testing.T) {
	log := quietLogger()
	a := NewAction(fakePlacer{AddOrderFn: func(ctx context.Context, items []cart.Item, total decimal.Decimal, mode order.PaymentMode) (*order.Order, error) {
		return nil, errors.New("db down")
	}}, handoff.New("916304226513", handoff.LoggingLauncher{Logger: log}, log), log)
	c := scenarioCart()

	_, err := a.Invoke(context.Background(), c, Options{IncludeOrderDetails: true})

	require.Error(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestInvoke_ItemAddedWhileOrderingStaysInCart(t *testing.T) {
	log := quietLogger()
	orders := order.NewService(order.NewMemoryRepository(), nil, log)
	c := scenarioCart()
	ghee := catalog.Product{
		ID:     "desi-ghee",
		Name:   "Desi Ghee",
		Prices: map[catalog.Size]decimal.Decimal{catalog.Size500g: decimal.NewFromInt(320)},
	}
	a := NewAction(fakePlacer{AddOrderFn: func(ctx context.Context, items []cart.Item, total decimal.Decimal, mode order.PaymentMode) (*order.Order, error) {
		c.Add(ghee, catalog.Size500g, 1)
		return orders.AddOrder(ctx, items, total, mode)
	}}, handoff.New("916304226513", handoff.LoggingLauncher{Logger: log}, log), log)

	res, err := a.Invoke(context.Background(), c, Options{IncludeOrderDetails: true})
	require.NoError(t, err)

	assert.NotContains(t, res.Message, "Desi Ghee")
	left := c.Items()
	require.Len(t, left, 1)
	assert.Equal(t, "desi-ghee", left[0].Product.ID)
}

func TestInvoke_OverlappingCallsPlaceOneOrder(t *testing.T) {
	log := quietLogger()
	orders := order.NewService(order.NewMemoryRepository(), nil, log)
	c := scenarioCart()
	h := handoff.New("916304226513", handoff.LoggingLauncher{Logger: log}, log)

	var a *Action
	var inner *Result
	a = NewAction(fakePlacer{AddOrderFn: func(ctx context.Context, items []cart.Item, total decimal.Decimal, mode order.PaymentMode) (*order.Order, error) {
		if inner == nil {
			var err error
			inner, err = a.Invoke(ctx, c, Options{IncludeOrderDetails: true})
			if err != nil {
				return nil, err
			}
		}
		return orders.AddOrder(ctx, items, total, mode)
	}}, h, log)

	outer, err := a.Invoke(context.Background(), c, Options{IncludeOrderDetails: true})
	require.NoError(t, err)

	require.NotNil(t, outer.Order)
	require.NotNil(t, inner)
	assert.Nil(t, inner.Order)
	assert.Equal(t, handoff.InquiryMessage, inner.Message)

	list, err := orders.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
