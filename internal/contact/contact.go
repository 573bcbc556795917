package contact

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Abhinay142/mom-made-goodies-house/internal/cart"
	"github.com/Abhinay142/mom-made-goodies-house/internal/checkout"
	"github.com/Abhinay142/mom-made-goodies-house/internal/handoff"
	"github.com/Abhinay142/mom-made-goodies-house/internal/order"
)

type Options struct {
	PaymentMode         order.PaymentMode `json:"paymentMode"`
	IncludeOrderDetails bool              `json:"includeOrderDetails"`
}

type Result struct {
	Message string       `json:"message"`
	URL     string       `json:"url"`
	Order   *order.Order `json:"order,omitempty"`
}

// Action is the quick-contact button. Without order details, or with an empty cart,
// it only opens a general inquiry.
type Action struct {
	orders  checkout.OrderPlacer
	handoff *handoff.Handoff
	logger  logrus.FieldLogger
}

func NewAction(orders checkout.OrderPlacer, h *handoff.Handoff, logger logrus.FieldLogger) *Action {
	return &Action{orders: orders, handoff: h, logger: logger}
}

func (a *Action) Invoke(ctx context.Context, c *cart.Cart, opts Options) (*Result, error) {
	if !opts.IncludeOrderDetails {
		return a.inquiry(ctx), nil
	}
	items := c.Take()
	if len(items) == 0 {
		return a.inquiry(ctx), nil
	}

	mode := opts.PaymentMode
	if mode == "" {
		mode = order.PaymentCOD
	}

	placed, err := a.orders.AddOrder(ctx, items, cart.TotalOf(items), mode)
	if err != nil {
		c.Restore(items)
		return nil, errors.Wrap(err, "place order")
	}

	message := handoff.OrderMessage(placed)
	link := a.handoff.Send(ctx, message)

	a.logger.WithField("orderId", placed.ID).Info("quick contact order sent")
	return &Result{Message: message, URL: link, Order: placed}, nil
}

func (a *Action) inquiry(ctx context.Context) *Result {
	return &Result{
		Message: handoff.InquiryMessage,
		URL:     a.handoff.Send(ctx, handoff.InquiryMessage),
	}
}
