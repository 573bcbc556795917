package order

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Abhinay142/mom-made-goodies-house/internal/cart"
)

type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, o *Order) error
}

// Service records placed orders. Orders are immutable once created.
type Service struct {
	repo      Repository
	publisher EventPublisher
	logger    logrus.FieldLogger
	now       func() time.Time
}

// NewService wires the order store. publisher may be nil when events are disabled.
func NewService(repo Repository, publisher EventPublisher, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// AddOrder snapshots items by value, stores the new order and returns it.
// The caller is responsible for passing a non-empty cart.
func (s *Service) AddOrder(ctx context.Context, items []cart.Item, total decimal.Decimal, mode PaymentMode) (*Order, error) {
	o := &Order{
		ID:          uuid.NewString(),
		CustomerID:  newCustomerID(),
		Items:       snapshot(items),
		Total:       total,
		PaymentMode: mode,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	log := s.logger.WithFields(logrus.Fields{"orderId": o.ID, "customerId": o.CustomerID})
	log.WithField("total", o.Total.String()).Info("order placed")

	if s.publisher != nil {
		if err := s.publisher.PublishOrderPlaced(ctx, o); err != nil {
			log.WithError(err).Warn("publish order placed")
		}
	}
	return o, nil
}

func (s *Service) Get(ctx context.Context, orderID string) (*Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

func snapshot(items []cart.Item) []Line {
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			Size:      it.Size,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice(),
		})
	}
	return lines
}

func newCustomerID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "CUST-" + strings.ToUpper(id[:8])
}
