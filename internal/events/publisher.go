package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/Abhinay142/mom-made-goodies-house/internal/order"
)

const (
	EventsExchange        = "ecommerce.events"
	OrderPlacedRoutingKey = "order.placed.v1"
	producerName          = "storefront"
	publishTimeout        = 3 * time.Second
)

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	ch     channel
	logger logrus.FieldLogger
	now    func() time.Time
}

func Dial(url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "connect to RabbitMQ")
	}
	return conn, nil
}

func NewPublisher(conn *amqp.Connection, logger logrus.FieldLogger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, errors.Wrap(err, "open channel")
	}
	return newPublisher(ch, logger)
}

func newPublisher(ch channel, logger logrus.FieldLogger) (*Publisher, error) {
	if err := declareEventsExchange(ch); err != nil {
		_ = ch.Close()
		return nil, errors.Wrapf(err, "declare exchange %s", EventsExchange)
	}
	return &Publisher{
		ch:     ch,
		logger: logger,
		now:    time.Now,
	}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

// PublishOrderPlaced implements order.EventPublisher.
func (p *Publisher) PublishOrderPlaced(ctx context.Context, o *order.Order) error {
	env := BuildOrderPlacedEnvelope(o, EnvelopeMetadata{CorrelationID: CorrelationIDFromContext(ctx)}, p.now())
	if err := env.Validate(orderPlacedEventName, orderPlacedEventVersion); err != nil {
		return errors.Wrap(err, "invalid OrderPlaced")
	}

	body, err := json.Marshal(env)
	if err != nil {
		return errors.Wrap(err, "marshal OrderPlaced")
	}

	if err := p.publishJSON(ctx, OrderPlacedRoutingKey, env.EventID, env.CorrelationID, body); err != nil {
		return errors.Wrap(err, "publish OrderPlaced")
	}

	p.logger.WithFields(logrus.Fields{
		"orderId":       o.ID,
		"eventId":       env.EventID,
		"correlationId": env.CorrelationID,
	}).Debug("published OrderPlaced")
	return nil
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey, messageID, correlationID string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     messageID,
			CorrelationId: correlationID,
			Timestamp:     p.now().UTC(),
			Body:          body,
		},
	)
}

func declareEventsExchange(ch channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}
