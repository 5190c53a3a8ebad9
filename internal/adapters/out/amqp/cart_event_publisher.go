// internal/adapters/out/amqp/cart_event_publisher.go
package amqp

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"

	usecase "github.com/apaluca/ReactRetail/internal/application/usecase"
)

const DefaultExchange = "storefront.cart"

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// CartEventPublisher publishes cart events as JSON to a topic exchange.
// The routing key is the event type ("cart.item_added", ...).
type CartEventPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       channel
	exchange string
}

// Dial connects to url and declares a durable topic exchange.
func Dial(url, exchange string) (*CartEventPublisher, error) {
	exchange = strings.TrimSpace(exchange)
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "amqp: dial")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "amqp: open channel")
	}
	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errors.Wrapf(err, "amqp: declare exchange %s", exchange)
	}

	return &CartEventPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func newWithChannel(ch channel, exchange string) *CartEventPublisher {
	return &CartEventPublisher{ch: ch, exchange: exchange}
}

type cartEventMessage struct {
	Type       string  `json:"type"`
	UserID     string  `json:"userId"`
	ProductID  string  `json:"productId,omitempty"`
	LineID     string  `json:"lineId,omitempty"`
	Quantity   int     `json:"quantity"`
	ItemCount  int     `json:"itemCount"`
	Total      float64 `json:"total"`
	OccurredAt string  `json:"occurredAt"`
}

func (p *CartEventPublisher) PublishCartEvent(ctx context.Context, ev usecase.CartEvent) error {
	body, err := json.Marshal(cartEventMessage{
		Type:       ev.Type,
		UserID:     ev.UserID,
		ProductID:  ev.ProductID,
		LineID:     ev.LineID,
		Quantity:   ev.Quantity,
		ItemCount:  ev.ItemCount,
		Total:      ev.Total.Float64(),
		OccurredAt: ev.OccurredAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return errors.Wrap(err, "amqp: marshal cart event")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, p.exchange, ev.Type, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.OccurredAt,
		Type:         ev.Type,
		Body:         body,
	})
	return errors.Wrapf(err, "amqp: publish %s", ev.Type)
}

func (p *CartEventPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var first error
	if p.ch != nil {
		first = p.ch.Close()
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
