// internal/application/usecase/cart_events.go
package usecase

import (
	"context"
	"time"

	"github.com/apaluca/ReactRetail/internal/domain/common"
)

const (
	CartEventItemAdded   = "cart.item_added"
	CartEventItemUpdated = "cart.item_updated"
	CartEventItemRemoved = "cart.item_removed"
	CartEventCleared     = "cart.cleared"
)

// CartEvent is published after a cart mutation has been persisted.
type CartEvent struct {
	Type       string
	UserID     string
	ProductID  string
	LineID     string
	Quantity   int
	ItemCount  int
	Total      common.Cents
	OccurredAt time.Time
}

// CartEventPublisher delivers cart events to downstream consumers.
// Publishing is best-effort: a failure never fails the cart mutation.
type CartEventPublisher interface {
	PublishCartEvent(ctx context.Context, ev CartEvent) error
}

// NopCartEventPublisher drops every event.
type NopCartEventPublisher struct{}

func (NopCartEventPublisher) PublishCartEvent(context.Context, CartEvent) error { return nil }
