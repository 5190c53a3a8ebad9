// internal/adapters/out/memory/cart_repository.go
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	cartdom "github.com/apaluca/ReactRetail/internal/domain/cart"
)

// CartRepository keeps carts in process memory. Used for local runs and tests.
type CartRepository struct {
	mu    sync.RWMutex
	carts map[string]cartdom.Cart
	now   func() time.Time
}

func NewCartRepository() *CartRepository {
	return &CartRepository{
		carts: make(map[string]cartdom.Cart),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithNow overrides the write clock.
func (r *CartRepository) WithNow(now func() time.Time) *CartRepository {
	if now != nil {
		r.now = now
	}
	return r
}

func (r *CartRepository) GetByUserID(_ context.Context, userID string) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, cartdom.ErrInvalidCart
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.carts[uid]
	if !ok {
		return nil, nil
	}
	out := cloneCart(c)
	return &out, nil
}

func (r *CartRepository) Upsert(_ context.Context, c *cartdom.Cart) error {
	prepared, err := cartdom.PrepareForWrite(c, r.now())
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[prepared.UserID] = cloneCart(prepared)
	*c = prepared
	return nil
}

func (r *CartRepository) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, strings.TrimSpace(userID))
	return nil
}

func cloneCart(c cartdom.Cart) cartdom.Cart {
	out := c
	out.Items = make([]cartdom.LineItem, len(c.Items))
	copy(out.Items, c.Items)
	return out
}
