// internal/domain/cart/totals.go
package cart

import (
	"time"

	"github.com/apaluca/ReactRetail/internal/domain/common"
)

// DeriveTotals returns a copy of c with the derived fields recomputed:
//   - Total     = Σ price * quantity (integer cents; empty cart -> 0)
//   - UpdatedAt = now, but never earlier than the previous UpdatedAt
//   - ExpiresAt = UpdatedAt + DefaultCartTTL
//
// It has no side effects; persistence adapters call it through
// PrepareForWrite before every write.
func DeriveTotals(c Cart, now time.Time) Cart {
	out := c
	out.Items = make([]LineItem, len(c.Items))
	copy(out.Items, c.Items)

	var total common.Cents
	for _, it := range out.Items {
		total += it.Subtotal()
	}
	out.Total = total

	if now.After(c.UpdatedAt) {
		out.UpdatedAt = now
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = out.UpdatedAt
	}
	out.ExpiresAt = out.UpdatedAt.Add(DefaultCartTTL)
	return out
}

// PrepareForWrite validates c and returns DeriveTotals(*c, now); c itself is
// not modified. Adapters write the returned cart and copy it back into c only
// once the write succeeded. A cart holding a line with quantity < 1 is
// rejected before it reaches the store.
func PrepareForWrite(c *Cart, now time.Time) (Cart, error) {
	if c == nil {
		return Cart{}, ErrInvalidCart
	}
	if err := c.validate(); err != nil {
		return Cart{}, err
	}
	return DeriveTotals(*c, now), nil
}
