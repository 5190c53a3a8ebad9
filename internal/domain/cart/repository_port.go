// internal/domain/cart/repository_port.go
package cart

import "context"

// Repository is a persistence port for Cart.
//
// Storage layout (document stores):
//   - collection: carts
//   - docId: userId
//   - fields: user, items[{id, product, quantity, price}], total, createdAt, updatedAt, expiresAt
//
// Every implementation must call PrepareForWrite before writing, so the
// stored total always matches the stored items.
type Repository interface {
	// GetByUserID returns (nil, nil) when the user has no cart.
	GetByUserID(ctx context.Context, userID string) (*Cart, error)

	// Upsert derives totals on c (in place) and saves it.
	Upsert(ctx context.Context, c *Cart) error

	// DeleteByUserID removes the cart document. Missing carts are not an error.
	DeleteByUserID(ctx context.Context, userID string) error
}
