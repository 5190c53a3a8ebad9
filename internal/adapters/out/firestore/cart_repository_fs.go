// internal/adapters/out/firestore/cart_repository_fs.go
package firestore

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"

	cartdom "github.com/apaluca/ReactRetail/internal/domain/cart"
	"github.com/apaluca/ReactRetail/internal/domain/common"
)

// CartRepositoryFS implements cart.Repository using Firestore.
//
// Collection design:
//   - collection: carts
//   - docId: user id (docId is the source of truth)
//   - fields: user, items[], total, createdAt, updatedAt, expiresAt
//
// TTL: configure Firestore TTL on "expiresAt".
type CartRepositoryFS struct {
	Client *firestore.Client
	now    func() time.Time
}

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client, now: utcNow}
}

func (r *CartRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(cartsCollection)
}

// GetByUserID returns (nil, nil) if not found.
func (r *CartRepositoryFS) GetByUserID(ctx context.Context, userID string) (*cartdom.Cart, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("cart_repository_fs: userID is empty")
	}

	snap, err := r.col().Doc(uid).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "cart_repository_fs: get %s", uid)
	}

	var doc cartDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, errors.Wrapf(err, "cart_repository_fs: decode %s", uid)
	}

	c := doc.toDomain()
	c.UserID = uid
	return c, nil
}

// Upsert derives total/updatedAt and overwrites the full document.
func (r *CartRepositoryFS) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	if c == nil {
		return errors.New("cart_repository_fs: cart is nil")
	}

	prepared, err := cartdom.PrepareForWrite(c, r.now())
	if err != nil {
		return err
	}

	if _, err := r.col().Doc(prepared.UserID).Set(ctx, cartDocFromDomain(&prepared)); err != nil {
		return errors.Wrapf(err, "cart_repository_fs: set %s", prepared.UserID)
	}
	*c = prepared
	return nil
}

func (r *CartRepositoryFS) DeleteByUserID(ctx context.Context, userID string) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return errors.New("cart_repository_fs: userID is empty")
	}

	_, err := r.col().Doc(uid).Delete(ctx)
	return errors.Wrapf(err, "cart_repository_fs: delete %s", uid)
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type cartDoc struct {
	User  string        `firestore:"user"`
	Items []cartItemDoc `firestore:"items"`
	Total float64       `firestore:"total"`

	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
	ExpiresAt time.Time `firestore:"expiresAt"`
}

type cartItemDoc struct {
	ID       string  `firestore:"id"`
	Product  string  `firestore:"product"`
	Quantity int     `firestore:"quantity"`
	Price    float64 `firestore:"price"`
}

func cartDocFromDomain(c *cartdom.Cart) cartDoc {
	doc := cartDoc{
		User:      c.UserID,
		Items:     make([]cartItemDoc, 0, len(c.Items)),
		Total:     c.Total.Float64(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		ExpiresAt: c.ExpiresAt,
	}
	for _, it := range c.Items {
		doc.Items = append(doc.Items, cartItemDoc{
			ID:       it.ID,
			Product:  it.ProductID,
			Quantity: it.Quantity,
			Price:    it.Price.Float64(),
		})
	}
	return doc
}

// toDomain trusts the stored total only for display until the next write
// recomputes it.
func (d cartDoc) toDomain() *cartdom.Cart {
	c := &cartdom.Cart{
		UserID:    strings.TrimSpace(d.User),
		Items:     make([]cartdom.LineItem, 0, len(d.Items)),
		Total:     common.CentsFromFloat(d.Total),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		ExpiresAt: d.ExpiresAt,
	}
	for _, it := range d.Items {
		c.Items = append(c.Items, cartdom.LineItem{
			ID:        it.ID,
			ProductID: it.Product,
			Quantity:  it.Quantity,
			Price:     common.CentsFromFloat(it.Price),
		})
	}
	return c
}
