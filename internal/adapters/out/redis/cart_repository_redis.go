// internal/adapters/out/redis/cart_repository_redis.go
package redis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	cartdom "github.com/apaluca/ReactRetail/internal/domain/cart"
	"github.com/apaluca/ReactRetail/internal/domain/common"
)

const (
	cartKeyPrefix = "cart:"
	cartField     = "cart"
)

// CartRepositoryRedis keeps each cart as a JSON document in the "cart" field
// of the hash "cart:<userId>". The key expires at the cart's expiresAt.
type CartRepositoryRedis struct {
	client goredis.Cmdable
	now    func() time.Time
}

func NewCartRepositoryRedis(client goredis.Cmdable) *CartRepositoryRedis {
	return &CartRepositoryRedis{
		client: client,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func cartKey(userID string) string {
	return cartKeyPrefix + userID
}

// GetByUserID returns (nil, nil) if not found.
func (r *CartRepositoryRedis) GetByUserID(ctx context.Context, userID string) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("cart_repository_redis: userID is empty")
	}

	val, err := r.client.HGet(ctx, cartKey(uid), cartField).Result()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cart_repository_redis: HGet %s", uid)
	}

	var doc cartJSON
	if err := json.Unmarshal([]byte(val), &doc); err != nil {
		return nil, errors.Wrapf(err, "cart_repository_redis: decode %s", uid)
	}
	c := doc.toDomain()
	c.UserID = uid
	return c, nil
}

func (r *CartRepositoryRedis) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if c == nil {
		return errors.New("cart_repository_redis: cart is nil")
	}
	prepared, err := cartdom.PrepareForWrite(c, r.now())
	if err != nil {
		return err
	}

	bin, err := json.Marshal(cartJSONFromDomain(&prepared))
	if err != nil {
		return errors.Wrap(err, "cart_repository_redis: encode")
	}

	key := cartKey(prepared.UserID)
	_, err = r.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.HSet(ctx, key, cartField, bin)
		p.ExpireAt(ctx, key, prepared.ExpiresAt)
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "cart_repository_redis: HSet %s", prepared.UserID)
	}
	*c = prepared
	return nil
}

func (r *CartRepositoryRedis) DeleteByUserID(ctx context.Context, userID string) error {
	err := r.client.Del(ctx, cartKey(strings.TrimSpace(userID))).Err()
	return errors.Wrapf(err, "cart_repository_redis: Del %s", userID)
}

type cartJSON struct {
	User      string         `json:"user"`
	Items     []cartItemJSON `json:"items"`
	Total     float64        `json:"total"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	ExpiresAt time.Time      `json:"expiresAt"`
}

type cartItemJSON struct {
	ID       string  `json:"_id"`
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

func cartJSONFromDomain(c *cartdom.Cart) cartJSON {
	doc := cartJSON{
		User:      c.UserID,
		Items:     make([]cartItemJSON, 0, len(c.Items)),
		Total:     c.Total.Float64(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		ExpiresAt: c.ExpiresAt,
	}
	for _, it := range c.Items {
		doc.Items = append(doc.Items, cartItemJSON{
			ID:       it.ID,
			Product:  it.ProductID,
			Quantity: it.Quantity,
			Price:    it.Price.Float64(),
		})
	}
	return doc
}

func (d cartJSON) toDomain() *cartdom.Cart {
	c := &cartdom.Cart{
		UserID:    d.User,
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
