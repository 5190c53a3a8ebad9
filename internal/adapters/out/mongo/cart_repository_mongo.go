// internal/adapters/out/mongo/cart_repository_mongo.go
package mongo

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	cartdom "github.com/apaluca/ReactRetail/internal/domain/cart"
	"github.com/apaluca/ReactRetail/internal/domain/common"
)

// CartRepositoryMongo stores one document per user in "carts", keyed by the
// "user" field (unique index).
type CartRepositoryMongo struct {
	DB  *mongo.Database
	now func() time.Time
}

func NewCartRepositoryMongo(db *mongo.Database) *CartRepositoryMongo {
	return &CartRepositoryMongo{DB: db, now: utcNow}
}

func (r *CartRepositoryMongo) col() *mongo.Collection {
	return r.DB.Collection(cartsCollection)
}

// EnsureIndexes creates the unique user index and the TTL index on expiresAt.
func (r *CartRepositoryMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "expiresAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	})
	return errors.Wrap(err, "cart_repository_mongo: create indexes")
}

// GetByUserID returns (nil, nil) if not found.
func (r *CartRepositoryMongo) GetByUserID(ctx context.Context, userID string) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("cart_repository_mongo: userID is empty")
	}

	var doc cartDocMongo
	err := r.col().FindOne(ctx, bson.M{"user": uid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "cart_repository_mongo: find %s", uid)
	}
	return doc.toDomain(), nil
}

// Upsert derives total/updatedAt and replaces the whole document.
func (r *CartRepositoryMongo) Upsert(ctx context.Context, c *cartdom.Cart) error {
	if c == nil {
		return errors.New("cart_repository_mongo: cart is nil")
	}
	prepared, err := cartdom.PrepareForWrite(c, r.now())
	if err != nil {
		return err
	}

	_, err = r.col().ReplaceOne(ctx,
		bson.M{"user": prepared.UserID},
		cartDocMongoFromDomain(&prepared),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Wrapf(err, "cart_repository_mongo: replace %s", prepared.UserID)
	}
	*c = prepared
	return nil
}

func (r *CartRepositoryMongo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.col().DeleteOne(ctx, bson.M{"user": strings.TrimSpace(userID)})
	return errors.Wrapf(err, "cart_repository_mongo: delete %s", userID)
}

type cartDocMongo struct {
	User      string             `bson:"user"`
	Items     []cartItemDocMongo `bson:"items"`
	Total     float64            `bson:"total"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
	ExpiresAt time.Time          `bson:"expiresAt"`
}

type cartItemDocMongo struct {
	ID       string  `bson:"_id"`
	Product  string  `bson:"product"`
	Quantity int     `bson:"quantity"`
	Price    float64 `bson:"price"`
}

func cartDocMongoFromDomain(c *cartdom.Cart) cartDocMongo {
	doc := cartDocMongo{
		User:      c.UserID,
		Items:     make([]cartItemDocMongo, 0, len(c.Items)),
		Total:     c.Total.Float64(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		ExpiresAt: c.ExpiresAt,
	}
	for _, it := range c.Items {
		doc.Items = append(doc.Items, cartItemDocMongo{
			ID:       it.ID,
			Product:  it.ProductID,
			Quantity: it.Quantity,
			Price:    it.Price.Float64(),
		})
	}
	return doc
}

func (d cartDocMongo) toDomain() *cartdom.Cart {
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
