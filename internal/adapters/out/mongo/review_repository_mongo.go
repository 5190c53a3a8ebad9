// internal/adapters/out/mongo/review_repository_mongo.go
package mongo

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	reviewdom "github.com/apaluca/ReactRetail/internal/domain/review"
)

type ReviewRepositoryMongo struct {
	DB *mongo.Database
}

func NewReviewRepositoryMongo(db *mongo.Database) *ReviewRepositoryMongo {
	return &ReviewRepositoryMongo{DB: db}
}

func (r *ReviewRepositoryMongo) col() *mongo.Collection {
	return r.DB.Collection(reviewsCollection)
}

// EnsureIndexes makes (user, product) unique so a second review by the same
// user fails in the store as well.
func (r *ReviewRepositoryMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "product", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "product", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return errors.Wrap(err, "review_repository_mongo: create indexes")
}

func (r *ReviewRepositoryMongo) ListByProduct(ctx context.Context, productID string) ([]reviewdom.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col().Find(ctx, bson.M{"product": strings.TrimSpace(productID)}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "review_repository_mongo: find")
	}
	defer cur.Close(ctx)

	var docs []reviewDocMongo
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "review_repository_mongo: decode")
	}

	out := make([]reviewdom.Review, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *ReviewRepositoryMongo) GetByID(ctx context.Context, id string) (*reviewdom.Review, error) {
	var doc reviewDocMongo
	if err := r.col().FindOne(ctx, idFilter(id)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reviewdom.ErrNotFound
		}
		return nil, errors.Wrapf(err, "review_repository_mongo: find %s", id)
	}
	rv := doc.toDomain()
	return &rv, nil
}

func (r *ReviewRepositoryMongo) FindByUserAndProduct(ctx context.Context, userID, productID string) (*reviewdom.Review, error) {
	var doc reviewDocMongo
	err := r.col().FindOne(ctx, bson.M{
		"user":    strings.TrimSpace(userID),
		"product": strings.TrimSpace(productID),
	}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "review_repository_mongo: find by user and product")
	}
	rv := doc.toDomain()
	return &rv, nil
}

func (r *ReviewRepositoryMongo) Create(ctx context.Context, rv *reviewdom.Review) error {
	if rv == nil || strings.TrimSpace(rv.ID) == "" {
		return reviewdom.ErrInvalid
	}

	_, err := r.col().InsertOne(ctx, reviewDocMongo{
		ID:        rv.ID,
		Product:   rv.ProductID,
		User:      rv.UserID,
		UserName:  rv.UserName,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return reviewdom.ErrAlreadyReviewed
	}
	return errors.Wrapf(err, "review_repository_mongo: insert %s", rv.ID)
}

func (r *ReviewRepositoryMongo) Delete(ctx context.Context, id string) error {
	res, err := r.col().DeleteOne(ctx, idFilter(id))
	if err != nil {
		return errors.Wrapf(err, "review_repository_mongo: delete %s", id)
	}
	if res.DeletedCount == 0 {
		return reviewdom.ErrNotFound
	}
	return nil
}

type reviewDocMongo struct {
	ID        any       `bson:"_id"`
	Product   string    `bson:"product"`
	User      string    `bson:"user"`
	UserName  string    `bson:"userName"`
	Rating    int       `bson:"rating"`
	Comment   string    `bson:"comment"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (d reviewDocMongo) toDomain() reviewdom.Review {
	return reviewdom.Review{
		ID:        idString(d.ID),
		ProductID: d.Product,
		UserID:    d.User,
		UserName:  d.UserName,
		Rating:    d.Rating,
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt,
	}
}
