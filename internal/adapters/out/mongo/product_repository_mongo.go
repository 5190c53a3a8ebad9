// internal/adapters/out/mongo/product_repository_mongo.go
package mongo

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/apaluca/ReactRetail/internal/domain/common"
	productdom "github.com/apaluca/ReactRetail/internal/domain/product"
)

type ProductRepositoryMongo struct {
	DB *mongo.Database
}

func NewProductRepositoryMongo(db *mongo.Database) *ProductRepositoryMongo {
	return &ProductRepositoryMongo{DB: db}
}

func (r *ProductRepositoryMongo) col() *mongo.Collection {
	return r.DB.Collection(productsCollection)
}

func (r *ProductRepositoryMongo) GetByID(ctx context.Context, id string) (*productdom.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, productdom.ErrNotFound
	}

	var doc productDocMongo
	if err := r.col().FindOne(ctx, idFilter(id)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, productdom.ErrNotFound
		}
		return nil, errors.Wrapf(err, "product_repository_mongo: find %s", id)
	}
	p := doc.toDomain()
	return &p, nil
}

// List filters and pages on the server; search is a case-insensitive regex
// over name and description.
func (r *ProductRepositoryMongo) List(ctx context.Context, filter productdom.Filter, page common.Page) (common.PageResult[productdom.Product], error) {
	number, perPage, offset := common.NormalizePage(page.Number, page.PerPage, common.DefaultPerPage, common.MaxPerPage)

	q := bson.M{}
	if c := strings.TrimSpace(filter.Category); c != "" {
		q["category"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(c) + "$", Options: "i"}
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
		q["$or"] = bson.A{bson.M{"name": rx}, bson.M{"description": rx}}
	}

	total, err := r.col().CountDocuments(ctx, q)
	if err != nil {
		return common.PageResult[productdom.Product]{}, errors.Wrap(err, "product_repository_mongo: count")
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(perPage))

	cur, err := r.col().Find(ctx, q, opts)
	if err != nil {
		return common.PageResult[productdom.Product]{}, errors.Wrap(err, "product_repository_mongo: find")
	}
	defer cur.Close(ctx)

	var docs []productDocMongo
	if err := cur.All(ctx, &docs); err != nil {
		return common.PageResult[productdom.Product]{}, errors.Wrap(err, "product_repository_mongo: decode")
	}

	items := make([]productdom.Product, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toDomain())
	}

	return common.PageResult[productdom.Product]{
		Items:      items,
		TotalCount: int(total),
		TotalPages: common.ComputeTotalPages(int(total), perPage),
		Page:       number,
		PerPage:    perPage,
	}, nil
}

func (r *ProductRepositoryMongo) Upsert(ctx context.Context, p *productdom.Product) error {
	if p == nil {
		return productdom.ErrInvalid
	}
	if err := p.Validate(); err != nil {
		return err
	}

	now := utcNow()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	doc := productDocMongoFromDomain(*p)
	_, err := r.col().ReplaceOne(ctx, idFilter(p.ID), doc, options.Replace().SetUpsert(true))
	return errors.Wrapf(err, "product_repository_mongo: replace %s", p.ID)
}

type productDocMongo struct {
	ID          any       `bson:"_id"`
	Name        string    `bson:"name"`
	Price       float64   `bson:"price"`
	Stock       int       `bson:"stock"`
	Category    string    `bson:"category"`
	Description string    `bson:"description"`
	ImageURL    string    `bson:"imageUrl"`
	Images      []string  `bson:"images"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func (d productDocMongo) toDomain() productdom.Product {
	return productdom.Product{
		ID:          idString(d.ID),
		Name:        d.Name,
		Price:       common.CentsFromFloat(d.Price),
		Stock:       d.Stock,
		Category:    d.Category,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		Images:      d.Images,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func productDocMongoFromDomain(p productdom.Product) productDocMongo {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return productDocMongo{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.Float64(),
		Stock:       p.Stock,
		Category:    p.Category,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Images:      images,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
