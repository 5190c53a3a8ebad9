// internal/adapters/out/firestore/product_repository_fs.go
package firestore

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"

	"github.com/apaluca/ReactRetail/internal/domain/common"
	productdom "github.com/apaluca/ReactRetail/internal/domain/product"
)

// ProductRepositoryFS is a Firestore-based implementation of product.Repository.
type ProductRepositoryFS struct {
	Client *firestore.Client
}

func NewProductRepositoryFS(client *firestore.Client) *ProductRepositoryFS {
	return &ProductRepositoryFS{Client: client}
}

func (r *ProductRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(productsCollection)
}

// GetByID returns a single Product by ID.
func (r *ProductRepositoryFS) GetByID(ctx context.Context, id string) (*productdom.Product, error) {
	if r.Client == nil {
		return nil, errors.New("product_repository_fs: firestore client is nil")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, productdom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, productdom.ErrNotFound
		}
		return nil, errors.Wrapf(err, "product_repository_fs: get %s", id)
	}
	return docToProduct(snap)
}

// List reads the collection ordered by name and filters in memory: Firestore
// has no case-insensitive or substring match.
func (r *ProductRepositoryFS) List(ctx context.Context, filter productdom.Filter, page common.Page) (common.PageResult[productdom.Product], error) {
	if r.Client == nil {
		return common.PageResult[productdom.Product]{}, errors.New("product_repository_fs: firestore client is nil")
	}

	it := r.col().OrderBy("name", firestore.Asc).Documents(ctx)
	defer it.Stop()

	matched := []productdom.Product{}
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return common.PageResult[productdom.Product]{}, errors.Wrap(err, "product_repository_fs: list")
		}
		p, err := docToProduct(snap)
		if err != nil {
			return common.PageResult[productdom.Product]{}, err
		}
		if filter.Matches(*p) {
			matched = append(matched, *p)
		}
	}

	return common.PageSlice(matched, page, common.DefaultPerPage, common.MaxPerPage), nil
}

// Upsert writes the full document (catalog seeding).
func (r *ProductRepositoryFS) Upsert(ctx context.Context, p *productdom.Product) error {
	if r.Client == nil {
		return errors.New("product_repository_fs: firestore client is nil")
	}
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

	_, err := r.col().Doc(p.ID).Set(ctx, productToDoc(*p))
	return errors.Wrapf(err, "product_repository_fs: set %s", p.ID)
}

type productDoc struct {
	Name        string    `firestore:"name"`
	Price       float64   `firestore:"price"`
	Stock       int       `firestore:"stock"`
	Category    string    `firestore:"category"`
	Description string    `firestore:"description"`
	ImageURL    string    `firestore:"imageUrl"`
	Images      []string  `firestore:"images"`
	CreatedAt   time.Time `firestore:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt"`
}

func docToProduct(snap *firestore.DocumentSnapshot) (*productdom.Product, error) {
	var d productDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, errors.Wrapf(err, "product_repository_fs: decode %s", snap.Ref.ID)
	}
	return &productdom.Product{
		ID:          snap.Ref.ID,
		Name:        d.Name,
		Price:       common.CentsFromFloat(d.Price),
		Stock:       d.Stock,
		Category:    d.Category,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		Images:      d.Images,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

func productToDoc(p productdom.Product) productDoc {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return productDoc{
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
