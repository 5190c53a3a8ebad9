// internal/adapters/out/db/product_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	dbcommon "github.com/apaluca/ReactRetail/internal/adapters/out/db/common"
	"github.com/apaluca/ReactRetail/internal/domain/common"
	productdom "github.com/apaluca/ReactRetail/internal/domain/product"
)

// ProductSchema creates the catalog table used by ProductRepositoryPG.
const ProductSchema = `
CREATE TABLE IF NOT EXISTS products (
  id          TEXT PRIMARY KEY,
  name        TEXT NOT NULL,
  price       NUMERIC(12,2) NOT NULL CHECK (price >= 0),
  stock       INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  category    TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  image_url   TEXT NOT NULL DEFAULT '',
  images      TEXT[] NOT NULL DEFAULT '{}',
  created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS products_category_idx ON products (lower(category));
`

// ProductRepositoryPG implements product.Repository on PostgreSQL.
type ProductRepositoryPG struct {
	DB *sql.DB
}

func NewProductRepositoryPG(db *sql.DB) *ProductRepositoryPG {
	return &ProductRepositoryPG{DB: db}
}

// EnsureSchema applies ProductSchema.
func (r *ProductRepositoryPG) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, ProductSchema)
	return errors.Wrap(err, "product_repository_pg: ensure schema")
}

const productColumns = `id, name, price::text, stock, category, description, image_url, images, created_at, updated_at`

func (r *ProductRepositoryPG) GetByID(ctx context.Context, id string) (*productdom.Product, error) {
	run := dbcommon.GetRunner(ctx, r.DB)

	q := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(run.QueryRowContext(ctx, q, strings.TrimSpace(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, productdom.ErrNotFound
		}
		return nil, errors.Wrapf(err, "product_repository_pg: get %s", id)
	}
	return &p, nil
}

func (r *ProductRepositoryPG) List(ctx context.Context, filter productdom.Filter, page common.Page) (common.PageResult[productdom.Product], error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	number, perPage, offset := common.NormalizePage(page.Number, page.PerPage, common.DefaultPerPage, common.MaxPerPage)

	category := strings.TrimSpace(filter.Category)
	search := strings.TrimSpace(filter.Search)
	if search != "" {
		search = "%" + dbcommon.EscapeLike(search) + "%"
	}

	q := `
SELECT ` + productColumns + `, COUNT(*) OVER() AS total_count
FROM products
WHERE ($1 = '' OR lower(category) = lower($1))
  AND ($2 = '' OR name ILIKE $2 OR description ILIKE $2)
ORDER BY name, id
LIMIT $3 OFFSET $4
`
	rows, err := run.QueryContext(ctx, q, category, search, perPage, offset)
	if err != nil {
		return common.PageResult[productdom.Product]{}, errors.Wrap(err, "product_repository_pg: list")
	}
	defer rows.Close()

	items := []productdom.Product{}
	total := 0
	for rows.Next() {
		p, n, err := scanProductWithCount(rows)
		if err != nil {
			return common.PageResult[productdom.Product]{}, errors.Wrap(err, "product_repository_pg: scan")
		}
		items = append(items, p)
		total = n
	}
	if err := rows.Err(); err != nil {
		return common.PageResult[productdom.Product]{}, errors.Wrap(err, "product_repository_pg: rows")
	}

	// COUNT(*) OVER() is absent when the page is past the end.
	if len(items) == 0 && offset > 0 {
		const cq = `
SELECT COUNT(*) FROM products
WHERE ($1 = '' OR lower(category) = lower($1))
  AND ($2 = '' OR name ILIKE $2 OR description ILIKE $2)`
		if err := run.QueryRowContext(ctx, cq, category, search).Scan(&total); err != nil {
			return common.PageResult[productdom.Product]{}, errors.Wrap(err, "product_repository_pg: count")
		}
	}

	return common.PageResult[productdom.Product]{
		Items:      items,
		TotalCount: total,
		TotalPages: common.ComputeTotalPages(total, perPage),
		Page:       number,
		PerPage:    perPage,
	}, nil
}

func (r *ProductRepositoryPG) Upsert(ctx context.Context, p *productdom.Product) error {
	if p == nil {
		return productdom.ErrInvalid
	}
	if err := p.Validate(); err != nil {
		return err
	}
	run := dbcommon.GetRunner(ctx, r.DB)

	images := p.Images
	if images == nil {
		images = []string{}
	}

	const q = `
INSERT INTO products (id, name, price, stock, category, description, image_url, images, created_at, updated_at)
VALUES ($1, $2, $3::numeric, $4, $5, $6, $7, $8, NOW(), NOW())
ON CONFLICT (id) DO UPDATE SET
  name = EXCLUDED.name,
  price = EXCLUDED.price,
  stock = EXCLUDED.stock,
  category = EXCLUDED.category,
  description = EXCLUDED.description,
  image_url = EXCLUDED.image_url,
  images = EXCLUDED.images,
  updated_at = NOW()
RETURNING created_at, updated_at
`
	err := run.QueryRowContext(ctx, q,
		p.ID, p.Name, p.Price.String(), p.Stock, p.Category, p.Description, p.ImageURL, pq.Array(images),
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return errors.Wrapf(err, "product_repository_pg: upsert %s", p.ID)
}

func scanProduct(s dbcommon.RowScanner) (productdom.Product, error) {
	var (
		p         productdom.Product
		price     string
		images    pq.StringArray
		createdAt time.Time
		updatedAt time.Time
	)
	if err := s.Scan(&p.ID, &p.Name, &price, &p.Stock, &p.Category, &p.Description, &p.ImageURL, &images, &createdAt, &updatedAt); err != nil {
		return productdom.Product{}, err
	}
	return finishProduct(p, price, images, createdAt, updatedAt)
}

func scanProductWithCount(s dbcommon.RowScanner) (productdom.Product, int, error) {
	var (
		p         productdom.Product
		price     string
		images    pq.StringArray
		createdAt time.Time
		updatedAt time.Time
		total     int
	)
	if err := s.Scan(&p.ID, &p.Name, &price, &p.Stock, &p.Category, &p.Description, &p.ImageURL, &images, &createdAt, &updatedAt, &total); err != nil {
		return productdom.Product{}, 0, err
	}
	out, err := finishProduct(p, price, images, createdAt, updatedAt)
	return out, total, err
}

func finishProduct(p productdom.Product, price string, images pq.StringArray, createdAt, updatedAt time.Time) (productdom.Product, error) {
	cents, err := common.CentsFromString(price)
	if err != nil {
		return productdom.Product{}, errors.Wrapf(err, "product %s: bad price %q", p.ID, price)
	}
	p.Price = cents
	p.Images = []string(images)
	p.CreatedAt = createdAt.UTC()
	p.UpdatedAt = updatedAt.UTC()
	return p, nil
}
