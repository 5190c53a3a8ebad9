// internal/adapters/out/memory/product_repository.go
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/apaluca/ReactRetail/internal/domain/common"
	productdom "github.com/apaluca/ReactRetail/internal/domain/product"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]productdom.Product
}

func NewProductRepository(seed ...productdom.Product) *ProductRepository {
	r := &ProductRepository{products: make(map[string]productdom.Product, len(seed))}
	for _, p := range seed {
		r.products[p.ID] = cloneProduct(p)
	}
	return r
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*productdom.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[strings.TrimSpace(id)]
	if !ok {
		return nil, productdom.ErrNotFound
	}
	out := cloneProduct(p)
	return &out, nil
}

// List orders by name, then id.
func (r *ProductRepository) List(_ context.Context, filter productdom.Filter, page common.Page) (common.PageResult[productdom.Product], error) {
	r.mu.RLock()
	matched := make([]productdom.Product, 0, len(r.products))
	for _, p := range r.products {
		if filter.Matches(p) {
			matched = append(matched, cloneProduct(p))
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Name != matched[j].Name {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].ID < matched[j].ID
	})

	return common.PageSlice(matched, page, common.DefaultPerPage, common.MaxPerPage), nil
}

func (r *ProductRepository) Upsert(_ context.Context, p *productdom.Product) error {
	if p == nil {
		return productdom.ErrInvalid
	}
	if err := p.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = cloneProduct(*p)
	return nil
}

func cloneProduct(p productdom.Product) productdom.Product {
	out := p
	if p.Images != nil {
		out.Images = append([]string(nil), p.Images...)
	}
	return out
}
