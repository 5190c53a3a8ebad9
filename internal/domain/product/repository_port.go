// internal/domain/product/repository_port.go
package product

import (
	"context"

	"github.com/apaluca/ReactRetail/internal/domain/common"
)

// Filter narrows catalog listings.
type Filter struct {
	Category string
	// Search matches name or description, case-insensitive.
	Search string
}

// Reader is the read side of the catalog.
type Reader interface {
	// GetByID returns ErrNotFound when the product does not exist.
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, filter Filter, page common.Page) (common.PageResult[Product], error)
}

// Writer is used by catalog seeding only.
type Writer interface {
	Upsert(ctx context.Context, p *Product) error
}

// Repository combines both sides.
type Repository interface {
	Reader
	Writer
}

// Matches applies Filter in memory. Stores that cannot express a
// case-insensitive search natively use it after fetching.
func (f Filter) Matches(p Product) bool {
	if f.Category != "" && !equalFold(p.Category, f.Category) {
		return false
	}
	if f.Search != "" && !containsFold(p.Name, f.Search) && !containsFold(p.Description, f.Search) {
		return false
	}
	return true
}
