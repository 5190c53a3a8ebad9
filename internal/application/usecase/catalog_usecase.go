// internal/application/usecase/catalog_usecase.go
package usecase

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/apaluca/ReactRetail/internal/domain/common"
	productdom "github.com/apaluca/ReactRetail/internal/domain/product"
	"github.com/apaluca/ReactRetail/internal/infra/logging"
)

// ImageURLResolver turns a stored image reference (object path, gs:// URL or
// https URL) into a URL the browser can load.
type ImageURLResolver interface {
	ResolveImageURL(ctx context.Context, ref string) (string, error)
}

// CatalogUsecase serves product reads.
type CatalogUsecase struct {
	products productdom.Reader
	images   ImageURLResolver
	log      *logrus.Entry
}

func NewCatalogUsecase(products productdom.Reader, images ImageURLResolver) *CatalogUsecase {
	return &CatalogUsecase{
		products: products,
		images:   images,
		log:      logging.Component("catalog_usecase"),
	}
}

// Get returns one product with resolved image URLs.
func (uc *CatalogUsecase) Get(ctx context.Context, id string) (*productdom.Product, error) {
	pid := strings.TrimSpace(id)
	if pid == "" {
		return nil, productdom.ErrNotFound
	}

	p, err := uc.products.GetByID(ctx, pid)
	if err != nil {
		if errors.Is(err, productdom.ErrNotFound) {
			return nil, productdom.ErrNotFound
		}
		return nil, errors.Wrapf(err, "catalog_usecase: get product %s", pid)
	}
	if p == nil {
		return nil, productdom.ErrNotFound
	}

	out := uc.resolveImages(ctx, *p)
	return &out, nil
}

// List returns one page of products matching filter.
func (uc *CatalogUsecase) List(ctx context.Context, filter productdom.Filter, page common.Page) (common.PageResult[productdom.Product], error) {
	number, perPage, _ := common.NormalizePage(page.Number, page.PerPage, common.DefaultPerPage, common.MaxPerPage)

	filter.Category = strings.TrimSpace(filter.Category)
	filter.Search = strings.TrimSpace(filter.Search)

	res, err := uc.products.List(ctx, filter, common.Page{Number: number, PerPage: perPage})
	if err != nil {
		return common.PageResult[productdom.Product]{}, errors.Wrap(err, "catalog_usecase: list products")
	}

	for i := range res.Items {
		res.Items[i] = uc.resolveImages(ctx, res.Items[i])
	}
	return res, nil
}

// GetProduct satisfies productview.ProductReader.
func (uc *CatalogUsecase) GetProduct(ctx context.Context, id string) (*productdom.Product, error) {
	return uc.Get(ctx, id)
}

// resolveImages keeps the stored reference when it cannot be resolved; a
// broken image is better than a failed page. Each distinct reference is
// resolved once per product so that repeated references keep comparing equal
// after resolution (signed URLs differ on every call).
func (uc *CatalogUsecase) resolveImages(ctx context.Context, p productdom.Product) productdom.Product {
	if uc.images == nil {
		return p
	}

	resolved := make(map[string]string, len(p.Images)+1)
	p.ImageURL = uc.resolve(ctx, p.ImageURL, resolved)
	if len(p.Images) > 0 {
		imgs := make([]string, len(p.Images))
		for i, ref := range p.Images {
			imgs[i] = uc.resolve(ctx, ref, resolved)
		}
		p.Images = imgs
	}
	return p
}

func (uc *CatalogUsecase) resolve(ctx context.Context, ref string, seen map[string]string) string {
	if strings.TrimSpace(ref) == "" {
		return ref
	}
	if u, ok := seen[ref]; ok {
		return u
	}
	u, err := uc.images.ResolveImageURL(ctx, ref)
	if err != nil {
		uc.log.WithField("ref", ref).WithError(err).Warn("[catalog_usecase] resolve image failed")
		u = ref
	}
	seen[ref] = u
	return u
}
