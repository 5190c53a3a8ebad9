// internal/application/query/cart_query.go
package query

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/apaluca/ReactRetail/internal/application/query/dto"
	cartdom "github.com/apaluca/ReactRetail/internal/domain/cart"
	productdom "github.com/apaluca/ReactRetail/internal/domain/product"
	"github.com/apaluca/ReactRetail/internal/infra/logging"
)

// CartSource returns the user's cart, or an empty cart when none is stored.
type CartSource interface {
	GetOrEmpty(ctx context.Context, userID string) (*cartdom.Cart, error)
}

// ProductSource is usually the catalog usecase, so image URLs are resolved.
type ProductSource interface {
	Get(ctx context.Context, id string) (*productdom.Product, error)
}

// CartQuery builds the cart read model: stored lines joined with the
// product's current name and image.
type CartQuery struct {
	carts    CartSource
	products ProductSource
	log      *logrus.Entry
}

func NewCartQuery(carts CartSource, products ProductSource) *CartQuery {
	return &CartQuery{
		carts:    carts,
		products: products,
		log:      logging.Component("cart_query"),
	}
}

func (q *CartQuery) GetByUserID(ctx context.Context, userID string) (dto.CartDTO, error) {
	if q == nil || q.carts == nil {
		return dto.CartDTO{}, errors.New("cart query: cart source is nil")
	}

	c, err := q.carts.GetOrEmpty(ctx, strings.TrimSpace(userID))
	if err != nil {
		return dto.CartDTO{}, err
	}

	index := q.fetchProductIndex(ctx, c)
	return ToCartDTO(c, index), nil
}

// fetchProductIndex is best-effort; a missing product only blanks its fields.
func (q *CartQuery) fetchProductIndex(ctx context.Context, c *cartdom.Cart) map[string]productdom.Product {
	out := map[string]productdom.Product{}
	if q.products == nil || c == nil {
		return out
	}

	for _, it := range c.Items {
		if _, ok := out[it.ProductID]; ok {
			continue
		}
		p, err := q.products.Get(ctx, it.ProductID)
		if err != nil {
			if !errors.Is(err, productdom.ErrNotFound) {
				q.log.WithField("productId", it.ProductID).WithError(err).Warn("[cart_query] product lookup failed")
			}
			continue
		}
		if p != nil {
			out[it.ProductID] = *p
		}
	}
	return out
}

// ToCartDTO maps a cart plus a product index to the response shape.
func ToCartDTO(c *cartdom.Cart, products map[string]productdom.Product) dto.CartDTO {
	out := dto.CartDTO{Items: []dto.CartItemDTO{}}
	if c == nil {
		out.TotalLabel = "0.00"
		return out
	}

	out.ID = c.UserID
	out.User = c.UserID
	out.Total = c.Total.Float64()
	out.TotalLabel = c.Total.String()
	out.CreatedAt = formatTime(c.CreatedAt)
	out.UpdatedAt = formatTime(c.UpdatedAt)

	for _, it := range c.Items {
		item := dto.CartItemDTO{
			ID:            it.ID,
			Product:       it.ProductID,
			Quantity:      it.Quantity,
			Price:         it.Price.Float64(),
			Subtotal:      it.Subtotal().Float64(),
			PriceLabel:    it.Price.String(),
			SubtotalLabel: it.Subtotal().String(),
		}
		if p, ok := products[it.ProductID]; ok {
			item.ProductName = p.Name
			item.ImageURL = p.ImageURL
			item.Stock = p.Stock
			item.Available = p.Stock >= it.Quantity
		}
		out.Items = append(out.Items, item)
		out.ItemCount += it.Quantity
	}
	return out
}

func formatTime(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
