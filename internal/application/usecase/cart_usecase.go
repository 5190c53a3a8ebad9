// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	cartdom "github.com/apaluca/ReactRetail/internal/domain/cart"
	productdom "github.com/apaluca/ReactRetail/internal/domain/product"
	"github.com/apaluca/ReactRetail/internal/infra/logging"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
	ErrCartNotFound        = errors.New("cart_usecase: not found")
	ErrProductNotFound     = errors.New("cart_usecase: product not found")
	ErrOutOfStock          = errors.New("cart_usecase: product is out of stock")
	ErrInsufficientStock   = errors.New("cart_usecase: requested quantity exceeds stock")
)

// CartUsecase coordinates cart operations.
// Totals are never computed here: the repository derives them on every write.
type CartUsecase struct {
	repo    cartdom.Repository
	catalog productdom.Reader
	events  CartEventPublisher
	clock   Clock
	log     *logrus.Entry
}

func NewCartUsecase(repo cartdom.Repository, catalog productdom.Reader) *CartUsecase {
	return &CartUsecase{
		repo:    repo,
		catalog: catalog,
		events:  NopCartEventPublisher{},
		clock:   systemClock{},
		log:     logging.Component("cart_usecase"),
	}
}

// WithClock is useful for tests.
func (uc *CartUsecase) WithClock(clock Clock) *CartUsecase {
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

func (uc *CartUsecase) WithEvents(p CartEventPublisher) *CartUsecase {
	if p != nil {
		uc.events = p
	}
	return uc
}

func (uc *CartUsecase) WithLogger(l *logrus.Entry) *CartUsecase {
	if l != nil {
		uc.log = l
	}
	return uc
}

// Get returns the cart for userID.
// If the cart does not exist, returns (nil, ErrCartNotFound).
func (uc *CartUsecase) Get(ctx context.Context, userID string) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.Wrap(err, "cart_usecase: get cart")
	}
	if c == nil {
		return nil, ErrCartNotFound
	}
	return c, nil
}

// GetOrEmpty returns the stored cart, or an unsaved empty one.
func (uc *CartUsecase) GetOrEmpty(ctx context.Context, userID string) (*cartdom.Cart, error) {
	c, err := uc.Get(ctx, userID)
	if errors.Is(err, ErrCartNotFound) {
		return cartdom.NewCart(userID, uc.clock.Now())
	}
	return c, err
}

// AddItem adds qty units of productID at the current catalog price.
// qty must be >= 1 and the product's total quantity in the cart may not
// exceed its stock.
func (uc *CartUsecase) AddItem(ctx context.Context, userID, productID string, qty int) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	pid := strings.TrimSpace(productID)
	if uid == "" || pid == "" || qty < 1 {
		return nil, ErrCartInvalidArgument
	}

	p, err := uc.product(ctx, pid)
	if err != nil {
		return nil, err
	}
	if !p.InStock() {
		return nil, ErrOutOfStock
	}

	c, err := uc.loadOrNew(ctx, uid)
	if err != nil {
		return nil, err
	}
	// Compared as remaining stock so a huge qty cannot overflow the sum.
	if qty > p.Stock-c.QuantityOf(pid) {
		return nil, ErrInsufficientStock
	}

	line, err := cartdom.NewLineItem(pid, qty, p.Price)
	if err != nil {
		return nil, err
	}
	if err := c.Add(line); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, errors.Wrap(err, "cart_usecase: save cart")
	}

	uc.publish(ctx, CartEvent{Type: CartEventItemAdded, ProductID: pid, Quantity: qty}, c)
	return c, nil
}

// UpdateItemQuantity sets the quantity of one line.
// qty == 0 removes the line.
func (uc *CartUsecase) UpdateItemQuantity(ctx context.Context, userID, lineID string, qty int) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	lid := strings.TrimSpace(lineID)
	if uid == "" || lid == "" || qty < 0 {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	line, ok := c.Line(lid)
	if !ok {
		return nil, cartdom.ErrLineNotFound
	}

	if qty > line.Quantity {
		p, err := uc.product(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		others := c.QuantityOf(line.ProductID) - line.Quantity
		if qty > p.Stock-others {
			return nil, ErrInsufficientStock
		}
	}

	if err := c.SetQuantity(lid, qty); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, c); err != nil {
		return nil, errors.Wrap(err, "cart_usecase: save cart")
	}

	evType := CartEventItemUpdated
	if qty == 0 {
		evType = CartEventItemRemoved
	}
	uc.publish(ctx, CartEvent{Type: evType, ProductID: line.ProductID, LineID: lid, Quantity: qty}, c)
	return c, nil
}

// RemoveItem removes one line from the cart.
func (uc *CartUsecase) RemoveItem(ctx context.Context, userID, lineID string) (*cartdom.Cart, error) {
	return uc.UpdateItemQuantity(ctx, userID, lineID, 0)
}

// Clear deletes the cart document (explicit "empty cart" action).
func (uc *CartUsecase) Clear(ctx context.Context, userID string) error {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return ErrCartInvalidArgument
	}
	if err := uc.repo.DeleteByUserID(ctx, uid); err != nil {
		return errors.Wrap(err, "cart_usecase: delete cart")
	}

	empty, _ := cartdom.NewCart(uid, uc.clock.Now())
	uc.publish(ctx, CartEvent{Type: CartEventCleared}, empty)
	return nil
}

func (uc *CartUsecase) product(ctx context.Context, productID string) (*productdom.Product, error) {
	if uc.catalog == nil {
		return nil, errors.New("cart_usecase: catalog reader is nil")
	}
	p, err := uc.catalog.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, productdom.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errors.Wrapf(err, "cart_usecase: load product %s", productID)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (uc *CartUsecase) loadOrNew(ctx context.Context, userID string) (*cartdom.Cart, error) {
	c, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "cart_usecase: get cart")
	}
	if c != nil {
		return c, nil
	}
	return cartdom.NewCart(userID, uc.clock.Now())
}

func (uc *CartUsecase) publish(ctx context.Context, ev CartEvent, c *cartdom.Cart) {
	ev.UserID = c.UserID
	ev.ItemCount = len(c.Items)
	ev.Total = c.Total
	ev.OccurredAt = uc.clock.Now()

	if err := uc.events.PublishCartEvent(ctx, ev); err != nil {
		uc.log.WithFields(logrus.Fields{
			"event":  ev.Type,
			"userId": ev.UserID,
		}).WithError(err).Warn("[cart_usecase] publish cart event failed")
	}
}

// AddToCart satisfies productview.CartAdder.
func (uc *CartUsecase) AddToCart(ctx context.Context, userID, productID string, qty int) error {
	_, err := uc.AddItem(ctx, userID, productID, qty)
	return err
}
