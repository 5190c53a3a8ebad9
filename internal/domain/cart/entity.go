// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apaluca/ReactRetail/internal/domain/common"
)

var (
	ErrInvalidCart     = errors.New("cart: invalid")
	ErrInvalidQuantity = errors.New("cart: quantity must be >= 1")
	ErrLineNotFound    = errors.New("cart: line item not found")
)

// DefaultCartTTL is the inactivity window after which the cart becomes
// eligible for auto deletion (Firestore TTL is configured on expiresAt).
const DefaultCartTTL = 7 * 24 * time.Hour

// LineItem is one product in a cart.
// Price is the unit price captured when the line was added; later catalog
// price changes do not touch it.
type LineItem struct {
	ID        string
	ProductID string
	Quantity  int
	Price     common.Cents
}

// Subtotal is Price * Quantity.
func (li LineItem) Subtotal() common.Cents {
	return li.Price.Times(li.Quantity)
}

// NewLineItem validates and builds a line item with a fresh line id.
// quantity <= 0 is rejected, never normalized.
func NewLineItem(productID string, quantity int, price common.Cents) (LineItem, error) {
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return LineItem{}, ErrInvalidCart
	}
	if quantity < 1 {
		return LineItem{}, ErrInvalidQuantity
	}
	if price < 0 {
		return LineItem{}, ErrInvalidCart
	}
	return LineItem{
		ID:        uuid.NewString(),
		ProductID: pid,
		Quantity:  quantity,
		Price:     price,
	}, nil
}

// Cart is a user's in-progress selection.
//   - one cart per user (document id = user id)
//   - Total and UpdatedAt are derived at write time (see DeriveTotals)
type Cart struct {
	UserID string
	Items  []LineItem

	Total common.Cents

	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
}

// NewCart creates an empty cart owned by userID.
func NewCart(userID string, now time.Time) (*Cart, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrInvalidCart
	}
	return &Cart{
		UserID:    uid,
		Items:     []LineItem{},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(DefaultCartTTL),
	}, nil
}

// Add merges item into the cart.
// A line with the same product and the same captured price absorbs the
// quantity; anything else is appended, so captured prices are never rewritten.
func (c *Cart) Add(item LineItem) error {
	if c == nil {
		return ErrInvalidCart
	}
	if strings.TrimSpace(item.ProductID) == "" || item.Price < 0 {
		return ErrInvalidCart
	}
	if item.Quantity < 1 {
		return ErrInvalidQuantity
	}

	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID && c.Items[i].Price == item.Price {
			c.Items[i].Quantity += item.Quantity
			return nil
		}
	}

	if strings.TrimSpace(item.ID) == "" {
		item.ID = uuid.NewString()
	}
	c.Items = append(c.Items, item)
	return nil
}

// SetQuantity sets the quantity of a line.
// qty == 0 removes the line; qty < 0 is rejected.
func (c *Cart) SetQuantity(lineID string, qty int) error {
	if c == nil {
		return ErrInvalidCart
	}
	if qty < 0 {
		return ErrInvalidQuantity
	}

	idx := c.indexOf(lineID)
	if idx < 0 {
		return ErrLineNotFound
	}
	if qty == 0 {
		c.Items = removeIndex(c.Items, idx)
		return nil
	}
	c.Items[idx].Quantity = qty
	return nil
}

// Remove drops a line.
func (c *Cart) Remove(lineID string) error {
	return c.SetQuantity(lineID, 0)
}

// Line returns a copy of the line with the given id.
func (c *Cart) Line(lineID string) (LineItem, bool) {
	if c == nil {
		return LineItem{}, false
	}
	idx := c.indexOf(lineID)
	if idx < 0 {
		return LineItem{}, false
	}
	return c.Items[idx], true
}

// QuantityOf sums the quantity of every line holding productID.
func (c *Cart) QuantityOf(productID string) int {
	if c == nil {
		return 0
	}
	n := 0
	for _, it := range c.Items {
		if it.ProductID == productID {
			n += it.Quantity
		}
	}
	return n
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

func (c *Cart) validate() error {
	if c == nil || strings.TrimSpace(c.UserID) == "" {
		return ErrInvalidCart
	}
	for _, it := range c.Items {
		if strings.TrimSpace(it.ID) == "" || strings.TrimSpace(it.ProductID) == "" || it.Price < 0 {
			return ErrInvalidCart
		}
		if it.Quantity < 1 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

func (c *Cart) indexOf(lineID string) int {
	id := strings.TrimSpace(lineID)
	if id == "" {
		return -1
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			return i
		}
	}
	return -1
}

func removeIndex(items []LineItem, idx int) []LineItem {
	out := make([]LineItem, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...)
}
