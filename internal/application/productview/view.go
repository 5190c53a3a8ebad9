// internal/application/productview/view.go
package productview

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	productdom "github.com/apaluca/ReactRetail/internal/domain/product"
)

// State is the render state of a product detail view.
type State string

const (
	StateLoading                   State = "loading"
	StateError                     State = "error"
	StateLoadedNoQuantityControl   State = "loaded-no-quantity-control"
	StateLoadedWithQuantityControl State = "loaded-with-quantity-control"
)

const (
	NotFoundMessage        = "Product not found or an error occurred."
	AddToCartFailedMessage = "Could not add this item to your cart. Please try again."

	CartPath = "/cart"
)

var (
	ErrNotLoaded         = errors.New("productview: product not loaded")
	ErrAddToCartDisabled = errors.New("productview: add to cart is not available")
	ErrImageOutOfRange   = errors.New("productview: image index out of range")
)

// Session identifies the signed-in user. The zero value is signed out.
type Session struct {
	UserID      string
	DisplayName string
}

func (s Session) SignedIn() bool {
	return strings.TrimSpace(s.UserID) != ""
}

// ProductReader fetches one catalog record.
type ProductReader interface {
	GetProduct(ctx context.Context, id string) (*productdom.Product, error)
}

// CartAdder adds quantity units of a product to the user's cart.
type CartAdder interface {
	AddToCart(ctx context.Context, userID, productID string, quantity int) error
}

// Navigation is a requested client-side redirect.
type Navigation struct {
	To string
}

// View holds the state of one product detail page.
// It is not safe for concurrent use; one view serves one request.
type View struct {
	productID string
	session   Session
	products  ProductReader
	cart      CartAdder

	state    State
	product  *productdom.Product
	gallery  []string
	selected int
	quantity int
	errMsg   string
	cartErr  string
}

func New(productID string, session Session, products ProductReader, cart CartAdder) *View {
	return &View{
		productID: strings.TrimSpace(productID),
		session:   session,
		products:  products,
		cart:      cart,
		state:     StateLoading,
		quantity:  1,
	}
}

// Load fetches the product once. A failed fetch moves the view to the error
// state with no partial data; there is no retry.
// If ctx is done by the time the fetch returns the result is discarded, the
// view stays loading and ctx.Err() is returned.
func (v *View) Load(ctx context.Context) error {
	if v.state != StateLoading {
		return nil
	}

	p, err := v.products.GetProduct(ctx, v.productID)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil || p == nil {
		v.state = StateError
		v.errMsg = NotFoundMessage
		v.product = nil
		v.gallery = nil
		if err == nil {
			err = productdom.ErrNotFound
		}
		return errors.Wrapf(err, "productview: load %s", v.productID)
	}

	v.product = p
	v.gallery = productdom.GalleryImages(p.ImageURL, p.Images)
	v.selected = 0
	v.quantity = 1
	v.errMsg = ""
	if v.quantityControlVisible() {
		v.state = StateLoadedWithQuantityControl
	} else {
		v.state = StateLoadedNoQuantityControl
	}
	return nil
}

func (v *View) State() State {
	return v.state
}

func (v *View) Product() *productdom.Product {
	return v.product
}

func (v *View) Gallery() []string {
	return append([]string(nil), v.gallery...)
}

func (v *View) SelectedImage() int {
	return v.selected
}

func (v *View) Quantity() int {
	return v.quantity
}

// SelectImage changes the displayed gallery image.
func (v *View) SelectImage(i int) error {
	if !v.loaded() {
		return ErrNotLoaded
	}
	if i < 0 || i >= len(v.gallery) {
		return ErrImageOutOfRange
	}
	v.selected = i
	return nil
}

// SetQuantity accepts n only when 1 <= n <= stock. Otherwise the quantity is
// left unchanged and false is returned.
func (v *View) SetQuantity(n int) bool {
	if !v.loaded() {
		return false
	}
	if n < 1 || n > v.product.Stock {
		return false
	}
	v.quantity = n
	return true
}

// SetQuantityInput applies raw text from the quantity input. The leading
// integer is used ("3 units" -> 3); text without one is rejected.
func (v *View) SetQuantityInput(raw string) bool {
	n, ok := parseLeadingInt(raw)
	if !ok {
		return false
	}
	return v.SetQuantity(n)
}

func (v *View) Increment() bool {
	return v.SetQuantity(v.quantity + 1)
}

func (v *View) Decrement() bool {
	return v.SetQuantity(v.quantity - 1)
}

// CanAddToCart reports whether the add-to-cart control is enabled.
func (v *View) CanAddToCart() bool {
	return v.loaded() && v.quantityControlVisible()
}

// AddToCart submits the current quantity. On success the caller should
// navigate to the cart. On failure the view keeps its state, records
// AddToCartFailedMessage and the control stays enabled for a retry.
func (v *View) AddToCart(ctx context.Context) (Navigation, error) {
	if !v.CanAddToCart() {
		return Navigation{}, ErrAddToCartDisabled
	}

	if err := v.cart.AddToCart(ctx, v.session.UserID, v.product.ID, v.quantity); err != nil {
		v.cartErr = AddToCartFailedMessage
		return Navigation{}, errors.Wrapf(err, "productview: add %s to cart", v.product.ID)
	}

	v.cartErr = ""
	return Navigation{To: CartPath}, nil
}

// SignInURL is the sign-in call to action that returns to this product.
func (v *View) SignInURL() string {
	return "/login?next=" + url.QueryEscape("/products/"+v.productID)
}

func (v *View) loaded() bool {
	return v.product != nil &&
		(v.state == StateLoadedNoQuantityControl || v.state == StateLoadedWithQuantityControl)
}

func (v *View) quantityControlVisible() bool {
	return v.product != nil && v.product.InStock() && v.session.SignedIn()
}

func parseLeadingInt(raw string) (int, bool) {
	s := strings.TrimLeft(raw, " \t\r\n")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		if n > (1<<31-1)/10 {
			return 0, false
		}
		n = n*10 + int(s[digits]-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
