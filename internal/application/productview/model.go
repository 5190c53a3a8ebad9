// internal/application/productview/model.go
package productview

import "fmt"

// Model is what templates and the JSON view endpoint render.
type Model struct {
	State     State  `json:"state"`
	ProductID string `json:"productId"`

	Product *ProductModel `json:"product,omitempty"`

	Gallery          []string `json:"gallery"`
	SelectedImage    int      `json:"selectedImage"`
	SelectedImageURL string   `json:"selectedImageUrl,omitempty"`
	ShowThumbnails   bool     `json:"showThumbnails"`

	StockLabel          string `json:"stockLabel,omitempty"`
	ShowQuantityControl bool   `json:"showQuantityControl"`
	Quantity            int    `json:"quantity"`
	MaxQuantity         int    `json:"maxQuantity"`
	CanAddToCart        bool   `json:"canAddToCart"`

	ShowSignIn bool   `json:"showSignIn"`
	SignInURL  string `json:"signInUrl,omitempty"`

	Error     string `json:"error,omitempty"`
	CartError string `json:"cartError,omitempty"`
}

type ProductModel struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	PriceLabel  string  `json:"priceLabel"`
	Stock       int     `json:"stock"`
	InStock     bool    `json:"inStock"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// Model snapshots the view for rendering.
func (v *View) Model() Model {
	m := Model{
		State:         v.state,
		ProductID:     v.productID,
		Gallery:       v.Gallery(),
		SelectedImage: v.selected,
		Quantity:      v.quantity,
		Error:         v.errMsg,
		CartError:     v.cartErr,
	}
	if m.Gallery == nil {
		m.Gallery = []string{}
	}

	if !v.loaded() {
		return m
	}

	p := v.product
	m.Product = &ProductModel{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.Float64(),
		PriceLabel:  "$" + p.Price.String(),
		Stock:       p.Stock,
		InStock:     p.InStock(),
		Category:    p.Category,
		Description: p.Description,
	}
	if v.selected < len(m.Gallery) {
		m.SelectedImageURL = m.Gallery[v.selected]
	}
	m.ShowThumbnails = len(m.Gallery) > 1

	if p.InStock() {
		m.StockLabel = fmt.Sprintf("In Stock (%d available)", p.Stock)
	} else {
		m.StockLabel = "Out of Stock"
	}

	m.ShowQuantityControl = v.state == StateLoadedWithQuantityControl
	m.MaxQuantity = p.Stock
	m.CanAddToCart = v.CanAddToCart()

	if !v.session.SignedIn() {
		m.ShowSignIn = true
		m.SignInURL = v.SignInURL()
	}
	return m
}
