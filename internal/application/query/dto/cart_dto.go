// internal/application/query/dto/cart_dto.go
package dto

// CartDTO is the response shape of GET /api/cart and the cart page.
// Prices and totals are major units (29.97).
type CartDTO struct {
	ID    string        `json:"_id"`
	User  string        `json:"user"`
	Items []CartItemDTO `json:"items"`
	Total float64       `json:"total"`

	TotalLabel string `json:"totalLabel"`
	ItemCount  int    `json:"itemCount"`

	CreatedAt *string `json:"createdAt,omitempty"`
	UpdatedAt *string `json:"updatedAt,omitempty"`
}

type CartItemDTO struct {
	ID       string  `json:"_id"`
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`

	// resolved from the catalog; empty when the product no longer exists
	ProductName   string  `json:"productName,omitempty"`
	ImageURL      string  `json:"imageUrl,omitempty"`
	Stock         int     `json:"stock"`
	Available     bool    `json:"available"`
	Subtotal      float64 `json:"subtotal"`
	PriceLabel    string  `json:"priceLabel"`
	SubtotalLabel string  `json:"subtotalLabel"`
}
