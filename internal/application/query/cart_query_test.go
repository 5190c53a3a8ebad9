package query

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/apaluca/ReactRetail/internal/application/query/dto"
	cartdom "github.com/apaluca/ReactRetail/internal/domain/cart"
	productdom "github.com/apaluca/ReactRetail/internal/domain/product"
)

type cartSourceFunc func(ctx context.Context, userID string) (*cartdom.Cart, error)

func (f cartSourceFunc) GetOrEmpty(ctx context.Context, userID string) (*cartdom.Cart, error) {
	return f(ctx, userID)
}

type productMap map[string]productdom.Product

func (m productMap) Get(_ context.Context, id string) (*productdom.Product, error) {
	p, ok := m[id]
	if !ok {
		return nil, productdom.ErrNotFound
	}
	return &p, nil
}

func TestCartQuery_GetByUserID(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	stored := cartdom.DeriveTotals(cartdom.Cart{
		UserID: "u1",
		Items: []cartdom.LineItem{
			{ID: "l1", ProductID: "p1", Quantity: 3, Price: 999},
			{ID: "l2", ProductID: "gone", Quantity: 1, Price: 250},
		},
	}, now)

	q := NewCartQuery(
		cartSourceFunc(func(context.Context, string) (*cartdom.Cart, error) { return &stored, nil }),
		productMap{"p1": {ID: "p1", Name: "Mug", ImageURL: "https://img/mug.jpg", Stock: 2}},
	)

	got, err := q.GetByUserID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}

	want := dto.CartDTO{
		ID:         "u1",
		User:       "u1",
		Total:      32.47,
		TotalLabel: "32.47",
		ItemCount:  4,
		Items: []dto.CartItemDTO{
			{
				ID: "l1", Product: "p1", Quantity: 3, Price: 9.99,
				ProductName: "Mug", ImageURL: "https://img/mug.jpg", Stock: 2, Available: false,
				Subtotal: 29.97, PriceLabel: "9.99", SubtotalLabel: "29.97",
			},
			{
				ID: "l2", Product: "gone", Quantity: 1, Price: 2.5,
				Subtotal: 2.5, PriceLabel: "2.50", SubtotalLabel: "2.50",
			},
		},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(dto.CartDTO{}, "CreatedAt", "UpdatedAt")); diff != "" {
		t.Fatalf("cart dto mismatch (-want +got):\n%s", diff)
	}
}

func TestToCartDTO_Nil(t *testing.T) {
	got := ToCartDTO(nil, nil)
	if got.Items == nil || len(got.Items) != 0 || got.TotalLabel != "0.00" {
		t.Fatalf("ToCartDTO(nil) = %+v", got)
	}
}
