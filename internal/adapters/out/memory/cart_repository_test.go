package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	cartdom "github.com/apaluca/ReactRetail/internal/domain/cart"
	"github.com/apaluca/ReactRetail/internal/domain/common"
)

func TestCartRepository_UpsertDerivesTotal(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := NewCartRepository().WithNow(func() time.Time { return now })

	c, err := cartdom.NewCart("u1", now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("NewCart: %v", err)
	}
	li, _ := cartdom.NewLineItem("p1", 3, common.Cents(999))
	if err := c.Add(li); err != nil {
		t.Fatalf("Add: %v", err)
	}
	c.Total = 1 // callers cannot set the total

	if err := repo.Upsert(ctx, c); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := repo.GetByUserID(ctx, "u1")
	if err != nil || got == nil {
		t.Fatalf("GetByUserID = %v, %v", got, err)
	}
	if got.Total != 2997 {
		t.Fatalf("Total = %d, want 2997", got.Total)
	}
	if !got.UpdatedAt.Equal(now) {
		t.Fatalf("UpdatedAt = %v, want %v", got.UpdatedAt, now)
	}
	if !got.ExpiresAt.Equal(now.Add(cartdom.DefaultCartTTL)) {
		t.Fatalf("ExpiresAt = %v", got.ExpiresAt)
	}
}

func TestCartRepository_RejectsInvalidQuantity(t *testing.T) {
	repo := NewCartRepository()
	c := &cartdom.Cart{
		UserID: "u1",
		Items:  []cartdom.LineItem{{ID: "l1", ProductID: "p1", Quantity: 0, Price: 100}},
	}

	if err := repo.Upsert(context.Background(), c); !errors.Is(err, cartdom.ErrInvalidQuantity) {
		t.Fatalf("Upsert err = %v, want ErrInvalidQuantity", err)
	}
	got, _ := repo.GetByUserID(context.Background(), "u1")
	if got != nil {
		t.Fatalf("invalid cart was stored: %+v", got)
	}
}

func TestCartRepository_GetMissingAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository()

	got, err := repo.GetByUserID(ctx, "nobody")
	if err != nil || got != nil {
		t.Fatalf("GetByUserID(missing) = %v, %v; want nil, nil", got, err)
	}

	c, _ := cartdom.NewCart("u1", time.Now())
	if err := repo.Upsert(ctx, c); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := repo.DeleteByUserID(ctx, "u1"); err != nil {
		t.Fatalf("DeleteByUserID: %v", err)
	}
	if got, _ := repo.GetByUserID(ctx, "u1"); got != nil {
		t.Fatalf("cart still present after delete")
	}
}

func TestCartRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository()

	c, _ := cartdom.NewCart("u1", time.Now())
	li, _ := cartdom.NewLineItem("p1", 1, 500)
	_ = c.Add(li)
	if err := repo.Upsert(ctx, c); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, _ := repo.GetByUserID(ctx, "u1")
	got.Items[0].Quantity = 99

	again, _ := repo.GetByUserID(ctx, "u1")
	if again.Items[0].Quantity != 1 {
		t.Fatalf("stored cart was mutated through a returned copy")
	}
}
