package cart

import (
	"errors"
	"testing"
	"time"
)

func TestNewLineItem_RejectsNonPositiveQuantity(t *testing.T) {
	for _, qty := range []int{0, -1, -10} {
		if _, err := NewLineItem("p1", qty, 100); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("qty=%d: err = %v, want ErrInvalidQuantity", qty, err)
		}
	}

	li, err := NewLineItem(" p1 ", 1, 100)
	if err != nil {
		t.Fatalf("NewLineItem: %v", err)
	}
	if li.ProductID != "p1" || li.Quantity != 1 || li.ID == "" {
		t.Fatalf("unexpected line item %+v", li)
	}
}

func TestNewLineItem_RequiresProduct(t *testing.T) {
	if _, err := NewLineItem("  ", 1, 100); !errors.Is(err, ErrInvalidCart) {
		t.Fatalf("err = %v, want ErrInvalidCart", err)
	}
}

func TestCart_AddMergesSameProductAndPrice(t *testing.T) {
	c, err := NewCart("u1", time.Now())
	if err != nil {
		t.Fatalf("NewCart: %v", err)
	}

	first, _ := NewLineItem("p1", 3, 999)
	second, _ := NewLineItem("p1", 2, 999)
	if err := c.Add(first); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Add(second); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if len(c.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(c.Items))
	}
	if c.Items[0].Quantity != 5 || c.Items[0].ID != first.ID {
		t.Fatalf("merged line = %+v", c.Items[0])
	}
}

func TestCart_AddKeepsPriceSnapshots(t *testing.T) {
	c, _ := NewCart("u1", time.Now())
	old, _ := NewLineItem("p1", 1, 999)
	repriced, _ := NewLineItem("p1", 1, 1099)
	other, _ := NewLineItem("p2", 1, 500)

	for _, li := range []LineItem{old, repriced, other} {
		if err := c.Add(li); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	if len(c.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(c.Items))
	}
	if c.Items[0].Price != 999 || c.Items[1].Price != 1099 {
		t.Fatalf("captured prices rewritten: %+v", c.Items)
	}
	if got := c.QuantityOf("p1"); got != 2 {
		t.Fatalf("QuantityOf(p1) = %d, want 2", got)
	}
}

func TestCart_SetQuantity(t *testing.T) {
	c, _ := NewCart("u1", time.Now())
	a, _ := NewLineItem("p1", 1, 100)
	b, _ := NewLineItem("p2", 1, 200)
	_ = c.Add(a)
	_ = c.Add(b)

	if err := c.SetQuantity(a.ID, 4); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if li, _ := c.Line(a.ID); li.Quantity != 4 {
		t.Fatalf("quantity = %d, want 4", li.Quantity)
	}

	if err := c.SetQuantity(a.ID, -1); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("err = %v, want ErrInvalidQuantity", err)
	}

	if err := c.SetQuantity(a.ID, 0); err != nil {
		t.Fatalf("SetQuantity(0): %v", err)
	}
	if _, ok := c.Line(a.ID); ok {
		t.Fatalf("line at quantity 0 must be removed")
	}
	if len(c.Items) != 1 || c.Items[0].ID != b.ID {
		t.Fatalf("remaining items = %+v", c.Items)
	}

	if err := c.Remove("missing"); !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("err = %v, want ErrLineNotFound", err)
	}
}

func TestCart_PreservesInsertionOrder(t *testing.T) {
	c, _ := NewCart("u1", time.Now())
	for _, pid := range []string{"z", "a", "m"} {
		li, _ := NewLineItem(pid, 1, 100)
		_ = c.Add(li)
	}

	got := []string{c.Items[0].ProductID, c.Items[1].ProductID, c.Items[2].ProductID}
	want := []string{"z", "a", "m"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}
