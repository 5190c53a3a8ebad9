package main

import (
	"context"
	"strings"
	"testing"

	"github.com/apaluca/ReactRetail/internal/adapters/out/memory"
	"github.com/apaluca/ReactRetail/internal/domain/common"
)

const seedJSON = `[
  {"_id": "p1", "name": "Mug", "price": 9.99, "stock": 5, "category": "Kitchen",
   "imageUrl": "products/mug.jpg", "images": ["products/mug.jpg", "products/mug-2.jpg"]},
  {"id": "p2", "name": "Lamp", "price": 24.5, "stock": 0}
]`

func TestDecodeProducts(t *testing.T) {
	products, err := decodeProducts(strings.NewReader(seedJSON))
	if err != nil {
		t.Fatalf("decodeProducts: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("len = %d", len(products))
	}
	if products[0].ID != "p1" || products[0].Price != common.Cents(999) {
		t.Fatalf("p1 = %+v", products[0])
	}
	if products[1].ID != "p2" || products[1].Price != common.Cents(2450) || products[1].Stock != 0 {
		t.Fatalf("p2 = %+v", products[1])
	}
}

func TestDecodeProducts_Invalid(t *testing.T) {
	if _, err := decodeProducts(strings.NewReader(`[{"id": "p1", "price": 1}]`)); err == nil {
		t.Fatalf("expected error for product without name")
	}
	if _, err := decodeProducts(strings.NewReader(`{`)); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestSeed(t *testing.T) {
	products, err := decodeProducts(strings.NewReader(seedJSON))
	if err != nil {
		t.Fatalf("decodeProducts: %v", err)
	}
	repo := memory.NewProductRepository()

	n, err := seed(context.Background(), repo, products)
	if err != nil || n != 2 {
		t.Fatalf("seed = (%d, %v)", n, err)
	}
	got, err := repo.GetByID(context.Background(), "p1")
	if err != nil || got.Name != "Mug" {
		t.Fatalf("GetByID = (%+v, %v)", got, err)
	}
}
