package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/apaluca/ReactRetail/internal/domain/common"
	productdom "github.com/apaluca/ReactRetail/internal/domain/product"
)

func TestProductRepository_List(t *testing.T) {
	repo := NewProductRepository(
		productdom.Product{ID: "p1", Name: "Banana", Category: "Fruit", Price: 100, Stock: 1},
		productdom.Product{ID: "p2", Name: "Apple", Category: "Fruit", Price: 200, Stock: 1},
		productdom.Product{ID: "p3", Name: "Hammer", Category: "Tools", Description: "steel head", Price: 900},
	)

	tests := []struct {
		name      string
		filter    productdom.Filter
		page      common.Page
		wantIDs   []string
		wantTotal int
		wantPages int
	}{
		{name: "all", wantIDs: []string{"p2", "p1", "p3"}, wantTotal: 3, wantPages: 1},
		{name: "category", filter: productdom.Filter{Category: "fruit"}, wantIDs: []string{"p2", "p1"}, wantTotal: 2, wantPages: 1},
		{name: "search description", filter: productdom.Filter{Search: "STEEL"}, wantIDs: []string{"p3"}, wantTotal: 1, wantPages: 1},
		{name: "second page", page: common.Page{Number: 2, PerPage: 2}, wantIDs: []string{"p3"}, wantTotal: 3, wantPages: 2},
		{name: "past the end", page: common.Page{Number: 5, PerPage: 2}, wantIDs: []string{}, wantTotal: 3, wantPages: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := repo.List(context.Background(), tt.filter, tt.page)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			ids := []string{}
			for _, p := range res.Items {
				ids = append(ids, p.ID)
			}
			if diff := cmp.Diff(tt.wantIDs, ids); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
			if res.TotalCount != tt.wantTotal || res.TotalPages != tt.wantPages {
				t.Errorf("totals = %d/%d, want %d/%d", res.TotalCount, res.TotalPages, tt.wantTotal, tt.wantPages)
			}
		})
	}
}

func TestProductRepository_GetByIDMissing(t *testing.T) {
	_, err := NewProductRepository().GetByID(context.Background(), "nope")
	if !errors.Is(err, productdom.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
