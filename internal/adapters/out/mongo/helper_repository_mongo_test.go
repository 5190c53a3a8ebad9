package mongo

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	cartdom "github.com/apaluca/ReactRetail/internal/domain/cart"
)

func TestIDFilter(t *testing.T) {
	if got := idFilter(" p1 "); !cmp.Equal(got, bson.M{"_id": "p1"}) {
		t.Fatalf("idFilter(p1) = %v", got)
	}

	hex := "64b7f0c2a1b2c3d4e5f60718"
	oid, _ := primitive.ObjectIDFromHex(hex)
	want := bson.M{"_id": bson.M{"$in": bson.A{hex, oid}}}
	if got := idFilter(hex); !cmp.Equal(got, want) {
		t.Fatalf("idFilter(hex) = %v", got)
	}
}

func TestIDString(t *testing.T) {
	oid, _ := primitive.ObjectIDFromHex("64b7f0c2a1b2c3d4e5f60718")
	tests := []struct {
		in   any
		want string
	}{
		{in: nil, want: ""},
		{in: "p1", want: "p1"},
		{in: oid, want: "64b7f0c2a1b2c3d4e5f60718"},
		{in: int32(7), want: "7"},
	}
	for _, tt := range tests {
		if got := idString(tt.in); got != tt.want {
			t.Errorf("idString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCartDocMongo_StoresMajorUnits(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	c := cartdom.DeriveTotals(cartdom.Cart{
		UserID: "u1",
		Items:  []cartdom.LineItem{{ID: "l1", ProductID: "p1", Quantity: 3, Price: 999}},
	}, now)

	doc := cartDocMongoFromDomain(&c)
	if doc.Total != 29.97 || doc.Items[0].Price != 9.99 {
		t.Fatalf("doc = %+v", doc)
	}

	back := doc.toDomain()
	if back.Total != 2997 || back.Items[0].Price != 999 || back.Items[0].ID != "l1" {
		t.Fatalf("toDomain = %+v", back)
	}
}
