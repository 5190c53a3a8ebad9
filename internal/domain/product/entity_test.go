package product

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGalleryImages(t *testing.T) {
	tests := []struct {
		name    string
		primary string
		images  []string
		want    []string
	}{
		{
			name:    "dedup against primary and within images",
			primary: "A",
			images:  []string{"A", "B", "A", "C"},
			want:    []string{"A", "B", "C"},
		},
		{name: "primary only", primary: "A", images: nil, want: []string{"A"}},
		{name: "no primary", primary: "", images: []string{"B", "B"}, want: []string{"B"}},
		{name: "blank entries skipped", primary: "A", images: []string{"", " ", "C"}, want: []string{"A", "C"}},
		{name: "nothing", primary: "", images: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GalleryImages(tt.primary, tt.images)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("GalleryImages mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterMatches(t *testing.T) {
	p := Product{Name: "Trail Shoe", Description: "Grippy outsole", Category: "Footwear"}

	cases := []struct {
		f    Filter
		want bool
	}{
		{Filter{}, true},
		{Filter{Category: "footwear"}, true},
		{Filter{Category: "Hats"}, false},
		{Filter{Search: "trail"}, true},
		{Filter{Search: "OUTSOLE"}, true},
		{Filter{Search: "boot"}, false},
		{Filter{Category: "Footwear", Search: "x"}, false},
	}
	for _, c := range cases {
		if got := c.f.Matches(p); got != c.want {
			t.Errorf("%+v.Matches = %v, want %v", c.f, got, c.want)
		}
	}
}

func TestValidate(t *testing.T) {
	ok := Product{ID: "p1", Name: "n", Price: 100, Stock: 0}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	for _, bad := range []Product{
		{Name: "n"},
		{ID: "p1"},
		{ID: "p1", Name: "n", Price: -1},
		{ID: "p1", Name: "n", Stock: -1},
	} {
		if err := bad.Validate(); err == nil {
			t.Errorf("Validate(%+v) = nil, want error", bad)
		}
	}
}
