// internal/domain/product/entity.go
package product

import (
	"errors"
	"strings"
	"time"

	"github.com/apaluca/ReactRetail/internal/domain/common"
)

var (
	ErrNotFound = errors.New("product: not found")
	ErrInvalid  = errors.New("product: invalid")
)

// Product is a catalog record. The storefront only reads it.
type Product struct {
	ID          string
	Name        string
	Price       common.Cents
	Stock       int
	Category    string
	Description string

	// ImageURL is the primary image; Images holds additional images and may
	// repeat ImageURL.
	ImageURL string
	Images   []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InStock reports whether at least one unit can be sold.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Validate checks the fields the storefront relies on.
func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Name) == "" {
		return ErrInvalid
	}
	if p.Price < 0 || p.Stock < 0 {
		return ErrInvalid
	}
	return nil
}

// GalleryImages returns the primary image followed by every additional image
// not already in the list. Order is preserved and repeats inside images are
// dropped too; empty references are skipped.
func GalleryImages(imageURL string, images []string) []string {
	out := make([]string, 0, len(images)+1)
	seen := make(map[string]struct{}, len(images)+1)

	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(imageURL)
	for _, img := range images {
		add(img)
	}
	return out
}
