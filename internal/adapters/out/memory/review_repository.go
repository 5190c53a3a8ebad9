// internal/adapters/out/memory/review_repository.go
package memory

import (
	"context"
	"sort"
	"sync"

	reviewdom "github.com/apaluca/ReactRetail/internal/domain/review"
)

type ReviewRepository struct {
	mu      sync.RWMutex
	reviews map[string]reviewdom.Review
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{reviews: make(map[string]reviewdom.Review)}
}

func (r *ReviewRepository) ListByProduct(_ context.Context, productID string) ([]reviewdom.Review, error) {
	r.mu.RLock()
	out := []reviewdom.Review{}
	for _, rv := range r.reviews {
		if rv.ProductID == productID {
			out = append(out, rv)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ReviewRepository) GetByID(_ context.Context, id string) (*reviewdom.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rv, ok := r.reviews[id]
	if !ok {
		return nil, reviewdom.ErrNotFound
	}
	return &rv, nil
}

func (r *ReviewRepository) FindByUserAndProduct(_ context.Context, userID, productID string) (*reviewdom.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rv := range r.reviews {
		if rv.UserID == userID && rv.ProductID == productID {
			out := rv
			return &out, nil
		}
	}
	return nil, nil
}

func (r *ReviewRepository) Create(_ context.Context, rv *reviewdom.Review) error {
	if rv == nil || rv.ID == "" {
		return reviewdom.ErrInvalid
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.reviews {
		if existing.UserID == rv.UserID && existing.ProductID == rv.ProductID {
			return reviewdom.ErrAlreadyReviewed
		}
	}
	r.reviews[rv.ID] = *rv
	return nil
}

func (r *ReviewRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[id]; !ok {
		return reviewdom.ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}
