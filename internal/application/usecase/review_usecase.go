// internal/application/usecase/review_usecase.go
package usecase

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	productdom "github.com/apaluca/ReactRetail/internal/domain/product"
	reviewdom "github.com/apaluca/ReactRetail/internal/domain/review"
)

var ErrForbidden = errors.New("usecase: forbidden")

// ProductReviews is the read model for a product's review list.
type ProductReviews struct {
	ProductID string
	Reviews   []reviewdom.Review
	Summary   reviewdom.Summary
}

type ReviewUsecase struct {
	reviews  reviewdom.Repository
	products productdom.Reader
	clock    Clock
}

func NewReviewUsecase(reviews reviewdom.Repository, products productdom.Reader) *ReviewUsecase {
	return &ReviewUsecase{reviews: reviews, products: products, clock: systemClock{}}
}

func (uc *ReviewUsecase) WithClock(clock Clock) *ReviewUsecase {
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

func (uc *ReviewUsecase) ListByProduct(ctx context.Context, productID string) (ProductReviews, error) {
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return ProductReviews{}, productdom.ErrNotFound
	}

	list, err := uc.reviews.ListByProduct(ctx, pid)
	if err != nil {
		return ProductReviews{}, errors.Wrapf(err, "review_usecase: list reviews for %s", pid)
	}
	if list == nil {
		list = []reviewdom.Review{}
	}
	return ProductReviews{ProductID: pid, Reviews: list, Summary: reviewdom.Summarize(list)}, nil
}

// Create adds the user's review for a product. One review per user and product.
func (uc *ReviewUsecase) Create(ctx context.Context, userID, userName, productID string, rating int, comment string) (*reviewdom.Review, error) {
	r, err := reviewdom.New(productID, userID, userName, rating, comment, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	p, err := uc.products.GetByID(ctx, r.ProductID)
	if err != nil {
		if errors.Is(err, productdom.ErrNotFound) {
			return nil, productdom.ErrNotFound
		}
		return nil, errors.Wrapf(err, "review_usecase: load product %s", r.ProductID)
	}
	if p == nil {
		return nil, productdom.ErrNotFound
	}

	existing, err := uc.reviews.FindByUserAndProduct(ctx, r.UserID, r.ProductID)
	if err != nil {
		return nil, errors.Wrap(err, "review_usecase: find existing review")
	}
	if existing != nil {
		return nil, reviewdom.ErrAlreadyReviewed
	}

	if err := uc.reviews.Create(ctx, r); err != nil {
		return nil, errors.Wrap(err, "review_usecase: create review")
	}
	return r, nil
}

// Delete removes a review. Only its author may delete it.
func (uc *ReviewUsecase) Delete(ctx context.Context, userID, reviewID string) error {
	uid := strings.TrimSpace(userID)
	rid := strings.TrimSpace(reviewID)
	if uid == "" || rid == "" {
		return reviewdom.ErrInvalid
	}

	r, err := uc.reviews.GetByID(ctx, rid)
	if err != nil {
		if errors.Is(err, reviewdom.ErrNotFound) {
			return reviewdom.ErrNotFound
		}
		return errors.Wrapf(err, "review_usecase: get review %s", rid)
	}
	if r == nil {
		return reviewdom.ErrNotFound
	}
	if r.UserID != uid {
		return ErrForbidden
	}

	if err := uc.reviews.Delete(ctx, rid); err != nil {
		return errors.Wrapf(err, "review_usecase: delete review %s", rid)
	}
	return nil
}
