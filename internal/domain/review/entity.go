// internal/domain/review/entity.go
package review

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrInvalid         = errors.New("review: invalid")
	ErrNotFound        = errors.New("review: not found")
	ErrAlreadyReviewed = errors.New("review: user already reviewed this product")
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 2000
)

type Review struct {
	ID        string
	ProductID string
	UserID    string
	UserName  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// New validates input and assigns a fresh id.
func New(productID, userID, userName string, rating int, comment string, now time.Time) (*Review, error) {
	pid := strings.TrimSpace(productID)
	uid := strings.TrimSpace(userID)
	comment = strings.TrimSpace(comment)

	if pid == "" || uid == "" {
		return nil, ErrInvalid
	}
	if rating < MinRating || rating > MaxRating {
		return nil, ErrInvalid
	}
	if utf8.RuneCountInString(comment) > MaxCommentLength {
		return nil, ErrInvalid
	}

	name := strings.TrimSpace(userName)
	if name == "" {
		name = "Anonymous"
	}

	return &Review{
		ID:        uuid.NewString(),
		ProductID: pid,
		UserID:    uid,
		UserName:  name,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
	}, nil
}

// Summary aggregates ratings for one product.
type Summary struct {
	Count   int
	Average float64 // rounded to one decimal, 0 when Count == 0
}

func Summarize(reviews []Review) Summary {
	if len(reviews) == 0 {
		return Summary{}
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return Summary{Count: len(reviews), Average: math.Round(avg*10) / 10}
}

// Repository is the persistence port for reviews.
type Repository interface {
	// ListByProduct returns reviews newest first.
	ListByProduct(ctx context.Context, productID string) ([]Review, error)
	GetByID(ctx context.Context, id string) (*Review, error)
	// FindByUserAndProduct returns (nil, nil) when absent.
	FindByUserAndProduct(ctx context.Context, userID, productID string) (*Review, error)
	Create(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id string) error
}
