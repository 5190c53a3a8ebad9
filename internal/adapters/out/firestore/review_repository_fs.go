// internal/adapters/out/firestore/review_repository_fs.go
package firestore

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"

	reviewdom "github.com/apaluca/ReactRetail/internal/domain/review"
)

// ReviewRepositoryFS stores reviews in the "reviews" collection, docId = review id.
// ListByProduct needs a composite index on (product ASC, createdAt DESC).
type ReviewRepositoryFS struct {
	Client *firestore.Client
}

func NewReviewRepositoryFS(client *firestore.Client) *ReviewRepositoryFS {
	return &ReviewRepositoryFS{Client: client}
}

func (r *ReviewRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(reviewsCollection)
}

func (r *ReviewRepositoryFS) ListByProduct(ctx context.Context, productID string) ([]reviewdom.Review, error) {
	q := r.col().
		Where("product", "==", strings.TrimSpace(productID)).
		OrderBy("createdAt", firestore.Desc)
	return r.collect(q.Documents(ctx))
}

func (r *ReviewRepositoryFS) GetByID(ctx context.Context, id string) (*reviewdom.Review, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, reviewdom.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, reviewdom.ErrNotFound
		}
		return nil, errors.Wrapf(err, "review_repository_fs: get %s", id)
	}
	return docToReview(snap)
}

func (r *ReviewRepositoryFS) FindByUserAndProduct(ctx context.Context, userID, productID string) (*reviewdom.Review, error) {
	q := r.col().
		Where("user", "==", strings.TrimSpace(userID)).
		Where("product", "==", strings.TrimSpace(productID)).
		Limit(1)

	list, err := r.collect(q.Documents(ctx))
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func (r *ReviewRepositoryFS) Create(ctx context.Context, rv *reviewdom.Review) error {
	if rv == nil || strings.TrimSpace(rv.ID) == "" {
		return reviewdom.ErrInvalid
	}
	_, err := r.col().Doc(rv.ID).Create(ctx, reviewDoc{
		Product:   rv.ProductID,
		User:      rv.UserID,
		UserName:  rv.UserName,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	})
	return errors.Wrapf(err, "review_repository_fs: create %s", rv.ID)
}

func (r *ReviewRepositoryFS) Delete(ctx context.Context, id string) error {
	_, err := r.col().Doc(strings.TrimSpace(id)).Delete(ctx)
	return errors.Wrapf(err, "review_repository_fs: delete %s", id)
}

func (r *ReviewRepositoryFS) collect(it *firestore.DocumentIterator) ([]reviewdom.Review, error) {
	defer it.Stop()

	out := []reviewdom.Review{}
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "review_repository_fs: query")
		}
		rv, err := docToReview(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, *rv)
	}
}

type reviewDoc struct {
	Product   string    `firestore:"product"`
	User      string    `firestore:"user"`
	UserName  string    `firestore:"userName"`
	Rating    int       `firestore:"rating"`
	Comment   string    `firestore:"comment"`
	CreatedAt time.Time `firestore:"createdAt"`
}

func docToReview(snap *firestore.DocumentSnapshot) (*reviewdom.Review, error) {
	var d reviewDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, errors.Wrapf(err, "review_repository_fs: decode %s", snap.Ref.ID)
	}
	return &reviewdom.Review{
		ID:        snap.Ref.ID,
		ProductID: d.Product,
		UserID:    d.User,
		UserName:  d.UserName,
		Rating:    d.Rating,
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt,
	}, nil
}
