// internal/adapters/out/firestore/helper_repository_fs.go
package firestore

import (
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	cartsCollection    = "carts"
	productsCollection = "products"
	reviewsCollection  = "reviews"
)

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func utcNow() time.Time {
	return time.Now().UTC()
}
