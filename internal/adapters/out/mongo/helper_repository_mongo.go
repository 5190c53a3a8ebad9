// internal/adapters/out/mongo/helper_repository_mongo.go
package mongo

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	cartsCollection    = "carts"
	productsCollection = "products"
	reviewsCollection  = "reviews"
)

// idFilter matches an _id stored either as a string or as an ObjectID
// (catalogs imported from a Mongoose store keep ObjectIDs).
func idFilter(id string) bson.M {
	id = strings.TrimSpace(id)
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
	}
	return bson.M{"_id": id}
}

// idString renders a decoded _id.
func idString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case primitive.ObjectID:
		return t.Hex()
	default:
		return fmt.Sprint(t)
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}
