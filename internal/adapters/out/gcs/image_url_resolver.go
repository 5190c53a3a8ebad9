// internal/adapters/out/gcs/image_url_resolver.go
package gcs

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"

	gcscommon "github.com/apaluca/ReactRetail/internal/adapters/out/gcs/common"
)

const defaultSignedURLTTL = 15 * time.Minute

// ImageURLResolver turns stored product image references into browser URLs.
//
// A reference can be:
//   - http(s)://... outside GCS (returned as-is)
//   - gs://bucket/object or https://storage.googleapis.com/bucket/object
//   - an object path inside Bucket
//
// When Sign is set and Client is non-nil, GCS objects get a V4 signed GET URL;
// otherwise the public URL is returned.
type ImageURLResolver struct {
	Client       *storage.Client
	Bucket       string
	Sign         bool
	SignedURLTTL time.Duration

	now func() time.Time
}

func NewImageURLResolver(client *storage.Client, bucket string, sign bool) *ImageURLResolver {
	return &ImageURLResolver{
		Client:       client,
		Bucket:       strings.TrimSpace(bucket),
		Sign:         sign,
		SignedURLTTL: defaultSignedURLTTL,
		now:          time.Now,
	}
}

func (r *ImageURLResolver) ResolveImageURL(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil
	}

	bucket, object, ok := gcscommon.ParseGCSURL(ref)
	if !ok {
		if gcscommon.IsAbsoluteHTTP(ref) {
			return ref, nil
		}
		bucket = r.Bucket
		object = strings.TrimLeft(ref, "/")
		if bucket == "" {
			// Nothing to resolve against; keep the reference.
			return ref, nil
		}
	}

	if !r.Sign || r.Client == nil {
		return gcscommon.GCSPublicURL(bucket, object, r.Bucket), nil
	}

	u, err := r.Client.Bucket(bucket).SignedURL(object, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: r.clock().UTC().Add(r.ttl()),
	})
	if err != nil {
		return "", errors.Wrapf(err, "gcs: sign %s/%s", bucket, object)
	}
	return u, nil
}

func (r *ImageURLResolver) ttl() time.Duration {
	if r.SignedURLTTL <= 0 {
		return defaultSignedURLTTL
	}
	return r.SignedURLTTL
}

func (r *ImageURLResolver) clock() time.Time {
	if r.now == nil {
		return time.Now()
	}
	return r.now()
}
