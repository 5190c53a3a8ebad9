// internal/platform/di/shared/runtime_settings_validate.go
package shared

import (
	"fmt"
	"strings"
)

var allowedBackends = map[string][]string{
	"CART_BACKEND":    {BackendFirestore, BackendMongo, BackendMemory, BackendRedis},
	"CATALOG_BACKEND": {BackendFirestore, BackendMongo, BackendMemory, BackendPostgres},
	"REVIEW_BACKEND":  {BackendFirestore, BackendMongo, BackendMemory},
}

// Validate fails fast on settings that would leave a store unusable.
// Optional features (tracing, events, signed URLs) stay disabled when empty.
func (s RuntimeSettings) Validate() error {
	for key, v := range map[string]string{
		"CART_BACKEND":    s.CartBackend,
		"CATALOG_BACKEND": s.CatalogBackend,
		"REVIEW_BACKEND":  s.ReviewBackend,
	} {
		if !contains(allowedBackends[key], v) {
			return fmt.Errorf("shared.runtime_settings: %s=%q is not one of %s", key, v, strings.Join(allowedBackends[key], "|"))
		}
	}

	if s.Uses(BackendFirestore) && s.ProjectID == "" {
		return fmt.Errorf("shared.runtime_settings: firestore backend needs FIRESTORE_PROJECT_ID or GCP_PROJECT_ID")
	}
	if s.Uses(BackendMongo) && s.MongoURI == "" {
		return fmt.Errorf("shared.runtime_settings: mongo backend needs MONGO_URI")
	}
	if s.CartBackend == BackendRedis && s.RedisAddr == "" {
		return fmt.Errorf("shared.runtime_settings: redis cart backend needs REDIS_ADDR")
	}
	if s.CatalogBackend == BackendPostgres && s.DatabaseURL == "" && s.DatabaseURLSecret == "" {
		return fmt.Errorf("shared.runtime_settings: postgres catalog backend needs DATABASE_URL or DATABASE_URL_SECRET")
	}
	if s.NeedsSecretManager() && s.ProjectID == "" {
		return fmt.Errorf("shared.runtime_settings: secret references need GCP_PROJECT_ID")
	}

	// GCS bucket names cannot contain whitespace.
	if strings.ContainsAny(s.ProductImageBucket, " \t\r\n") {
		return fmt.Errorf("shared.runtime_settings: PRODUCT_IMAGE_BUCKET contains whitespace (got %q)", s.ProductImageBucket)
	}

	for _, o := range s.AllowedOrigins {
		if o == "*" {
			continue
		}
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("shared.runtime_settings: CORS origin must start with http:// or https:// (got %q)", o)
		}
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
