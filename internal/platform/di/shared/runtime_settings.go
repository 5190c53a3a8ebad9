// internal/platform/di/shared/runtime_settings.go
package shared

import (
	"errors"
	"strings"

	amqpout "github.com/apaluca/ReactRetail/internal/adapters/out/amqp"
	appcfg "github.com/apaluca/ReactRetail/internal/infra/config"
)

const (
	BackendFirestore = "firestore"
	BackendMongo     = "mongo"
	BackendMemory    = "memory"
	BackendRedis     = "redis"
	BackendPostgres  = "postgres"
)

// RuntimeSettings is the normalized view of Config used by DI.
// It holds values only, no clients.
type RuntimeSettings struct {
	ProjectID       string
	CredentialsFile string

	CartBackend    string
	CatalogBackend string
	ReviewBackend  string

	MongoURI      string
	MongoDatabase string

	RedisAddr           string
	RedisPasswordSecret string

	DatabaseURL       string
	DatabaseURLSecret string

	ProductImageBucket string
	SignImageURLs      bool

	AMQPURL      string
	AMQPExchange string

	OTLPEndpoint   string
	AllowedOrigins []string

	AuthDisabledUID string
}

// ResolveRuntimeSettings normalizes cfg. It does not log; warnings are
// returned for the caller to surface.
func ResolveRuntimeSettings(cfg *appcfg.Config) (RuntimeSettings, []string, error) {
	if cfg == nil {
		return RuntimeSettings{}, nil, errors.New("shared.runtime_settings: cfg is nil")
	}

	var warns []string
	store := normalizeBackend(cfg.StoreBackend)
	if store == "" {
		store = BackendFirestore
	}

	s := RuntimeSettings{
		ProjectID:       cfg.GetFirestoreProjectID(),
		CredentialsFile: cfg.CredentialsFile(),

		CartBackend:    orDefault(normalizeBackend(cfg.CartBackend), store),
		CatalogBackend: orDefault(normalizeBackend(cfg.CatalogBackend), store),
		ReviewBackend:  orDefault(normalizeBackend(cfg.ReviewBackend), store),

		MongoURI:      strings.TrimSpace(cfg.MongoURI),
		MongoDatabase: orDefault(strings.TrimSpace(cfg.MongoDatabase), "reactretail"),

		RedisAddr:           strings.TrimSpace(cfg.RedisAddr),
		RedisPasswordSecret: strings.TrimSpace(cfg.RedisPasswordSecret),

		DatabaseURL:       strings.TrimSpace(cfg.DatabaseURL),
		DatabaseURLSecret: strings.TrimSpace(cfg.DatabaseURLSecret),

		ProductImageBucket: strings.TrimSpace(cfg.ProductImageBucket),
		SignImageURLs:      cfg.SignedImageURLs,

		AMQPURL:      strings.TrimSpace(cfg.AMQPURL),
		AMQPExchange: orDefault(strings.TrimSpace(cfg.AMQPExchange), amqpout.DefaultExchange),

		OTLPEndpoint:   strings.TrimSpace(cfg.OTLPEndpoint),
		AllowedOrigins: cfg.CORSAllowedOrigins,

		AuthDisabledUID: strings.TrimSpace(cfg.AuthDisabledUID),
	}

	if s.ProductImageBucket == "" {
		warns = append(warns, "PRODUCT_IMAGE_BUCKET is empty (image references are served as stored)")
	}
	if s.SignImageURLs && s.ProductImageBucket == "" {
		warns = append(warns, "SIGNED_IMAGE_URLS is set without PRODUCT_IMAGE_BUCKET")
	}
	if s.AuthDisabledUID != "" {
		warns = append(warns, "AUTH_DISABLED_UID is set: requests without Firebase Auth are signed in as "+s.AuthDisabledUID)
	}
	if s.AMQPURL == "" {
		warns = append(warns, "AMQP_URL is empty (cart events are dropped)")
	}
	if len(s.AllowedOrigins) == 0 {
		warns = append(warns, "CORS_ALLOWED_ORIGINS is empty (all origins allowed, without credentials)")
	}

	return s, warns, nil
}

// Uses reports whether any store runs on backend.
func (s RuntimeSettings) Uses(backend string) bool {
	return s.CartBackend == backend || s.CatalogBackend == backend || s.ReviewBackend == backend
}

// NeedsSecretManager reports whether a *_SECRET setting must be resolved.
func (s RuntimeSettings) NeedsSecretManager() bool {
	return (s.CartBackend == BackendRedis && s.RedisPasswordSecret != "") ||
		(s.CatalogBackend == BackendPostgres && s.DatabaseURL == "" && s.DatabaseURLSecret != "")
}

func normalizeBackend(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "mongodb":
		return BackendMongo
	case "pg", "postgresql":
		return BackendPostgres
	case "inmemory", "mem":
		return BackendMemory
	}
	return v
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
