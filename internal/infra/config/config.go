// internal/infra/config/config.go
package config

import (
	"os"
	"strings"
)

// Config holds the process environment, read once at startup.
type Config struct {
	Port     string
	LogLevel string

	GCPProjectID             string
	FirestoreProjectID       string
	GCPCreds                 string
	FirestoreCredentialsFile string

	// Backends: firestore | mongo | memory, plus redis for carts and
	// postgres for the catalog. Empty per-store values inherit StoreBackend.
	StoreBackend   string
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
	SignedImageURLs    bool

	AMQPURL      string
	AMQPExchange string

	OTLPEndpoint string

	CORSAllowedOrigins []string

	// AuthDisabledUID signs every request in as this uid when Firebase Auth
	// is not configured. Local development only.
	AuthDisabledUID string
}

// Load reads the environment.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT"))

	return &Config{
		Port:     getenvDefault("PORT", "8080"),
		LogLevel: getenvDefault("LOG_LEVEL", "info"),

		GCPProjectID:             defaultProject,
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),

		StoreBackend:   getenvDefault("STORE_BACKEND", "firestore"),
		CartBackend:    os.Getenv("CART_BACKEND"),
		CatalogBackend: os.Getenv("CATALOG_BACKEND"),
		ReviewBackend:  os.Getenv("REVIEW_BACKEND"),

		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: getenvDefault("MONGO_DATABASE", "reactretail"),

		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPasswordSecret: os.Getenv("REDIS_PASSWORD_SECRET"),

		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DatabaseURLSecret: os.Getenv("DATABASE_URL_SECRET"),

		ProductImageBucket: os.Getenv("PRODUCT_IMAGE_BUCKET"),
		SignedImageURLs:    getenvBool("SIGNED_IMAGE_URLS"),

		AMQPURL:      os.Getenv("AMQP_URL"),
		AMQPExchange: os.Getenv("AMQP_EXCHANGE"),

		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),

		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),

		AuthDisabledUID: os.Getenv("AUTH_DISABLED_UID"),
	}
}

// GetFirestoreProjectID returns the Firestore / GCP project.
func (c *Config) GetFirestoreProjectID() string {
	if v := strings.TrimSpace(c.FirestoreProjectID); v != "" {
		return v
	}
	return strings.TrimSpace(c.GCPProjectID)
}

// CredentialsFile prefers FIRESTORE_CREDENTIALS_FILE over
// GOOGLE_APPLICATION_CREDENTIALS.
func (c *Config) CredentialsFile() string {
	if v := strings.TrimSpace(c.FirestoreCredentialsFile); v != "" {
		return v
	}
	return strings.TrimSpace(c.GCPCreds)
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// splitList splits a comma separated list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
