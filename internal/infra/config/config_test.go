package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "GCP_PROJECT_ID", "GOOGLE_CLOUD_PROJECT", "FIRESTORE_PROJECT_ID",
		"STORE_BACKEND", "MONGO_DATABASE", "SIGNED_IMAGE_URLS", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "8080" || cfg.LogLevel != "info" {
		t.Fatalf("port/log level = %q/%q", cfg.Port, cfg.LogLevel)
	}
	if cfg.StoreBackend != "firestore" || cfg.MongoDatabase != "reactretail" {
		t.Fatalf("backend defaults = %q/%q", cfg.StoreBackend, cfg.MongoDatabase)
	}
	if cfg.SignedImageURLs {
		t.Fatalf("SignedImageURLs should default to false")
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Fatalf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GCP_PROJECT_ID", "shop-prod")
	t.Setenv("FIRESTORE_PROJECT_ID", "")
	t.Setenv("SIGNED_IMAGE_URLS", "TRUE")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, ,https://b.example.com ")
	t.Setenv("FIRESTORE_CREDENTIALS_FILE", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/secrets/sa.json")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if got := cfg.GetFirestoreProjectID(); got != "shop-prod" {
		t.Fatalf("GetFirestoreProjectID = %q", got)
	}
	if !cfg.SignedImageURLs {
		t.Fatalf("SignedImageURLs = false")
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if diff := cmp.Diff(want, cfg.CORSAllowedOrigins); diff != "" {
		t.Errorf("CORSAllowedOrigins (-want +got):\n%s", diff)
	}
	if got := cfg.CredentialsFile(); got != "/secrets/sa.json" {
		t.Fatalf("CredentialsFile = %q", got)
	}
}
