package shared

import (
	"strings"
	"testing"

	appcfg "github.com/apaluca/ReactRetail/internal/infra/config"
)

func TestResolveRuntimeSettings_InheritsStoreBackend(t *testing.T) {
	cfg := &appcfg.Config{
		StoreBackend:   "MongoDB",
		CartBackend:    "redis",
		CatalogBackend: "",
		MongoURI:       "mongodb://localhost:27017",
		RedisAddr:      "localhost:6379",
	}

	s, _, err := ResolveRuntimeSettings(cfg)
	if err != nil {
		t.Fatalf("ResolveRuntimeSettings: %v", err)
	}
	if s.CartBackend != BackendRedis || s.CatalogBackend != BackendMongo || s.ReviewBackend != BackendMongo {
		t.Fatalf("backends = %s/%s/%s", s.CartBackend, s.CatalogBackend, s.ReviewBackend)
	}
	if s.MongoDatabase != "reactretail" || s.AMQPExchange != "storefront.cart" {
		t.Fatalf("defaults = %q/%q", s.MongoDatabase, s.AMQPExchange)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if s.Uses(BackendFirestore) {
		t.Fatalf("firestore should not be used")
	}
}

func TestResolveRuntimeSettings_Warnings(t *testing.T) {
	s, warns, err := ResolveRuntimeSettings(&appcfg.Config{StoreBackend: "memory", AuthDisabledUID: "dev"})
	if err != nil {
		t.Fatalf("ResolveRuntimeSettings: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	joined := strings.Join(warns, "\n")
	for _, want := range []string{"AUTH_DISABLED_UID", "AMQP_URL", "PRODUCT_IMAGE_BUCKET"} {
		if !strings.Contains(joined, want) {
			t.Errorf("warnings missing %s: %v", want, warns)
		}
	}
}

func TestRuntimeSettings_Validate(t *testing.T) {
	base := RuntimeSettings{
		ProjectID:      "shop",
		CartBackend:    BackendFirestore,
		CatalogBackend: BackendFirestore,
		ReviewBackend:  BackendFirestore,
	}

	tests := []struct {
		name    string
		mutate  func(*RuntimeSettings)
		wantErr string
	}{
		{name: "ok", mutate: func(*RuntimeSettings) {}},
		{name: "unknown backend", mutate: func(s *RuntimeSettings) { s.ReviewBackend = BackendRedis }, wantErr: "REVIEW_BACKEND"},
		{name: "firestore without project", mutate: func(s *RuntimeSettings) { s.ProjectID = "" }, wantErr: "FIRESTORE_PROJECT_ID"},
		{name: "mongo without uri", mutate: func(s *RuntimeSettings) { s.CartBackend = BackendMongo }, wantErr: "MONGO_URI"},
		{name: "redis without addr", mutate: func(s *RuntimeSettings) { s.CartBackend = BackendRedis }, wantErr: "REDIS_ADDR"},
		{name: "postgres without url", mutate: func(s *RuntimeSettings) { s.CatalogBackend = BackendPostgres }, wantErr: "DATABASE_URL"},
		{name: "bucket whitespace", mutate: func(s *RuntimeSettings) { s.ProductImageBucket = "my bucket" }, wantErr: "PRODUCT_IMAGE_BUCKET"},
		{name: "bad origin", mutate: func(s *RuntimeSettings) { s.AllowedOrigins = []string{"example.com"} }, wantErr: "CORS origin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
