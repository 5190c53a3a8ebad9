package shared

import (
	"context"
	"testing"
)

func TestSecretVersionName(t *testing.T) {
	tests := []struct {
		project, ref, want string
		wantErr            bool
	}{
		{project: "shop", ref: "redis-password", want: "projects/shop/secrets/redis-password/versions/latest"},
		{project: "shop", ref: "db-url:4", want: "projects/shop/secrets/db-url/versions/4"},
		{project: "", ref: "projects/x/secrets/y", want: "projects/x/secrets/y/versions/latest"},
		{project: "", ref: "projects/x/secrets/y/versions/2", want: "projects/x/secrets/y/versions/2"},
		{project: "", ref: "redis-password", wantErr: true},
		{project: "shop", ref: " ", wantErr: true},
	}
	for _, tt := range tests {
		got, err := SecretVersionName(tt.project, tt.ref)
		if (err != nil) != tt.wantErr {
			t.Fatalf("SecretVersionName(%q, %q) err = %v", tt.project, tt.ref, err)
		}
		if got != tt.want {
			t.Errorf("SecretVersionName(%q, %q) = %q, want %q", tt.project, tt.ref, got, tt.want)
		}
	}
}

func TestSecretResolver_NotConfigured(t *testing.T) {
	var r *SecretResolver
	if _, err := r.Resolve(context.Background(), "x"); err != errSecretManagerNotConfigured {
		t.Fatalf("err = %v", err)
	}
}
