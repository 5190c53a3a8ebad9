// internal/platform/di/shared/secrets.go
package shared

import (
	"context"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/pkg/errors"
)

var errSecretManagerNotConfigured = errors.New("shared.secrets: secret manager client not configured")

// SecretResolver reads secret payloads from Secret Manager.
type SecretResolver struct {
	sm        *secretmanager.Client
	projectID string
}

func NewSecretResolver(sm *secretmanager.Client, projectID string) *SecretResolver {
	return &SecretResolver{sm: sm, projectID: strings.TrimSpace(projectID)}
}

// Resolve returns the trimmed payload of ref.
func (r *SecretResolver) Resolve(ctx context.Context, ref string) (string, error) {
	if r == nil || r.sm == nil {
		return "", errSecretManagerNotConfigured
	}
	name, err := SecretVersionName(r.projectID, ref)
	if err != nil {
		return "", err
	}

	resp, err := r.sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", errors.Wrapf(err, "shared.secrets: access %s", name)
	}
	if resp == nil || resp.Payload == nil {
		return "", errors.Errorf("shared.secrets: empty payload (%s)", name)
	}
	return strings.TrimSpace(string(resp.Payload.Data)), nil
}

// SecretVersionName expands ref into a full version resource name:
//   - "projects/p/secrets/s/versions/3" is kept
//   - "projects/p/secrets/s" gets "/versions/latest"
//   - "s" or "s:3" becomes "projects/{projectID}/secrets/s/versions/{latest|3}"
func SecretVersionName(projectID, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.New("shared.secrets: secret reference is empty")
	}

	if strings.HasPrefix(ref, "projects/") {
		if strings.Contains(ref, "/versions/") {
			return ref, nil
		}
		return strings.TrimRight(ref, "/") + "/versions/latest", nil
	}

	prj := strings.TrimSpace(projectID)
	if prj == "" {
		return "", errors.Errorf("shared.secrets: projectID is empty for %q", ref)
	}

	id, ver := ref, "latest"
	if i := strings.LastIndex(ref, ":"); i > 0 && i < len(ref)-1 {
		id, ver = ref[:i], ref[i+1:]
	}
	return "projects/" + prj + "/secrets/" + id + "/versions/" + ver, nil
}
