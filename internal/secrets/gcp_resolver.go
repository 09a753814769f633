package secrets

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"shipping-admin-service/internal/models"
)

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// GCPResolver resolves gcp-secret:// credential references through Secret Manager
type GCPResolver struct {
	client    *secretmanager.Client
	projectID string
	cache     map[string]*cacheEntry
	cacheMu   sync.RWMutex
	cacheTTL  time.Duration
}

// NewGCPResolver creates a Secret Manager backed resolver
func NewGCPResolver(ctx context.Context, projectID string, cacheTTL time.Duration) (*GCPResolver, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret manager client: %w", err)
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}

	return &GCPResolver{
		client:    client,
		projectID: projectID,
		cache:     make(map[string]*cacheEntry),
		cacheTTL:  cacheTTL,
	}, nil
}

// Close closes the Secret Manager client
func (r *GCPResolver) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// SecretVersionName turns a reference into a full version resource name.
// "gcp-secret://carrier-token" reads the latest version of carrier-token in
// the configured project; a reference that already names a project is used as is.
func (r *GCPResolver) SecretVersionName(ref string) string {
	name := strings.TrimPrefix(ref, models.SecretRefPrefix)
	if !strings.HasPrefix(name, "projects/") {
		name = fmt.Sprintf("projects/%s/secrets/%s", r.projectID, name)
	}
	if !strings.Contains(name, "/versions/") {
		name += "/versions/latest"
	}
	return name
}

// Resolve returns the secret payload for ref. Values without the
// gcp-secret:// prefix are returned unchanged.
func (r *GCPResolver) Resolve(ctx context.Context, ref string) (string, error) {
	if !strings.HasPrefix(ref, models.SecretRefPrefix) {
		return ref, nil
	}
	name := r.SecretVersionName(ref)

	r.cacheMu.RLock()
	if entry, ok := r.cache[name]; ok && time.Now().Before(entry.expiresAt) {
		r.cacheMu.RUnlock()
		return entry.value, nil
	}
	r.cacheMu.RUnlock()

	result, err := r.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: name,
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret: %w", err)
	}
	value := string(result.Payload.Data)

	r.cacheMu.Lock()
	r.cache[name] = &cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(r.cacheTTL),
	}
	r.cacheMu.Unlock()

	return value, nil
}
