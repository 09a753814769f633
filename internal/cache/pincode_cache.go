package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"shipping-admin-service/internal/models"
)

// PincodeCache caches pincode zone lookups in Redis.
// A nil client disables caching; every method then becomes a no-op miss.
type PincodeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPincodeCache creates a pincode cache on top of an already connected client
func NewPincodeCache(client *redis.Client, ttl time.Duration) *PincodeCache {
	return &PincodeCache{
		client: client,
		ttl:    ttl,
	}
}

// Enabled reports whether a Redis client is attached
func (c *PincodeCache) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *PincodeCache) cacheKey(tenantID, pincode string) string {
	return fmt.Sprintf("pincode_zone:%s:%s", tenantID, pincode)
}

// Get returns the cached zone for pincode, or nil on a miss
func (c *PincodeCache) Get(ctx context.Context, tenantID, pincode string) (*models.PincodeZone, error) {
	if !c.Enabled() {
		return nil, nil
	}

	data, err := c.client.Get(ctx, c.cacheKey(tenantID, pincode)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var zone models.PincodeZone
	if err := json.Unmarshal(data, &zone); err != nil {
		return nil, err
	}
	return &zone, nil
}

// Set stores zone under its pincode
func (c *PincodeCache) Set(ctx context.Context, tenantID string, zone *models.PincodeZone) error {
	if !c.Enabled() {
		return nil
	}

	data, err := json.Marshal(zone)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.cacheKey(tenantID, zone.Pincode), data, c.ttl).Err()
}

// Invalidate removes the cached entries for the given pincodes
func (c *PincodeCache) Invalidate(ctx context.Context, tenantID string, pincodes ...string) error {
	if !c.Enabled() || len(pincodes) == 0 {
		return nil
	}

	keys := make([]string, 0, len(pincodes))
	for _, p := range pincodes {
		keys = append(keys, c.cacheKey(tenantID, p))
	}
	return c.client.Del(ctx, keys...).Err()
}

// InvalidateAll removes every cached pincode for a tenant.
// Used after bulk imports.
func (c *PincodeCache) InvalidateAll(ctx context.Context, tenantID string) error {
	if !c.Enabled() {
		return nil
	}

	iter := c.client.Scan(ctx, 0, fmt.Sprintf("pincode_zone:%s:*", tenantID), 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) > 0 {
		return c.client.Del(ctx, keys...).Err()
	}
	return nil
}
