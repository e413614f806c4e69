package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	equipmentCacheKeyPrefix = "equipment"
	scanBatchSize           = 100
)

// CachedEquipment is the denormalized read model stored in Redis.
// Fields are stored as a Redis hash.
type CachedEquipment struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Supplier      string    `json:"supplier"`
	Amount        int       `json:"amount"`
	LowerBound    int       `json:"lower_bound"`
	OrderQuantity int       `json:"order_quantity"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EquipmentCache provides structured read/write operations for the equipment
// read model. Key format: "equipment:{id}".
type EquipmentCache struct {
	client *RedisClient
}

// NewEquipmentCache creates a new EquipmentCache backed by the given RedisClient.
func NewEquipmentCache(r *RedisClient) *EquipmentCache {
	return &EquipmentCache{client: r}
}

// Get retrieves a cached record by id.
// Returns redis.Nil error when the key does not exist.
func (c *EquipmentCache) Get(ctx context.Context, id int) (*CachedEquipment, error) {
	vals, err := c.client.Client().HGetAll(ctx, key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	out := &CachedEquipment{Name: vals["name"], Supplier: vals["supplier"]}
	ints := []struct {
		field string
		dst   *int
	}{
		{"id", &out.ID},
		{"amount", &out.Amount},
		{"lower_bound", &out.LowerBound},
		{"order_quantity", &out.OrderQuantity},
	}
	for _, f := range ints {
		n, err := strconv.Atoi(vals[f.field])
		if err != nil {
			return nil, fmt.Errorf("cache parse %s: %w", f.field, err)
		}
		*f.dst = n
	}
	if out.UpdatedAt, err = time.Parse(time.RFC3339Nano, vals["updated_at"]); err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}
	return out, nil
}

// Set writes a record as a Redis hash. Entries carry no TTL: they mirror the
// registry and are cleared by Reset on startup.
func (c *EquipmentCache) Set(ctx context.Context, e *CachedEquipment) error {
	err := c.client.Client().HSet(ctx, key(e.ID),
		"id", e.ID,
		"name", e.Name,
		"supplier", e.Supplier,
		"amount", e.Amount,
		"lower_bound", e.LowerBound,
		"order_quantity", e.OrderQuantity,
		"updated_at", e.UpdatedAt.UTC().Format(time.RFC3339Nano),
	).Err()
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached record.
func (c *EquipmentCache) Delete(ctx context.Context, id int) error {
	if err := c.client.Client().Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// Reset deletes every equipment key. Run it at startup so the read model
// starts as empty as the registry does. Returns the number of keys removed.
func (c *EquipmentCache) Reset(ctx context.Context) (int, error) {
	rdb := c.client.Client()
	iter := rdb.Scan(ctx, 0, equipmentCacheKeyPrefix+":*", scanBatchSize).Iterator()

	removed := 0
	batch := make([]string, 0, scanBatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := rdb.Del(ctx, batch...).Result()
		if err != nil {
			return fmt.Errorf("cache reset: %w", err)
		}
		removed += int(n)
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatchSize {
			if err := flush(); err != nil {
				return removed, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("cache reset scan: %w", err)
	}
	if err := flush(); err != nil {
		return removed, err
	}
	return removed, nil
}

// key builds the Redis key: "equipment:{id}"
func key(id int) string {
	return equipmentCacheKeyPrefix + ":" + strconv.Itoa(id)
}
