package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/RambhuSingh1819/Al-Based-Crop-Recommendation-for-Farmers/internal/model"
)

// AdvisoryCache stores finished advisories keyed by the SHA-256 of the
// uploaded image bytes, so re-uploads of the same photo skip inference.
type AdvisoryCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewAdvisoryCache(client *redisv9.Client, ttl time.Duration) *AdvisoryCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AdvisoryCache{
		client: client,
		ttl:    ttl,
	}
}

// ImageKey derives the cache key for an image's raw bytes.
func ImageKey(imageData []byte) string {
	sum := sha256.Sum256(imageData)
	return "advisor:result:" + hex.EncodeToString(sum[:])
}

func (c *AdvisoryCache) Get(ctx context.Context, key string) ([]model.Advisory, bool, error) {
	raw, err := c.client.Get(ctx, key).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get advisory failed: %w", err)
	}

	var advisories []model.Advisory
	if err := json.Unmarshal([]byte(raw), &advisories); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached advisory failed: %w", err)
	}
	return advisories, true, nil
}

func (c *AdvisoryCache) Set(ctx context.Context, key string, advisories []model.Advisory) error {
	payload, err := json.Marshal(advisories)
	if err != nil {
		return fmt.Errorf("marshal advisory cache failed: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set advisory failed: %w", err)
	}
	return nil
}
