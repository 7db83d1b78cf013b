package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"emailtriage/internal/model"
	"emailtriage/pkg/metrics"
)

// Entry is one cached classification plus its suggested reply.
type Entry struct {
	Classification    model.Classification `json:"classification"`
	SuggestedResponse string               `json:"suggested_response"`
}

// ResultCache is an ephemeral TTL cache of classification results in
// Redis, keyed by a hash of the normalized email text. It is an
// optimization only: a nil *ResultCache is valid and all methods are
// no-ops on it, and Redis failures never affect the request.
type ResultCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New returns nil when addr is empty, disabling caching.
func New(addr, password string, db int, ttl time.Duration, logger *zap.Logger) *ResultCache {
	if addr == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ResultCache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl:    ttl,
		logger: logger,
	}
}

// Key derives the cache key from the whitespace-normalized text, so the
// same email cached once resolves identically however it was submitted.
func Key(text string) string {
	sum := sha256.Sum256([]byte(model.CollapseWhitespace(text)))
	return "classify:" + hex.EncodeToString(sum[:])
}

// Get returns the cached entry for the text, if any.
func (c *ResultCache) Get(ctx context.Context, text string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}

	raw, err := c.rdb.Get(ctx, Key(text)).Bytes()
	if err == redis.Nil {
		metrics.IncrementCacheLookup("miss")
		return Entry{}, false
	}
	if err != nil {
		metrics.IncrementCacheLookup("error")
		c.logger.Warn("Cache lookup failed", zap.Error(err))
		return Entry{}, false
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		metrics.IncrementCacheLookup("error")
		c.logger.Warn("Cache entry corrupted", zap.Error(err))
		return Entry{}, false
	}

	metrics.IncrementCacheLookup("hit")
	return entry, true
}

// Set stores the entry with the configured TTL. Failures are logged and
// dropped.
func (c *ResultCache) Set(ctx context.Context, text string, entry Entry) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		c.logger.Warn("Failed to marshal cache entry", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, Key(text), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to store cache entry", zap.Error(err))
	}
}
