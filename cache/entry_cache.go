package cache

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const entryKeyPrefix = "entry:symbol:"

// EntryRecord is the cached entry price for one symbol.
type EntryRecord struct {
	Entry      decimal.Decimal `json:"entry"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// EntryCache remembers the last entry price per symbol so later lifecycle
// alerts that omit the entry price can still price their trade card.
// Entries expire after a TTL; concurrent writers race last-write-wins.
type EntryCache interface {
	Put(ctx context.Context, symbol string, entry decimal.Decimal) error
	Lookup(ctx context.Context, symbol string) (EntryRecord, bool)
}

// MemoryEntryCache is the default in-process backend. Expired entries are
// evicted lazily on lookup and swept on write.
type MemoryEntryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]EntryRecord
}

// NewMemoryEntryCache creates an in-memory entry cache with the given TTL.
func NewMemoryEntryCache(ttl time.Duration) *MemoryEntryCache {
	return &MemoryEntryCache{
		ttl:     ttl,
		entries: make(map[string]EntryRecord),
	}
}

// Put records the entry price for a symbol.
func (c *MemoryEntryCache) Put(_ context.Context, symbol string, entry decimal.Decimal) error {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Sweep expired entries so the map cannot grow without bound
	for sym, rec := range c.entries {
		if now.Sub(rec.RecordedAt) > c.ttl {
			delete(c.entries, sym)
		}
	}

	c.entries[symbol] = EntryRecord{Entry: entry, RecordedAt: now}
	return nil
}

// Lookup returns the cached entry price for a symbol if it has not expired.
func (c *MemoryEntryCache) Lookup(_ context.Context, symbol string) (EntryRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.entries[symbol]
	if !ok {
		return EntryRecord{}, false
	}
	if time.Since(rec.RecordedAt) > c.ttl {
		delete(c.entries, symbol)
		return EntryRecord{}, false
	}
	return rec, true
}

// RedisEntryCache stores entry prices in Redis so they survive process
// restarts. Expiry is delegated to Redis key TTLs.
type RedisEntryCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewRedisEntryCache creates a Redis-backed entry cache.
func NewRedisEntryCache(redis *RedisClient, ttl time.Duration) *RedisEntryCache {
	return &RedisEntryCache{redis: redis, ttl: ttl}
}

// Put records the entry price for a symbol.
func (c *RedisEntryCache) Put(ctx context.Context, symbol string, entry decimal.Decimal) error {
	rec := EntryRecord{Entry: entry, RecordedAt: time.Now()}
	return c.redis.Set(ctx, entryKeyPrefix+symbol, rec, c.ttl)
}

// Lookup returns the cached entry price for a symbol.
func (c *RedisEntryCache) Lookup(ctx context.Context, symbol string) (EntryRecord, bool) {
	var rec EntryRecord
	if err := c.redis.Get(ctx, entryKeyPrefix+symbol, &rec); err != nil {
		return EntryRecord{}, false
	}
	return rec, true
}

// NewEntryCache selects the configured backend, falling back to memory
// when Redis is requested but unreachable.
func NewEntryCache(backend string, redis *RedisClient, ttl time.Duration) EntryCache {
	if backend == "redis" && redis != nil {
		log.Printf("✅ Entry cache backed by Redis (TTL %v)", ttl)
		return NewRedisEntryCache(redis, ttl)
	}
	if backend == "redis" {
		log.Println("⚠️  Redis entry cache requested but Redis unavailable, using in-memory cache")
	}
	return NewMemoryEntryCache(ttl)
}
