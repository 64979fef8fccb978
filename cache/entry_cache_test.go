package cache

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestMemoryEntryCachePutLookup(t *testing.T) {
	c := NewMemoryEntryCache(time.Hour)
	ctx := context.Background()

	entry := decimal.NewFromInt(50000)
	if err := c.Put(ctx, "BTCUSDT", entry); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	rec, ok := c.Lookup(ctx, "BTCUSDT")
	if !ok {
		t.Fatal("expected cache hit for BTCUSDT")
	}
	if !rec.Entry.Equal(entry) {
		t.Errorf("Entry = %s, want 50000", rec.Entry)
	}
	if rec.RecordedAt.IsZero() {
		t.Error("RecordedAt not set")
	}

	if _, ok := c.Lookup(ctx, "ETHUSDT"); ok {
		t.Error("expected miss for uncached symbol")
	}
}

func TestMemoryEntryCacheOverwrite(t *testing.T) {
	c := NewMemoryEntryCache(time.Hour)
	ctx := context.Background()

	c.Put(ctx, "BTCUSDT", decimal.NewFromInt(50000))
	c.Put(ctx, "BTCUSDT", decimal.NewFromInt(51000))

	rec, ok := c.Lookup(ctx, "BTCUSDT")
	if !ok || !rec.Entry.Equal(decimal.NewFromInt(51000)) {
		t.Errorf("expected last write to win, got %v ok=%v", rec.Entry, ok)
	}
}

func TestMemoryEntryCacheTTL(t *testing.T) {
	c := NewMemoryEntryCache(10 * time.Millisecond)
	ctx := context.Background()

	c.Put(ctx, "BTCUSDT", decimal.NewFromInt(50000))
	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Lookup(ctx, "BTCUSDT"); ok {
		t.Error("expected expired entry to miss")
	}

	// Writes sweep expired entries
	c.Put(ctx, "ETHUSDT", decimal.NewFromInt(3000))
	c.mu.Lock()
	if _, exists := c.entries["BTCUSDT"]; exists {
		t.Error("expected expired BTCUSDT entry to be swept on write")
	}
	c.mu.Unlock()
}

func TestNewEntryCacheFallback(t *testing.T) {
	// Redis requested but unavailable falls back to memory
	c := NewEntryCache("redis", nil, time.Hour)
	if _, ok := c.(*MemoryEntryCache); !ok {
		t.Errorf("expected memory fallback, got %T", c)
	}

	c = NewEntryCache("memory", nil, time.Hour)
	if _, ok := c.(*MemoryEntryCache); !ok {
		t.Errorf("expected memory backend, got %T", c)
	}
}
