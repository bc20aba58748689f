package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tsawler/resumeparser/schema"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	c, err := Open(context.Background(), url, time.Minute, nil)
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSetGetDelete(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()
	key := "test-" + uuid.NewString()

	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("Expected miss, got ok=%v err=%v", ok, err)
	}

	r := schema.NewResume()
	r.Contact.Name = "Jane Doe"
	r.Skills = []schema.Skill{{Name: "Go"}}
	if err := c.Set(ctx, key, r); err != nil {
		t.Fatalf("Set error = %v", err)
	}

	got, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Expected hit, got ok=%v err=%v", ok, err)
	}
	if got.Contact.Name != "Jane Doe" || len(got.Skills) != 1 {
		t.Errorf("Expected cached resume, got %+v", got)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, key); ok {
		t.Error("Expected miss after delete")
	}
}

func TestOpenBadURL(t *testing.T) {
	if _, err := Open(context.Background(), "not-a-url", time.Minute, nil); err == nil {
		t.Error("Expected error for malformed URL")
	}
}

func TestNewDefaults(t *testing.T) {
	c := New(nil, 0, nil)
	if c.ttl != DefaultTTL {
		t.Errorf("Expected default TTL, got %v", c.ttl)
	}
	var nilCache *Cache
	if err := nilCache.Close(); err != nil {
		t.Errorf("Expected nil Close to succeed, got %v", err)
	}
}
