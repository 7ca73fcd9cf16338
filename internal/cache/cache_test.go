// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "page:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, "")
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestPageCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPageCache(client, 1*time.Minute)

	ctx := context.Background()

	// Miss.
	data, ok := pc.Get(ctx, PageKey("faqs"))
	if ok {
		t.Error("expected cache miss")
	}
	if data != nil {
		t.Error("expected nil data on miss")
	}

	// Set, then hit.
	html := []byte("<html><body>FAQs</body></html>")
	pc.Set(ctx, PageKey("faqs"), html)

	data, ok = pc.Get(ctx, PageKey("faqs"))
	if !ok {
		t.Error("expected cache hit")
	}
	if string(data) != string(html) {
		t.Errorf("data mismatch: got %q, want %q", data, html)
	}
}

func TestPageCacheInvalidate(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPageCache(client, 1*time.Minute)

	ctx := context.Background()
	key := PostKey("heart-surgery-guide")

	pc.Set(ctx, key, []byte("cached"))
	if _, ok := pc.Get(ctx, key); !ok {
		t.Fatal("expected cache hit before invalidation")
	}

	pc.Invalidate(ctx, key)

	if _, ok := pc.Get(ctx, key); ok {
		t.Error("expected cache miss after invalidation")
	}
}

func TestPageCacheInvalidateAll(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPageCache(client, 1*time.Minute)

	ctx := context.Background()
	keys := []string{HomeKey(), PageKey("faqs"), PostKey("a"), ListingKey("blog-posts", 12, "")}
	for _, key := range keys {
		pc.Set(ctx, key, []byte("x"))
	}

	pc.InvalidateAll(ctx)

	for _, key := range keys {
		if _, ok := pc.Get(ctx, key); ok {
			t.Errorf("expected miss for %q after InvalidateAll", key)
		}
	}
}

func TestKeyHelpers(t *testing.T) {
	if HomeKey() != "_home" {
		t.Errorf("HomeKey: got %q", HomeKey())
	}
	if PageKey("faqs") != "faqs" {
		t.Errorf("PageKey: got %q", PageKey("faqs"))
	}
	if PostKey("my-slug") != "post:my-slug" {
		t.Errorf("PostKey: got %q", PostKey("my-slug"))
	}
	if got := ListingKey("hospitals", 24, "Delhi"); got != "list:hospitals:24:Delhi" {
		t.Errorf("ListingKey: got %q", got)
	}
	// Distinct offsets and filters must never collide.
	if ListingKey("blog-posts", 0, "") == ListingKey("blog-posts", 12, "") {
		t.Error("listing keys collide across offsets")
	}
}

func TestNewPageCacheDefaultTTL(t *testing.T) {
	pc := NewPageCache(nil, 0)
	if pc.ttl != DefaultPageTTL {
		t.Errorf("expected DefaultPageTTL (%v), got %v", DefaultPageTTL, pc.ttl)
	}
}
