package scrapeCache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestRedisBackedGetSet(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s := New(ctx, mr.Addr(), 0)
	defer s.Close()
	if s.client == nil {
		t.Fatal("expected redis-backed store")
	}

	if _, ok := s.Get(ctx, "https://example.com", "q"); ok {
		t.Error("unexpected hit on empty cache")
	}

	s.Set(ctx, "https://example.com", "q", "page text")
	text, ok := s.Get(ctx, "https://example.com", "q")
	if !ok || text != "page text" {
		t.Errorf("Get = (%q, %v)", text, ok)
	}

	// same url under a different query is a distinct entry
	if _, ok := s.Get(ctx, "https://example.com", "other"); ok {
		t.Error("query must be part of the cache key")
	}
}

func TestFallsBackToMemoryWhenRedisDown(t *testing.T) {
	ctx := context.Background()

	s := New(ctx, "127.0.0.1:1", 0)
	defer s.Close()
	if s.client != nil {
		t.Fatal("expected in-memory fallback")
	}

	s.Set(ctx, "https://example.com", "q", "page text")
	text, ok := s.Get(ctx, "https://example.com", "q")
	if !ok || text != "page text" {
		t.Errorf("Get = (%q, %v)", text, ok)
	}
}

func TestEntriesExpire(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	s := New(ctx, mr.Addr(), 0)
	defer s.Close()

	s.Set(ctx, "https://example.com", "q", "page text")
	mr.FastForward(s.ttl + 1)

	if _, ok := s.Get(ctx, "https://example.com", "q"); ok {
		t.Error("entry should have expired")
	}
}
