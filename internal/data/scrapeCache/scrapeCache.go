package scrapeCache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/ravidu/futureminds/internal/config"
	"github.com/ravidu/futureminds/pkg/logging"
	"github.com/redis/go-redis/v9"
)

// Store caches scraped page text keyed by (url, query). It prefers Redis so
// the cache survives restarts; when Redis is unreachable at construction it
// degrades to an in-process map.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger *logging.Logger

	mu    sync.RWMutex
	local map[string]string
}

func New(ctx context.Context, addr string, db int) *Store {
	s := &Store{
		ttl:    config.ScrapeCacheTTL,
		logger: logging.NewLogger("scrape_cache"),
		local:  make(map[string]string),
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		s.logger.Warn("redis unreachable, using in-memory cache", "addr", addr, "error", err)
		_ = client.Close()
		return s
	}
	s.client = client
	return s
}

func (s *Store) Get(ctx context.Context, url, query string) (string, bool) {
	key := cacheKey(url, query)

	if s.client == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		text, ok := s.local[key]
		return text, ok
	}

	text, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("cache read failed", "error", err)
		}
		return "", false
	}
	return text, true
}

func (s *Store) Set(ctx context.Context, url, query, text string) {
	key := cacheKey(url, query)

	if s.client == nil {
		s.mu.Lock()
		s.local[key] = text
		s.mu.Unlock()
		return
	}

	if err := s.client.Set(ctx, key, text, s.ttl).Err(); err != nil {
		s.logger.Warn("cache write failed", "error", err)
	}
}

func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func cacheKey(url, query string) string {
	sum := sha256.Sum256([]byte(url + "\x00" + query))
	return "scrape:" + hex.EncodeToString(sum[:16])
}
