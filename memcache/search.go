// Package memcache caches search results in memcached.
package memcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/texdex"
)

// DefaultTTL is how long a cached result is served.
const DefaultTTL = 60 * time.Second

// MaxTTL is the longest relative expiration memcached accepts; larger values
// are read as absolute Unix timestamps.
const MaxTTL = 30 * 24 * time.Hour

// Client is the subset of *memcache.Client used by SearchService.
type Client interface {
	Get(key string) (*memcache.Item, error)
	Set(item *memcache.Item) error
}

// Ensure SearchService implements texdex.SearchService.
var _ texdex.SearchService = (*SearchService)(nil)

// SearchService wraps a texdex.SearchService and caches Search results.
// Status is never cached. Cache failures fall through to the wrapped service.
type SearchService struct {
	next       texdex.SearchService
	client     Client
	expiration int32
	namespace  string
}

// Option configures a SearchService.
type Option func(*SearchService)

// WithNamespace separates this service's keys from those of services over
// the same memcached with different settings, such as the result cap.
func WithNamespace(ns string) Option {
	return func(s *SearchService) {
		s.namespace = ns
	}
}

// NewClient returns a memcached client for the given server addresses.
func NewClient(addrs ...string) *memcache.Client {
	return memcache.New(addrs...)
}

// NewSearchService creates a caching SearchService. A non-positive ttl uses
// DefaultTTL. The ttl is rounded up to whole seconds and capped at MaxTTL.
func NewSearchService(next texdex.SearchService, client Client, ttl time.Duration, opts ...Option) *SearchService {
	s := &SearchService{next: next, client: client, expiration: expiration(ttl)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// expiration converts ttl to memcached's relative expiration in seconds.
// Zero means "never expire" to memcached, so the result is at least 1.
func expiration(ttl time.Duration) int32 {
	switch {
	case ttl <= 0:
		ttl = DefaultTTL
	case ttl > MaxTTL:
		ttl = MaxTTL
	}
	secs := (ttl + time.Second - 1) / time.Second
	return int32(secs)
}

// Search returns a cached result when one exists and otherwise delegates and
// stores the answer.
func (s *SearchService) Search(ctx context.Context, query string) (*texdex.SearchResult, error) {
	key := cacheKey(s.namespace, query)

	if item, err := s.client.Get(key); err == nil {
		var result texdex.SearchResult
		if err := json.Unmarshal(item.Value, &result); err == nil {
			return &result, nil
		}
	}

	result, err := s.next.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if value, err := json.Marshal(result); err == nil {
		_ = s.client.Set(&memcache.Item{
			Key:        key,
			Value:      value,
			Expiration: s.expiration,
		})
	}

	return result, nil
}

// Status delegates to the wrapped service.
func (s *SearchService) Status(ctx context.Context) (*texdex.Status, error) {
	return s.next.Status(ctx)
}

// cacheKey hashes the trimmed query so keys stay within memcached's limits
// on length and characters.
func cacheKey(namespace, query string) string {
	h := xxhash.Sum64String(strings.TrimSpace(query))
	if namespace == "" {
		return fmt.Sprintf("texdex:search:%x", h)
	}
	return fmt.Sprintf("texdex:search:%s:%x", namespace, h)
}

// IsCacheMiss reports whether err is memcached's miss sentinel.
func IsCacheMiss(err error) bool {
	return errors.Is(err, memcache.ErrCacheMiss)
}
