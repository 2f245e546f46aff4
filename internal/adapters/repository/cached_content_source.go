package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/domain"
)

var _ domain.ContentSource = (*CachedContentSource)(nil)

// CachedContentSource is a read-through redis decorator over the content
// source. It shares fetched raw documents between instances of the service,
// which the in-process TTL cache of the loader cannot do. Redis being down is
// never fatal: reads and writes degrade to the wrapped source.
type CachedContentSource struct {
	next  domain.ContentSource
	cache *redis.Client
	ttl   time.Duration
}

func NewCachedContentSource(next domain.ContentSource, cache *redis.Client, ttl time.Duration) *CachedContentSource {
	return &CachedContentSource{
		next:  next,
		cache: cache,
		ttl:   ttl,
	}
}

func (s *CachedContentSource) cacheKey(lang domain.LanguageCode) string {
	return fmt.Sprintf("catalog:raw:%s", lang)
}

func (s *CachedContentSource) FetchLanguage(ctx context.Context, lang domain.LanguageCode) ([]domain.RawHabitRecord, error) {
	key := s.cacheKey(lang)

	val, err := s.cache.Get(ctx, key).Result()
	if err == nil {
		var records []domain.RawHabitRecord
		if err := json.Unmarshal([]byte(val), &records); err == nil {
			return records, nil
		}

		log.Printf("[CACHE] Corrupted document for language %s, cleaning up key", lang)
		s.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	records, err := s.next.FetchLanguage(ctx, lang)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(records); err == nil {
		if setErr := s.cache.Set(ctx, key, data, s.ttl).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return records, nil
}

// Invalidate drops every cached language document.
func (s *CachedContentSource) Invalidate(ctx context.Context) {
	for _, lang := range domain.SupportedLanguages {
		if err := s.cache.Del(ctx, s.cacheKey(lang)).Err(); err != nil {
			log.Printf("[CACHE] Failed to invalidate language %s: %v", lang, err)
		}
	}
}
