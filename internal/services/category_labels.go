package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const categoryLabelTTL = 24 * time.Hour

type categoryLabelSource interface {
	Label(ctx context.Context, code, locale string) (string, error)
}

// CategoryLabelService resolves taxonomy labels for slug generation, fronted
// by a Redis cache. The taxonomy changes rarely, slugs are built on every
// create.
type CategoryLabelService struct {
	Repo     categoryLabelSource
	RDB      *redis.Client
	ErrorLog *log.Logger
}

func labelKey(code, locale string) string {
	return fmt.Sprintf("category:label:%s:%s", locale, code)
}

// LabelFor returns the label for a category code in the given locale. Cache
// and taxonomy misses both degrade: a cache error falls through to the
// repository, an unknown code falls back to the raw code so slug generation
// never fails on taxonomy gaps.
func (s *CategoryLabelService) LabelFor(ctx context.Context, code, locale string) string {
	key := labelKey(code, locale)

	if s.RDB != nil {
		if cached, err := s.RDB.Get(ctx, key).Result(); err == nil && cached != "" {
			return cached
		}
	}

	label, err := s.Repo.Label(ctx, code, locale)
	if err != nil {
		s.ErrorLog.Printf("category label lookup failed for %s/%s: %v", locale, code, err)
		return code
	}
	if label == "" {
		return code
	}

	if s.RDB != nil {
		if err := s.RDB.Set(ctx, key, label, categoryLabelTTL).Err(); err != nil {
			s.ErrorLog.Printf("failed to cache category label %s: %v", key, err)
		}
	}
	return label
}
