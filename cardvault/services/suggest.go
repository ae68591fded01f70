package services

import (
	"context"
	"time"

	"github.com/duelhall/cardvault/cardvault/config"
	"github.com/duelhall/cardvault/cardvault/database/repositories"
	lru "github.com/hashicorp/golang-lru"
	"github.com/sahilm/fuzzy"
)

const nameIndexKey = "card_names"

type cachedNames struct {
	names     []string
	expiresAt time.Time
}

// Suggester fuzzy-matches a query against the card name index. The index
// is just the name column, cached with a TTL; reconstructed documents are
// never cached.
type Suggester struct {
	repo  repositories.CardRepository
	cache *lru.Cache
}

func NewSuggester(repo repositories.CardRepository) *Suggester {
	cache, _ := lru.New(config.NameIndexCacheSize)
	return &Suggester{
		repo:  repo,
		cache: cache,
	}
}

func (s *Suggester) Suggest(ctx context.Context, query string) ([]string, error) {
	names, err := s.names(ctx)
	if err != nil {
		return nil, err
	}

	matches := fuzzy.Find(query, names)
	limit := config.MaxSuggestions
	if len(matches) < limit {
		limit = len(matches)
	}

	suggestions := make([]string, 0, limit)
	for _, m := range matches[:limit] {
		suggestions = append(suggestions, m.Str)
	}
	return suggestions, nil
}

func (s *Suggester) names(ctx context.Context) ([]string, error) {
	if v, ok := s.cache.Get(nameIndexKey); ok {
		entry := v.(cachedNames)
		if time.Now().Before(entry.expiresAt) {
			return entry.names, nil
		}
		s.cache.Remove(nameIndexKey)
	}

	names, err := s.repo.GetAllNames(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Add(nameIndexKey, cachedNames{
		names:     names,
		expiresAt: time.Now().Add(config.NameIndexTTL),
	})
	return names, nil
}
