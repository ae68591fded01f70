package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/duelhall/cardvault/cardvault/database/repositories"
	"github.com/duelhall/cardvault/cardvault/ygoprodeck"
)

// CatalogService is the query side of the catalog: name search over the
// parent table followed by reconstruction of the matching documents.
type CatalogService struct {
	repo          repositories.CardRepository
	reconstructor *Reconstructor
	suggester     *Suggester
}

func NewCatalogService(repo repositories.CardRepository) *CatalogService {
	return &CatalogService{
		repo:          repo,
		reconstructor: NewReconstructor(repo),
		suggester:     NewSuggester(repo),
	}
}

// SearchCatalog returns every card whose name contains the pattern,
// case-insensitively, as fully reconstructed documents. No match is not an
// error; the caller gets an empty list (plus fuzzy suggestions in the log
// when the index has near misses).
func (s *CatalogService) SearchCatalog(ctx context.Context, namePattern string) ([]ygoprodeck.CardDocument, error) {
	cards, err := s.repo.SearchByName(ctx, namePattern)
	if err != nil {
		return nil, fmt.Errorf("card search failed: %w", err)
	}

	if len(cards) == 0 && namePattern != "" {
		if suggestions, err := s.suggester.Suggest(ctx, namePattern); err == nil && len(suggestions) > 0 {
			slog.Info("No exact matches, close names exist",
				slog.String("type", "search"),
				slog.String("query", namePattern),
				slog.Any("suggestions", suggestions))
		}
	}

	return s.reconstructor.Reconstruct(ctx, cards)
}

// GetCardByID reconstructs a single card document.
func (s *CatalogService) GetCardByID(ctx context.Context, id int64) (*ygoprodeck.CardDocument, error) {
	cards, err := s.repo.GetByIDs(ctx, []int64{id})
	if err != nil {
		return nil, fmt.Errorf("card lookup failed: %w", err)
	}
	if len(cards) == 0 {
		return nil, &repositories.NotFoundError{Entity: "card", ID: id}
	}

	docs, err := s.reconstructor.Reconstruct(ctx, cards)
	if err != nil {
		return nil, err
	}
	return &docs[0], nil
}

func (s *CatalogService) GetCardCount(ctx context.Context) (int64, error) {
	return s.repo.GetCardCount(ctx)
}

// Suggest exposes the fuzzy name index directly, for callers that want to
// offer alternatives themselves.
func (s *CatalogService) Suggest(ctx context.Context, query string) ([]string, error) {
	return s.suggester.Suggest(ctx, query)
}
