package services

import (
	"context"
	"testing"

	"github.com/duelhall/cardvault/cardvault/config"
	"github.com/duelhall/cardvault/cardvault/database/models"
)

type countingRepo struct {
	fakeCardRepository
	nameLoads int
}

func (c *countingRepo) GetAllNames(ctx context.Context) ([]string, error) {
	c.nameLoads++
	return c.fakeCardRepository.GetAllNames(ctx)
}

func TestSuggestCachesNameIndex(t *testing.T) {
	repo := &countingRepo{
		fakeCardRepository: fakeCardRepository{
			cards: []*models.Card{
				{ID: 1, Name: "Dark Magician"},
				{ID: 2, Name: "Dark Magician Girl"},
			},
		},
	}
	s := NewSuggester(repo)

	for i := 0; i < 3; i++ {
		if _, err := s.Suggest(context.Background(), "dark"); err != nil {
			t.Fatalf("Suggest() error = %v", err)
		}
	}

	if repo.nameLoads != 1 {
		t.Errorf("name index loaded %d times within the TTL, want 1", repo.nameLoads)
	}
}

func TestSuggestCapsResults(t *testing.T) {
	cards := make([]*models.Card, 0, config.MaxSuggestions*2)
	for i := 0; i < config.MaxSuggestions*2; i++ {
		cards = append(cards, &models.Card{
			ID:   int64(i + 1),
			Name: "Dark Magician",
		})
	}
	s := NewSuggester(&fakeCardRepository{cards: cards})

	got, err := s.Suggest(context.Background(), "dark")
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if len(got) != config.MaxSuggestions {
		t.Errorf("got %d suggestions, want %d", len(got), config.MaxSuggestions)
	}
}
