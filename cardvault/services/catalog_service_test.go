package services

import (
	"context"
	"testing"

	"github.com/duelhall/cardvault/cardvault/database/models"
	"github.com/duelhall/cardvault/cardvault/database/repositories"
)

func TestSearchCatalogNoMatchIsNotError(t *testing.T) {
	s := NewCatalogService(&fakeCardRepository{})

	docs, err := s.SearchCatalog(context.Background(), "zzz no such card")
	if err != nil {
		t.Fatalf("SearchCatalog() error = %v", err)
	}
	if docs == nil || len(docs) != 0 {
		t.Errorf("no match must yield an empty non-nil list, got %v", docs)
	}
}

func TestSearchCatalogReconstructsMatches(t *testing.T) {
	repo := &fakeCardRepository{
		cards: []*models.Card{
			{ID: 46986414, Name: "Dark Magician", Type: "Normal Monster", FrameType: "normal"},
		},
		types: []*models.CardType{
			{CardID: 46986414, TypeName: "Spellcaster"},
		},
	}
	s := NewCatalogService(repo)

	docs, err := s.SearchCatalog(context.Background(), "magician")
	if err != nil {
		t.Fatalf("SearchCatalog() error = %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}
	if docs[0].Name != "Dark Magician" || len(docs[0].Typeline) != 1 {
		t.Errorf("docs[0] = %+v", docs[0])
	}
}

func TestGetCardByIDMissing(t *testing.T) {
	s := NewCatalogService(&fakeCardRepository{})

	_, err := s.GetCardByID(context.Background(), 999)
	if err == nil {
		t.Fatal("GetCardByID() error = nil, want not found")
	}
	if !repositories.IsNotFound(err) {
		t.Errorf("GetCardByID() error = %v, want NotFoundError", err)
	}
}

func TestGetCardByID(t *testing.T) {
	repo := &fakeCardRepository{
		cards: []*models.Card{
			{ID: 12345, Name: "Pot of Greed", Type: "Spell Card", FrameType: "spell"},
		},
	}
	s := NewCatalogService(repo)

	doc, err := s.GetCardByID(context.Background(), 12345)
	if err != nil {
		t.Fatalf("GetCardByID() error = %v", err)
	}
	if doc.ID != 12345 || doc.Name != "Pot of Greed" {
		t.Errorf("doc = %+v", doc)
	}
}

func TestSuggest(t *testing.T) {
	repo := &fakeCardRepository{
		cards: []*models.Card{
			{ID: 1, Name: "Blue-Eyes White Dragon"},
			{ID: 2, Name: "Red-Eyes Black Dragon"},
			{ID: 3, Name: "Pot of Greed"},
		},
	}
	s := NewCatalogService(repo)

	got, err := s.Suggest(context.Background(), "blueeyes")
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if len(got) == 0 || got[0] != "Blue-Eyes White Dragon" {
		t.Errorf("Suggest() = %v, want Blue-Eyes White Dragon first", got)
	}
}
