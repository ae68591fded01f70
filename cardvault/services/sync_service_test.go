package services

import (
	"context"
	"errors"
	"testing"

	"github.com/duelhall/cardvault/cardvault/database/models"
	"github.com/duelhall/cardvault/cardvault/ygoprodeck"
)

type fakeFetcher struct {
	docs []ygoprodeck.CardDocument
	err  error
}

func (f *fakeFetcher) FetchCatalog(_ context.Context) ([]ygoprodeck.CardDocument, error) {
	return f.docs, f.err
}

func TestSyncFetchFailureWritesNothing(t *testing.T) {
	repo := &fakeCardRepository{}
	s := NewSyncService(&fakeFetcher{err: errors.New("provider down")}, repo)

	if _, err := s.Sync(context.Background()); err == nil {
		t.Fatal("Sync() error = nil, want fetch error")
	}
	if repo.upserted != nil {
		t.Errorf("fetch failure must not reach the upserter, got batch %+v", repo.upserted)
	}
}

func TestSyncUpsertFailurePropagates(t *testing.T) {
	repo := &fakeCardRepository{err: errors.New("deadlock detected")}
	s := NewSyncService(&fakeFetcher{docs: []ygoprodeck.CardDocument{fullDoc()}}, repo)

	if _, err := s.Sync(context.Background()); err == nil {
		t.Fatal("Sync() error = nil, want upsert error")
	}
}

func TestSyncPassesNormalizedBatchAndReport(t *testing.T) {
	want := &models.SyncReport{Cards: 1, Types: 2, Printings: 2, Banlist: 1, Images: 1, Prices: 1}
	repo := &fakeCardRepository{report: want}
	s := NewSyncService(&fakeFetcher{docs: []ygoprodeck.CardDocument{fullDoc()}}, repo)

	got, err := s.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if got != want {
		t.Errorf("Sync() report = %+v, want the upserter's report", got)
	}

	if repo.upserted == nil {
		t.Fatal("upserter never saw a batch")
	}
	if len(repo.upserted.Cards) != 1 {
		t.Errorf("batch Cards = %d, want 1", len(repo.upserted.Cards))
	}
	if len(repo.upserted.Printings) != 2 {
		t.Errorf("batch Printings = %d, want 2", len(repo.upserted.Printings))
	}
}

func TestSyncEmptyCatalog(t *testing.T) {
	// An empty provider payload is a valid sync that clears nothing and
	// writes nothing.
	repo := &fakeCardRepository{report: &models.SyncReport{}}
	s := NewSyncService(&fakeFetcher{}, repo)

	got, err := s.Sync(context.Background())
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if got.Cards != 0 {
		t.Errorf("report Cards = %d, want 0", got.Cards)
	}
	if repo.upserted == nil || len(repo.upserted.Cards) != 0 {
		t.Errorf("empty catalog must still produce an empty batch")
	}
}
