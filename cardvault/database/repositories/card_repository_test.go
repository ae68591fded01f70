package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/duelhall/cardvault/cardvault/database/models"
)

func TestDedupeCardsKeepsLastOccurrence(t *testing.T) {
	first := &models.Card{ID: 1, Name: "old name"}
	second := &models.Card{ID: 1, Name: "new name"}
	other := &models.Card{ID: 2, Name: "other"}

	out := dedupeCards([]*models.Card{first, other, second})

	if len(out) != 2 {
		t.Fatalf("got %d cards, want 2", len(out))
	}
	if out[0].Name != "new name" {
		t.Errorf("out[0].Name = %q, want the later duplicate to win", out[0].Name)
	}
	if out[1].ID != 2 {
		t.Errorf("out[1].ID = %d, want first-seen order preserved", out[1].ID)
	}
}

func TestDedupeBanlistKeepsLastOccurrence(t *testing.T) {
	rows := []*models.BanlistInfo{
		{CardID: 7, BanOCG: sql.NullString{String: "Limited", Valid: true}},
		{CardID: 7, BanOCG: sql.NullString{String: "Forbidden", Valid: true}},
	}

	out := dedupeBanlist(rows)

	if len(out) != 1 {
		t.Fatalf("got %d rows, want 1", len(out))
	}
	if out[0].BanOCG.String != "Forbidden" {
		t.Errorf("BanOCG = %q, want the later duplicate to win", out[0].BanOCG.String)
	}
}

func TestIsNotFound(t *testing.T) {
	notFound := &NotFoundError{Entity: "card", ID: 42}
	wrapped := &RepositoryError{Operation: "get", Entity: "card", Err: notFound}

	if !IsNotFound(notFound) {
		t.Error("IsNotFound(NotFoundError) = false")
	}
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound(wrapped NotFoundError) = false")
	}
	if IsNotFound(errors.New("boom")) {
		t.Error("IsNotFound(arbitrary error) = true")
	}
}
