package services

import (
	"testing"

	"github.com/duelhall/cardvault/cardvault/ygoprodeck"
)

func int64Ptr(v int64) *int64 { return &v }

func fullDoc() ygoprodeck.CardDocument {
	return ygoprodeck.CardDocument{
		ID:                46986414,
		Name:              "Dark Magician",
		Type:              "Normal Monster",
		HumanReadableType: "Normal Monster",
		FrameType:         "normal",
		Desc:              "The ultimate wizard in terms of attack and defense.",
		Race:              "Spellcaster",
		Atk:               int64Ptr(2500),
		Def:               int64Ptr(2100),
		Level:             int64Ptr(7),
		Attribute:         "DARK",
		Archetype:         "Dark Magician",
		URL:               "https://ygoprodeck.com/card/dark-magician-4003",
		Typeline:          []string{"Spellcaster", "Normal"},
		CardSets: []ygoprodeck.PrintingDoc{
			{SetName: "Legend of Blue Eyes White Dragon", SetCode: "LOB-005", SetRarity: "Ultra Rare", SetRarityCode: "(UR)", SetPrice: "12.50"},
			{SetName: "Starter Deck: Yugi", SetCode: "SDY-006", SetRarity: "Common", SetPrice: "2.99"},
		},
		BanlistInfo: &ygoprodeck.BanlistDoc{BanOCG: "Limited"},
		CardImages: []ygoprodeck.ImageDoc{
			{ImageURL: "https://images.example/46986414.jpg", ImageURLSmall: "https://images.example/small/46986414.jpg"},
		},
		CardPrices: []ygoprodeck.PriceDoc{
			{CardmarketPrice: "0.30", TcgplayerPrice: "0.25", EbayPrice: "1.99", AmazonPrice: "3.50", CoolstuffincPrice: "0.99"},
		},
	}
}

func TestNormalizeFullDocument(t *testing.T) {
	docs := []ygoprodeck.CardDocument{fullDoc()}

	batch := NewNormalizer().Normalize(docs)

	if len(batch.Cards) != 1 {
		t.Fatalf("Cards = %d, want 1", len(batch.Cards))
	}
	card := batch.Cards[0]
	if card.ID != 46986414 || card.Name != "Dark Magician" {
		t.Errorf("card = %+v", card)
	}
	if !card.Atk.Valid || card.Atk.Int64 != 2500 {
		t.Errorf("Atk = %+v, want valid 2500", card.Atk)
	}
	if !card.Attribute.Valid || card.Attribute.String != "DARK" {
		t.Errorf("Attribute = %+v, want valid DARK", card.Attribute)
	}

	if len(batch.Types) != 2 {
		t.Errorf("Types = %d, want 2", len(batch.Types))
	}
	if len(batch.Printings) != 2 {
		t.Fatalf("Printings = %d, want 2", len(batch.Printings))
	}
	if batch.Printings[0].SetPrice != 12.5 {
		t.Errorf("SetPrice = %v, want 12.5", batch.Printings[0].SetPrice)
	}
	if batch.Printings[1].SetRarityCode.Valid {
		t.Errorf("missing rarity code should be invalid, got %+v", batch.Printings[1].SetRarityCode)
	}
	if len(batch.Banlist) != 1 || !batch.Banlist[0].BanOCG.Valid {
		t.Errorf("Banlist = %+v", batch.Banlist)
	}
	if len(batch.Images) != 1 || batch.Images[0].ImageURLCropped.Valid {
		t.Errorf("Images = %+v", batch.Images)
	}
	if len(batch.Prices) != 1 || batch.Prices[0].EbayPrice != 1.99 {
		t.Errorf("Prices = %+v", batch.Prices)
	}
}

func TestNormalizeMissingCollections(t *testing.T) {
	docs := []ygoprodeck.CardDocument{
		{
			ID:        12345,
			Name:      "Pot of Greed",
			Type:      "Spell Card",
			FrameType: "spell",
			Desc:      "Draw 2 cards.",
			Race:      "Normal",
		},
	}

	batch := NewNormalizer().Normalize(docs)

	if len(batch.Cards) != 1 {
		t.Fatalf("Cards = %d, want 1", len(batch.Cards))
	}
	card := batch.Cards[0]
	if card.Atk.Valid || card.Def.Valid || card.Level.Valid {
		t.Errorf("spell card stats should be invalid, got %+v %+v %+v", card.Atk, card.Def, card.Level)
	}
	if card.Attribute.Valid || card.Archetype.Valid {
		t.Errorf("missing attribute/archetype should be invalid")
	}

	if len(batch.Types) != 0 || len(batch.Printings) != 0 || len(batch.Banlist) != 0 ||
		len(batch.Images) != 0 || len(batch.Prices) != 0 {
		t.Errorf("missing collections must contribute zero rows, got %d/%d/%d/%d/%d",
			len(batch.Types), len(batch.Printings), len(batch.Banlist), len(batch.Images), len(batch.Prices))
	}
}

func TestNormalizeKeepsDuplicates(t *testing.T) {
	doc := fullDoc()
	doc.Typeline = []string{"Spellcaster", "Spellcaster"}
	docs := []ygoprodeck.CardDocument{doc, doc}

	batch := NewNormalizer().Normalize(docs)

	// Normalization is mechanical; duplicate documents and duplicate
	// typeline entries survive into the batch.
	if len(batch.Cards) != 2 {
		t.Errorf("Cards = %d, want 2", len(batch.Cards))
	}
	if len(batch.Types) != 4 {
		t.Errorf("Types = %d, want 4", len(batch.Types))
	}
	if len(batch.Printings) != 4 {
		t.Errorf("Printings = %d, want 4", len(batch.Printings))
	}
}

func TestCardIDsDistinctFirstSeen(t *testing.T) {
	doc := fullDoc()
	other := fullDoc()
	other.ID = 55144522
	docs := []ygoprodeck.CardDocument{doc, other, doc}

	batch := NewNormalizer().Normalize(docs)
	ids := batch.CardIDs()

	want := []int64{46986414, 55144522}
	if len(ids) != len(want) {
		t.Fatalf("CardIDs = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("CardIDs[%d] = %d, want %d", i, ids[i], want[i])
		}
	}
}
