package services

import (
	"time"

	"github.com/duelhall/cardvault/cardvault/database/models"
	"github.com/duelhall/cardvault/cardvault/utils"
	"github.com/duelhall/cardvault/cardvault/ygoprodeck"
)

// Normalizer flattens raw nested card documents into per-table row
// batches. It does no deduplication and contributes zero rows for a
// missing nested collection; whatever the payload repeats, the batch
// repeats, and the upserter's conflict handling sorts it out.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

func (n *Normalizer) Normalize(docs []ygoprodeck.CardDocument) *models.CatalogBatch {
	now := time.Now()
	batch := &models.CatalogBatch{
		Cards: make([]*models.Card, 0, len(docs)),
	}

	for _, doc := range docs {
		batch.Cards = append(batch.Cards, &models.Card{
			ID:                doc.ID,
			Name:              doc.Name,
			Type:              doc.Type,
			HumanReadableType: doc.HumanReadableType,
			FrameType:         doc.FrameType,
			Description:       doc.Desc,
			Race:              doc.Race,
			Atk:               utils.ToNullInt64(doc.Atk),
			Def:               utils.ToNullInt64(doc.Def),
			Level:             utils.ToNullInt64(doc.Level),
			Attribute:         utils.ToNullString(doc.Attribute),
			Archetype:         utils.ToNullString(doc.Archetype),
			ReferenceURL:      doc.URL,
			CreatedAt:         now,
			UpdatedAt:         now,
		})

		for _, t := range doc.Typeline {
			batch.Types = append(batch.Types, &models.CardType{
				CardID:   doc.ID,
				TypeName: t,
			})
		}

		for _, set := range doc.CardSets {
			batch.Printings = append(batch.Printings, &models.CardPrinting{
				CardID:        doc.ID,
				SetName:       set.SetName,
				SetCode:       set.SetCode,
				SetRarity:     set.SetRarity,
				SetRarityCode: utils.ToNullString(set.SetRarityCode),
				SetPrice:      utils.DecimalOrZero(set.SetPrice),
			})
		}

		if doc.BanlistInfo != nil {
			batch.Banlist = append(batch.Banlist, &models.BanlistInfo{
				CardID: doc.ID,
				BanOCG: utils.ToNullString(doc.BanlistInfo.BanOCG),
			})
		}

		for _, img := range doc.CardImages {
			batch.Images = append(batch.Images, &models.CardImage{
				CardID:          doc.ID,
				ImageURL:        img.ImageURL,
				ImageURLSmall:   utils.ToNullString(img.ImageURLSmall),
				ImageURLCropped: utils.ToNullString(img.ImageURLCropped),
			})
		}

		for _, price := range doc.CardPrices {
			batch.Prices = append(batch.Prices, &models.CardPrice{
				CardID:            doc.ID,
				CardmarketPrice:   utils.DecimalOrZero(price.CardmarketPrice),
				TcgplayerPrice:    utils.DecimalOrZero(price.TcgplayerPrice),
				EbayPrice:         utils.DecimalOrZero(price.EbayPrice),
				AmazonPrice:       utils.DecimalOrZero(price.AmazonPrice),
				CoolstuffincPrice: utils.DecimalOrZero(price.CoolstuffincPrice),
			})
		}
	}

	return batch
}
