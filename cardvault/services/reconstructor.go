package services

import (
	"context"
	"fmt"

	"github.com/duelhall/cardvault/cardvault/database/models"
	"github.com/duelhall/cardvault/cardvault/database/repositories"
	"github.com/duelhall/cardvault/cardvault/utils"
	"github.com/duelhall/cardvault/cardvault/ygoprodeck"
	"golang.org/x/sync/errgroup"
)

// Reconstructor reassembles nested card documents from the normalized
// tables. Child lookups are one batched query per table for the whole
// result set, issued concurrently; completion order does not matter since
// rows are merged by card id afterward.
type Reconstructor struct {
	repo repositories.CardRepository
}

func NewReconstructor(repo repositories.CardRepository) *Reconstructor {
	return &Reconstructor{repo: repo}
}

func (r *Reconstructor) Reconstruct(ctx context.Context, cards []*models.Card) ([]ygoprodeck.CardDocument, error) {
	if len(cards) == 0 {
		return []ygoprodeck.CardDocument{}, nil
	}

	ids := make([]int64, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID)
	}

	var (
		types     []*models.CardType
		printings []*models.CardPrinting
		banlist   []*models.BanlistInfo
		images    []*models.CardImage
		prices    []*models.CardPrice
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		types, err = r.repo.TypesByCardIDs(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		printings, err = r.repo.PrintingsByCardIDs(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		banlist, err = r.repo.BanlistByCardIDs(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		images, err = r.repo.ImagesByCardIDs(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		prices, err = r.repo.PricesByCardIDs(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load child rows: %w", err)
	}

	typesByCard := make(map[int64][]string, len(cards))
	for _, t := range types {
		typesByCard[t.CardID] = append(typesByCard[t.CardID], t.TypeName)
	}

	printingsByCard := make(map[int64][]ygoprodeck.PrintingDoc, len(cards))
	for _, p := range printings {
		printingsByCard[p.CardID] = append(printingsByCard[p.CardID], ygoprodeck.PrintingDoc{
			SetName:       p.SetName,
			SetCode:       p.SetCode,
			SetRarity:     p.SetRarity,
			SetRarityCode: p.SetRarityCode.String,
			SetPrice:      utils.FormatDecimal(p.SetPrice),
		})
	}

	banlistByCard := make(map[int64]*ygoprodeck.BanlistDoc, len(banlist))
	for _, b := range banlist {
		banlistByCard[b.CardID] = &ygoprodeck.BanlistDoc{BanOCG: b.BanOCG.String}
	}

	imagesByCard := make(map[int64][]ygoprodeck.ImageDoc, len(cards))
	for _, img := range images {
		imagesByCard[img.CardID] = append(imagesByCard[img.CardID], ygoprodeck.ImageDoc{
			ImageURL:        img.ImageURL,
			ImageURLSmall:   img.ImageURLSmall.String,
			ImageURLCropped: img.ImageURLCropped.String,
		})
	}

	pricesByCard := make(map[int64][]ygoprodeck.PriceDoc, len(cards))
	for _, p := range prices {
		pricesByCard[p.CardID] = append(pricesByCard[p.CardID], ygoprodeck.PriceDoc{
			CardmarketPrice:   utils.FormatDecimal(p.CardmarketPrice),
			TcgplayerPrice:    utils.FormatDecimal(p.TcgplayerPrice),
			EbayPrice:         utils.FormatDecimal(p.EbayPrice),
			AmazonPrice:       utils.FormatDecimal(p.AmazonPrice),
			CoolstuffincPrice: utils.FormatDecimal(p.CoolstuffincPrice),
		})
	}

	docs := make([]ygoprodeck.CardDocument, 0, len(cards))
	for _, c := range cards {
		doc := ygoprodeck.CardDocument{
			ID:                c.ID,
			Name:              c.Name,
			Type:              c.Type,
			HumanReadableType: c.HumanReadableType,
			FrameType:         c.FrameType,
			Desc:              c.Description,
			Race:              c.Race,
			Attribute:         c.Attribute.String,
			Archetype:         c.Archetype.String,
			URL:               c.ReferenceURL,
			Typeline:          typesByCard[c.ID],
			CardSets:          printingsByCard[c.ID],
			BanlistInfo:       banlistByCard[c.ID],
			CardImages:        imagesByCard[c.ID],
			CardPrices:        pricesByCard[c.ID],
		}
		if c.Atk.Valid {
			atk := c.Atk.Int64
			doc.Atk = &atk
		}
		if c.Def.Valid {
			def := c.Def.Int64
			doc.Def = &def
		}
		if c.Level.Valid {
			level := c.Level.Int64
			doc.Level = &level
		}
		docs = append(docs, doc)
	}

	return docs, nil
}
