package models

import "time"

// CatalogBatch is one sync run's worth of normalized rows, one slice per
// table. Child rows keep whatever duplication the source payload had; the
// upserter's conflict handling is the single point of deduplication.
type CatalogBatch struct {
	Cards     []*Card
	Types     []*CardType
	Printings []*CardPrinting
	Banlist   []*BanlistInfo
	Images    []*CardImage
	Prices    []*CardPrice
}

// CardIDs returns the distinct card ids present in the batch, in first-seen
// order. An empty result means the whole batch is a no-op.
func (b *CatalogBatch) CardIDs() []int64 {
	seen := make(map[int64]struct{}, len(b.Cards))
	ids := make([]int64, 0, len(b.Cards))
	for _, c := range b.Cards {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		ids = append(ids, c.ID)
	}
	return ids
}

// SyncReport is what a completed sync run hands back: rows written per
// table plus timing.
type SyncReport struct {
	Cards     int64
	Types     int64
	Printings int64
	Banlist   int64
	Images    int64
	Prices    int64

	StartedAt time.Time
	Duration  time.Duration
}
