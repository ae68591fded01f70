package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/duelhall/cardvault/cardvault/config"
	"github.com/duelhall/cardvault/cardvault/database/models"
	"github.com/uptrace/bun"
)

// CardRepository is the storage boundary of the catalog: one write path
// (the batch upsert of a whole sync run) and the batched read paths
// reconstruction and search are built from.
type CardRepository interface {
	UpsertCatalogBatch(ctx context.Context, batch *models.CatalogBatch) (*models.SyncReport, error)

	SearchByName(ctx context.Context, name string) ([]*models.Card, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*models.Card, error)
	GetCardCount(ctx context.Context) (int64, error)
	GetAllNames(ctx context.Context) ([]string, error)
	GetAllIDs(ctx context.Context) ([]int64, error)

	TypesByCardIDs(ctx context.Context, ids []int64) ([]*models.CardType, error)
	PrintingsByCardIDs(ctx context.Context, ids []int64) ([]*models.CardPrinting, error)
	BanlistByCardIDs(ctx context.Context, ids []int64) ([]*models.BanlistInfo, error)
	ImagesByCardIDs(ctx context.Context, ids []int64) ([]*models.CardImage, error)
	PricesByCardIDs(ctx context.Context, ids []int64) ([]*models.CardPrice, error)
}

type cardRepository struct {
	db *bun.DB
}

func NewCardRepository(db *bun.DB) CardRepository {
	return &cardRepository{db: db}
}

// UpsertCatalogBatch writes one normalized sync batch inside a single
// transaction: parent upsert first (so child foreign keys always resolve),
// then full replacement of each multi-row child table, then the banlist
// upsert. Any failure rolls the whole run back.
//
// The transaction opens by taking the catalog advisory lock, released
// automatically at commit or rollback. A second sync blocks there instead
// of interleaving its deletes with ours.
func (r *cardRepository) UpsertCatalogBatch(ctx context.Context, batch *models.CatalogBatch) (*models.SyncReport, error) {
	ctx, cancel := withBatchTimeout(ctx)
	defer cancel()

	report := &models.SyncReport{StartedAt: time.Now()}

	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(?)", config.CatalogSyncLockKey); err != nil {
			return fmt.Errorf("failed to acquire catalog sync lock: %w", err)
		}

		cards := dedupeCards(batch.Cards)
		if len(cards) > 0 {
			res, err := tx.NewInsert().
				Model(&cards).
				On("CONFLICT (id) DO UPDATE").
				Set("name = EXCLUDED.name").
				Set("description = EXCLUDED.description").
				Set("atk = EXCLUDED.atk").
				Set("def = EXCLUDED.def").
				Set("level = EXCLUDED.level").
				Set("attribute = EXCLUDED.attribute").
				Set("archetype = EXCLUDED.archetype").
				Set("updated_at = EXCLUDED.updated_at").
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to upsert cards: %w", err)
			}
			report.Cards, _ = res.RowsAffected()
		}

		ids := batch.CardIDs()
		if len(ids) == 0 {
			return nil
		}

		// Full-replace child tables. The delete runs even when a table's
		// batch is empty: a card whose printings all disappeared upstream
		// must lose its stale rows here.
		var err error
		if report.Types, err = replaceChild(ctx, tx, (*models.CardType)(nil), ids, &batch.Types, true); err != nil {
			return fmt.Errorf("failed to replace card types: %w", err)
		}
		if report.Printings, err = replaceChild(ctx, tx, (*models.CardPrinting)(nil), ids, &batch.Printings, false); err != nil {
			return fmt.Errorf("failed to replace card printings: %w", err)
		}
		if report.Images, err = replaceChild(ctx, tx, (*models.CardImage)(nil), ids, &batch.Images, false); err != nil {
			return fmt.Errorf("failed to replace card images: %w", err)
		}
		if report.Prices, err = replaceChild(ctx, tx, (*models.CardPrice)(nil), ids, &batch.Prices, false); err != nil {
			return fmt.Errorf("failed to replace card prices: %w", err)
		}

		banlist := dedupeBanlist(batch.Banlist)
		if len(banlist) > 0 {
			res, err := tx.NewInsert().
				Model(&banlist).
				On("CONFLICT (card_id) DO UPDATE").
				Set("ban_ocg = EXCLUDED.ban_ocg").
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to upsert banlist info: %w", err)
			}
			report.Banlist, _ = res.RowsAffected()
		}

		return nil
	})
	if err != nil {
		return nil, handleError("upsert_catalog_batch", "catalog", err)
	}

	report.Duration = time.Since(report.StartedAt)
	return report, nil
}

// replaceChild deletes every row of one child table belonging to the batch
// id set, then bulk-inserts the replacement rows in a single statement.
// ignoreConflicts covers the typeline table, whose (card_id, type_name)
// uniqueness quietly absorbs duplicate source documents.
func replaceChild[T any](ctx context.Context, tx bun.Tx, model *T, ids []int64, rows *[]*T, ignoreConflicts bool) (int64, error) {
	if _, err := tx.NewDelete().
		Model(model).
		Where("card_id IN (?)", bun.In(ids)).
		Exec(ctx); err != nil {
		return 0, err
	}

	if len(*rows) == 0 {
		return 0, nil
	}

	insert := tx.NewInsert().Model(rows)
	if ignoreConflicts {
		insert = insert.On("CONFLICT DO NOTHING")
	}
	res, err := insert.Exec(ctx)
	if err != nil {
		return 0, err
	}
	inserted, _ := res.RowsAffected()
	return inserted, nil
}

// dedupeCards keeps the last occurrence of each card id. A payload can
// carry the same card twice (whole-catalog resync after partial failure)
// and a single multi-row INSERT cannot update the same row twice.
func dedupeCards(cards []*models.Card) []*models.Card {
	index := make(map[int64]int, len(cards))
	out := make([]*models.Card, 0, len(cards))
	for _, c := range cards {
		if i, ok := index[c.ID]; ok {
			out[i] = c
			continue
		}
		index[c.ID] = len(out)
		out = append(out, c)
	}
	return out
}

// dedupeBanlist mirrors dedupeCards for the banlist upsert, which shares
// the one-conflict-per-statement restriction on card_id.
func dedupeBanlist(rows []*models.BanlistInfo) []*models.BanlistInfo {
	index := make(map[int64]int, len(rows))
	out := make([]*models.BanlistInfo, 0, len(rows))
	for _, b := range rows {
		if i, ok := index[b.CardID]; ok {
			out[i] = b
			continue
		}
		index[b.CardID] = len(out)
		out = append(out, b)
	}
	return out
}

func (r *cardRepository) SearchByName(ctx context.Context, name string) ([]*models.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, config.SearchTimeout)
	defer cancel()

	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, handleError("search_by_name", "card", err)
	}
	return cards, nil
}

func (r *cardRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Card, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Where("id IN (?)", bun.In(ids)).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, handleError("get_by_ids", "card", err)
	}
	return cards, nil
}

func (r *cardRepository) GetCardCount(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	count, err := r.db.NewSelect().
		Model((*models.Card)(nil)).
		Count(ctx)
	if err != nil {
		return 0, handleError("count", "card", err)
	}
	return int64(count), nil
}

func (r *cardRepository) GetAllNames(ctx context.Context) ([]string, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var names []string
	err := r.db.NewSelect().
		Model((*models.Card)(nil)).
		Column("name").
		Order("name ASC").
		Scan(ctx, &names)
	if err != nil {
		return nil, handleError("get_all_names", "card", err)
	}
	return names, nil
}

func (r *cardRepository) GetAllIDs(ctx context.Context) ([]int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var ids []int64
	err := r.db.NewSelect().
		Model((*models.Card)(nil)).
		Column("id").
		Order("id ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, handleError("get_all_ids", "card", err)
	}
	return ids, nil
}

func (r *cardRepository) TypesByCardIDs(ctx context.Context, ids []int64) ([]*models.CardType, error) {
	var rows []*models.CardType
	if err := r.childByCardIDs(ctx, &rows, ids, ""); err != nil {
		return nil, handleError("types_by_card_ids", "card_type", err)
	}
	return rows, nil
}

// PrintingsByCardIDs imposes the set-name ordering the read side promises;
// storage order is whatever the source shipped.
func (r *cardRepository) PrintingsByCardIDs(ctx context.Context, ids []int64) ([]*models.CardPrinting, error) {
	var rows []*models.CardPrinting
	if err := r.childByCardIDs(ctx, &rows, ids, "set_name ASC"); err != nil {
		return nil, handleError("printings_by_card_ids", "card_printing", err)
	}
	return rows, nil
}

func (r *cardRepository) BanlistByCardIDs(ctx context.Context, ids []int64) ([]*models.BanlistInfo, error) {
	var rows []*models.BanlistInfo
	if err := r.childByCardIDs(ctx, &rows, ids, ""); err != nil {
		return nil, handleError("banlist_by_card_ids", "banlist_info", err)
	}
	return rows, nil
}

func (r *cardRepository) ImagesByCardIDs(ctx context.Context, ids []int64) ([]*models.CardImage, error) {
	var rows []*models.CardImage
	if err := r.childByCardIDs(ctx, &rows, ids, ""); err != nil {
		return nil, handleError("images_by_card_ids", "card_image", err)
	}
	return rows, nil
}

func (r *cardRepository) PricesByCardIDs(ctx context.Context, ids []int64) ([]*models.CardPrice, error) {
	var rows []*models.CardPrice
	if err := r.childByCardIDs(ctx, &rows, ids, ""); err != nil {
		return nil, handleError("prices_by_card_ids", "card_price", err)
	}
	return rows, nil
}

// childByCardIDs is the one query shape every child read uses: a single
// batched IN lookup for the whole id set, never one query per card.
func (r *cardRepository) childByCardIDs(ctx context.Context, rows interface{}, ids []int64, order string) error {
	if len(ids) == 0 {
		return nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	q := r.db.NewSelect().
		Model(rows).
		Where("card_id IN (?)", bun.In(ids))
	if order != "" {
		q = q.Order(order)
	} else {
		q = q.Order("id ASC")
	}
	return q.Scan(ctx)
}
