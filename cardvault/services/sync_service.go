package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/duelhall/cardvault/cardvault/database/models"
	"github.com/duelhall/cardvault/cardvault/ygoprodeck"
)

// CatalogFetcher is the provider boundary the sync run pulls from.
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context) ([]ygoprodeck.CardDocument, error)
}

// CatalogUpserter is the slice of the repository the sync run writes
// through.
type CatalogUpserter interface {
	UpsertCatalogBatch(ctx context.Context, batch *models.CatalogBatch) (*models.SyncReport, error)
}

// SyncService owns one full sync run: fetch, normalize, transactional
// upsert, report. The mutex keeps two runs from overlapping inside a
// process; the advisory lock inside the upsert transaction covers other
// processes.
type SyncService struct {
	fetcher    CatalogFetcher
	upserter   CatalogUpserter
	normalizer *Normalizer

	mu sync.Mutex
}

func NewSyncService(fetcher CatalogFetcher, upserter CatalogUpserter) *SyncService {
	return &SyncService{
		fetcher:    fetcher,
		upserter:   upserter,
		normalizer: NewNormalizer(),
	}
}

// Sync mirrors the provider catalog into storage. A fetch failure is fatal
// and writes nothing; an upsert failure rolls back every table, so the
// catalog is all-or-nothing per run.
func (s *SyncService) Sync(ctx context.Context) (*models.SyncReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	slog.Info("Starting catalog sync", slog.String("type", "sync"))

	docs, err := s.fetcher.FetchCatalog(ctx)
	if err != nil {
		slog.Error("Catalog fetch failed",
			slog.String("type", "sync"),
			slog.Any("error", err))
		return nil, fmt.Errorf("catalog fetch failed: %w", err)
	}

	slog.Info("Catalog fetched",
		slog.String("type", "sync"),
		slog.Int("documents", len(docs)),
		slog.Duration("took", time.Since(start)))

	batch := s.normalizer.Normalize(docs)

	report, err := s.upserter.UpsertCatalogBatch(ctx, batch)
	if err != nil {
		slog.Error("Catalog upsert failed, transaction rolled back",
			slog.String("type", "sync"),
			slog.Any("error", err))
		return nil, fmt.Errorf("catalog upsert failed: %w", err)
	}

	slog.Info("Catalog sync completed",
		slog.String("type", "sync"),
		slog.Int64("cards", report.Cards),
		slog.Int64("types", report.Types),
		slog.Int64("printings", report.Printings),
		slog.Int64("banlist", report.Banlist),
		slog.Int64("images", report.Images),
		slog.Int64("prices", report.Prices),
		slog.Duration("took", time.Since(start)))

	return report, nil
}
