package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/duelhall/cardvault/cardvault"
	"github.com/duelhall/cardvault/cardvault/database"
	"github.com/duelhall/cardvault/cardvault/database/repositories"
	"github.com/duelhall/cardvault/cardvault/logger"
	"github.com/duelhall/cardvault/cardvault/services"
	"github.com/duelhall/cardvault/cardvault/ygoprodeck"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	shouldSyncNow := flag.Bool("sync-now", false, "Run a catalog sync on startup")
	shouldMirrorImages := flag.Bool("mirror-images", false, "Mirror card images to Spaces after syncing")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := cardvault.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}

	slog.SetDefault(slog.New(logger.NewHandler(cfg.Log.Level)))
	slog.Info("Starting CardVault catalog service",
		slog.String("version", version),
		slog.String("commit", commit))

	slog.Info("Initializing database connection...")
	dbStartTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	slog.Info("Database connected successfully",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	slog.Info("Initializing database schema...")
	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema",
			slog.String("error", err.Error()))
		os.Exit(-1)
	}
	slog.Info("Database schema initialized successfully")

	repo := repositories.NewCardRepository(db.BunDB())
	provider := ygoprodeck.NewClient(cfg.Provider.BaseURL)
	syncService := services.NewSyncService(provider, repo)
	catalogService := services.NewCatalogService(repo)

	var spacesService *services.SpacesService
	if cfg.Spaces.Bucket != "" {
		spacesService, err = services.NewSpacesService(repo,
			cfg.Spaces.Key,
			cfg.Spaces.Secret,
			cfg.Spaces.Region,
			cfg.Spaces.Bucket,
			cfg.Spaces.ImageRoot,
		)
		if err != nil {
			slog.Error("Failed to initialize Spaces service",
				slog.String("error", err.Error()))
			os.Exit(-1)
		}
	}

	runSync := func(parent context.Context) {
		syncCtx, syncCancel := context.WithTimeout(parent, 30*time.Minute)
		defer syncCancel()

		if _, err := syncService.Sync(syncCtx); err != nil {
			slog.Error("Catalog sync failed",
				slog.String("type", "sync"),
				slog.String("error", err.Error()))
			return
		}

		if spacesService != nil && (cfg.Sync.MirrorImages || *shouldMirrorImages) {
			ids, err := repo.GetAllIDs(syncCtx)
			if err != nil {
				slog.Error("Failed to list cards for image mirroring",
					slog.String("error", err.Error()))
				return
			}
			if _, err := spacesService.MirrorCardImages(syncCtx, ids); err != nil {
				slog.Error("Image mirroring failed",
					slog.String("error", err.Error()))
			}
		}
	}

	if *shouldSyncNow {
		runSync(context.Background())
	}

	count, err := catalogService.GetCardCount(ctx)
	if err != nil {
		slog.Error("Failed to count catalog cards",
			slog.String("error", err.Error()))
	} else {
		slog.Info("Catalog ready", slog.Int64("cards", count))
	}

	loopCtx, loopCancel := context.WithCancel(context.Background())
	defer loopCancel()

	if cfg.Sync.IntervalHours > 0 {
		go func() {
			ticker := time.NewTicker(time.Duration(cfg.Sync.IntervalHours) * time.Hour)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					runSync(loopCtx)
				case <-loopCtx.Done():
					return
				}
			}
		}()
		slog.Info("Scheduled sync enabled",
			slog.Int("interval_hours", cfg.Sync.IntervalHours))
	}

	slog.Info("CardVault is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down...")
}
