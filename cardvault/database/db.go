package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/duelhall/cardvault/cardvault/database/models"
	"github.com/uptrace/bun"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	defaultConnTimeout   = 5 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
)

type DBConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	SSLMode      string `toml:"ssl_mode"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
}

// DB bundles the pgx pool (raw exec/query, DDL) with a bun handle (models,
// set-based statements) over the same database. Callers receive it
// explicitly; there is no package-level singleton.
type DB struct {
	pool  *pgxpool.Pool
	bunDB *bun.DB
}

func New(ctx context.Context, cfg DBConfig) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(buildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxLifetime) * time.Second
	}
	poolConfig.ConnConfig.ConnectTimeout = defaultConnTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// The pool connects lazily; verify the server is actually reachable
	// before handing the DB out.
	for i := 0; ; i++ {
		if err = pool.Ping(ctx); err == nil {
			break
		}
		if i+1 >= defaultMaxRetries {
			pool.Close()
			return nil, fmt.Errorf("database unreachable after %d attempts: %w", defaultMaxRetries, err)
		}
		time.Sleep(defaultRetryInterval)
	}

	return &DB{pool: pool, bunDB: newBunDB(cfg)}, nil
}

func buildConnString(cfg DBConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?connect_timeout=5",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
}

func newBunDB(cfg DBConfig) *bun.DB {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, sslMode,
	)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

func (db *DB) ExecWithLog(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	start := time.Now()
	result, err := db.pool.Exec(ctx, sql, args...)
	duration := time.Since(start)

	if err != nil {
		slog.Error("Query failed",
			slog.String("type", "db"),
			slog.String("operation", "exec"),
			slog.String("query", sql),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return result, err
	}

	slog.Debug("Query executed",
		slog.String("type", "db"),
		slog.String("operation", "exec"),
		slog.String("query", sql),
		slog.Duration("took", duration),
		slog.Int64("affected_rows", result.RowsAffected()),
	)
	return result, nil
}

func (db *DB) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("pgxpool ping failed: %w", err)
	}
	if err := db.bunDB.PingContext(ctx); err != nil {
		return fmt.Errorf("bun ping failed: %w", err)
	}
	return nil
}

func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
	if db.bunDB != nil {
		db.bunDB.Close()
	}
}

// InitializeSchema creates the catalog tables and indexes. Parent table
// first so the child foreign keys have something to reference.
func (db *DB) InitializeSchema(ctx context.Context) error {
	tables := []interface{}{
		(*models.Card)(nil),
		(*models.CardType)(nil),
		(*models.CardPrinting)(nil),
		(*models.BanlistInfo)(nil),
		(*models.CardImage)(nil),
		(*models.CardPrice)(nil),
	}

	for _, model := range tables {
		_, err := db.bunDB.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	constraints := []string{
		`DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'card_types_card_id_type_name_key'
			) THEN
				ALTER TABLE card_types
				ADD CONSTRAINT card_types_card_id_type_name_key UNIQUE (card_id, type_name);
			END IF;
		END $$;`,
		`ALTER TABLE card_types DROP CONSTRAINT IF EXISTS card_types_card_id_fkey;`,
		`ALTER TABLE card_types ADD CONSTRAINT card_types_card_id_fkey
			FOREIGN KEY (card_id) REFERENCES cards(id);`,
		`ALTER TABLE card_printings DROP CONSTRAINT IF EXISTS card_printings_card_id_fkey;`,
		`ALTER TABLE card_printings ADD CONSTRAINT card_printings_card_id_fkey
			FOREIGN KEY (card_id) REFERENCES cards(id);`,
		`ALTER TABLE banlist_info DROP CONSTRAINT IF EXISTS banlist_info_card_id_fkey;`,
		`ALTER TABLE banlist_info ADD CONSTRAINT banlist_info_card_id_fkey
			FOREIGN KEY (card_id) REFERENCES cards(id);`,
		`ALTER TABLE card_images DROP CONSTRAINT IF EXISTS card_images_card_id_fkey;`,
		`ALTER TABLE card_images ADD CONSTRAINT card_images_card_id_fkey
			FOREIGN KEY (card_id) REFERENCES cards(id);`,
		`ALTER TABLE card_prices DROP CONSTRAINT IF EXISTS card_prices_card_id_fkey;`,
		`ALTER TABLE card_prices ADD CONSTRAINT card_prices_card_id_fkey
			FOREIGN KEY (card_id) REFERENCES cards(id);`,
	}

	for _, ddl := range constraints {
		if _, err := db.ExecWithLog(ctx, ddl); err != nil {
			return fmt.Errorf("failed to apply constraint: %w", err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_cards_name ON cards(name);",
		"CREATE INDEX IF NOT EXISTS idx_cards_archetype ON cards(archetype);",
		"CREATE INDEX IF NOT EXISTS idx_card_types_card_id ON card_types(card_id);",
		"CREATE INDEX IF NOT EXISTS idx_card_printings_card_id ON card_printings(card_id);",
		"CREATE INDEX IF NOT EXISTS idx_card_printings_set_name ON card_printings(set_name);",
		"CREATE INDEX IF NOT EXISTS idx_card_images_card_id ON card_images(card_id);",
		"CREATE INDEX IF NOT EXISTS idx_card_prices_card_id ON card_prices(card_id);",
	}

	for _, idx := range indexes {
		if _, err := db.ExecWithLog(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
