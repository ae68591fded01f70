package config

import "time"

// Database and performance constants
const (
	DefaultQueryTimeout = 30 * time.Second
	SearchTimeout       = 10 * time.Second
	BatchQueryTimeout   = 5 * time.Minute

	// Suggestion index cache
	NameIndexCacheSize = 4
	NameIndexTTL       = 5 * time.Minute
	MaxSuggestions     = 10

	// Image mirroring
	MaxConcurrentMirrors = 5
	MirrorFetchTimeout   = 30 * time.Second
)

// CatalogSyncLockKey is the advisory lock key every sync transaction takes
// before touching the catalog tables. Two syncs running their
// delete-then-insert phases interleaved could durably lose child rows, so
// writes are single-flighted across processes.
const CatalogSyncLockKey int64 = 0x43415244 // "CARD"
