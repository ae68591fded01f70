package models

import (
	"database/sql"

	"github.com/uptrace/bun"
)

// BanlistInfo holds at most one row per card. Unlike the other child
// tables it is upserted in place, never deleted and reinserted: the
// provider dropping ban info for a card just means the card is not banned.
type BanlistInfo struct {
	bun.BaseModel `bun:"table:banlist_info,alias:bi"`

	ID     int64          `bun:"id,pk,autoincrement"`
	CardID int64          `bun:"card_id,notnull,unique"`
	BanOCG sql.NullString `bun:"ban_ocg"`
}
