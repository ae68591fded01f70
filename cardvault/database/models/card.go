package models

import (
	"database/sql"
	"time"

	"github.com/uptrace/bun"
)

// Card is the parent row of the catalog. The primary key is the provider's
// stable card id, never generated locally. id, type, human_readable_card_type,
// frame_type and created_at are written once; the remaining fields are
// overwritten on every sync.
type Card struct {
	bun.BaseModel `bun:"table:cards,alias:c"`

	ID                int64          `bun:"id,pk"`
	Name              string         `bun:"name,notnull"`
	Type              string         `bun:"type,notnull"`
	HumanReadableType string         `bun:"human_readable_card_type,notnull"`
	FrameType         string         `bun:"frame_type,notnull"`
	Description       string         `bun:"description,notnull,type:text"`
	Race              string         `bun:"race"`
	Atk               sql.NullInt64  `bun:"atk"`
	Def               sql.NullInt64  `bun:"def"`
	Level             sql.NullInt64  `bun:"level"`
	Attribute         sql.NullString `bun:"attribute"`
	Archetype         sql.NullString `bun:"archetype"`
	ReferenceURL      string         `bun:"ygoprodeck_url"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
