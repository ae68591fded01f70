package models

import (
	"database/sql"

	"github.com/uptrace/bun"
)

// CardImage stores the provider-hosted artwork URLs for a card, usually
// exactly one row per card.
type CardImage struct {
	bun.BaseModel `bun:"table:card_images,alias:ci"`

	ID              int64          `bun:"id,pk,autoincrement"`
	CardID          int64          `bun:"card_id,notnull"`
	ImageURL        string         `bun:"image_url,notnull"`
	ImageURLSmall   sql.NullString `bun:"image_url_small"`
	ImageURLCropped sql.NullString `bun:"image_url_cropped"`
}
