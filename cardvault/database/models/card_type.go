package models

import "github.com/uptrace/bun"

// CardType is one entry of a card's typeline. The (card_id, type_name)
// pair is unique; order is irrelevant.
type CardType struct {
	bun.BaseModel `bun:"table:card_types,alias:ct"`

	ID       int64  `bun:"id,pk,autoincrement"`
	CardID   int64  `bun:"card_id,notnull"`
	TypeName string `bun:"type_name,notnull"`
}
