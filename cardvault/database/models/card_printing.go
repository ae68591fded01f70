package models

import (
	"database/sql"

	"github.com/uptrace/bun"
)

// CardPrinting is one physical printing of a card. The same card/set pair
// may legitimately appear multiple times (different rarities), so there is
// no uniqueness constraint; ordering by set name happens at read time.
type CardPrinting struct {
	bun.BaseModel `bun:"table:card_printings,alias:cp"`

	ID            int64          `bun:"id,pk,autoincrement"`
	CardID        int64          `bun:"card_id,notnull"`
	SetName       string         `bun:"set_name,notnull"`
	SetCode       string         `bun:"set_code,notnull"`
	SetRarity     string         `bun:"set_rarity,notnull"`
	SetRarityCode sql.NullString `bun:"set_rarity_code"`
	SetPrice      float64        `bun:"set_price,notnull,default:0"`
}
