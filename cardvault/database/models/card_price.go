package models

import "github.com/uptrace/bun"

// CardPrice carries the five marketplace quotes for a card. Prices are
// never NULL: unparsable or missing source values are coerced to 0 before
// they reach this struct.
type CardPrice struct {
	bun.BaseModel `bun:"table:card_prices,alias:cpr"`

	ID                int64   `bun:"id,pk,autoincrement"`
	CardID            int64   `bun:"card_id,notnull"`
	CardmarketPrice   float64 `bun:"cardmarket_price,notnull,default:0"`
	TcgplayerPrice    float64 `bun:"tcgplayer_price,notnull,default:0"`
	EbayPrice         float64 `bun:"ebay_price,notnull,default:0"`
	AmazonPrice       float64 `bun:"amazon_price,notnull,default:0"`
	CoolstuffincPrice float64 `bun:"coolstuffinc_price,notnull,default:0"`
}
