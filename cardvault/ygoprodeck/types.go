package ygoprodeck

// CardDocument is the nested card record shape served by the provider's
// /cardinfo endpoint. The same shape is what reconstruction produces, so a
// synced catalog round-trips through these types.
type CardDocument struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	Type              string   `json:"type"`
	HumanReadableType string   `json:"humanReadableCardType"`
	FrameType         string   `json:"frameType"`
	Desc              string   `json:"desc"`
	Race              string   `json:"race"`
	Atk               *int64   `json:"atk,omitempty"`
	Def               *int64   `json:"def,omitempty"`
	Level             *int64   `json:"level,omitempty"`
	Attribute         string   `json:"attribute,omitempty"`
	Archetype         string   `json:"archetype,omitempty"`
	URL               string   `json:"ygoprodeck_url"`
	Typeline          []string `json:"typeline,omitempty"`

	CardSets    []PrintingDoc `json:"card_sets,omitempty"`
	BanlistInfo *BanlistDoc   `json:"banlist_info,omitempty"`
	CardImages  []ImageDoc    `json:"card_images,omitempty"`
	CardPrices  []PriceDoc    `json:"card_prices,omitempty"`
}

// PrintingDoc is one physical printing of a card in a released set.
type PrintingDoc struct {
	SetName       string `json:"set_name"`
	SetCode       string `json:"set_code"`
	SetRarity     string `json:"set_rarity"`
	SetRarityCode string `json:"set_rarity_code,omitempty"`
	SetPrice      string `json:"set_price"`
}

type BanlistDoc struct {
	BanOCG string `json:"ban_ocg,omitempty"`
}

type ImageDoc struct {
	ImageURL        string `json:"image_url"`
	ImageURLSmall   string `json:"image_url_small,omitempty"`
	ImageURLCropped string `json:"image_url_cropped,omitempty"`
}

// PriceDoc carries the five marketplace quotes the provider tracks. All
// values arrive as strings and may be empty.
type PriceDoc struct {
	CardmarketPrice   string `json:"cardmarket_price"`
	TcgplayerPrice    string `json:"tcgplayer_price"`
	EbayPrice         string `json:"ebay_price"`
	AmazonPrice       string `json:"amazon_price"`
	CoolstuffincPrice string `json:"coolstuffinc_price"`
}

type catalogResponse struct {
	Data []CardDocument `json:"data"`
}
