package market

// Material is one entry of the tradable catalog. Identity is the ticker;
// the hash is the service's stable internal id. Immutable once loaded.
type Material struct {
	Ticker   string
	Hash     string
	Name     string
	Category string
	Weight   float64 // tons per unit
	Volume   float64 // m³ per unit
}

// PriceHistoryEntry is one interval of `/exchange/cxpc/{TICKER}.{EXCHANGE}`.
type PriceHistoryEntry struct {
	DateEpochMs int64   `json:"DateEpochMs"`
	Open        float64 `json:"Open"`
	Close       float64 `json:"Close"`
	High        float64 `json:"High"`
	Low         float64 `json:"Low"`
	Traded      float64 `json:"Traded"` // units traded in the interval
	Volume      float64 `json:"Volume"` // currency turned over
}
