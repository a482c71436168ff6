package models

import "time"

// GoldPrice represents one vendor/weight quote for a calendar date.
// Prices are integer rupiah; absent figures stay nil when the source
// omits them.
type GoldPrice struct {
	Vendor       string  `json:"vendor"`
	Weight       float64 `json:"weight"`
	Unit         string  `json:"unit"`
	SellingPrice *int64  `json:"selling_price"`
	BuybackPrice *int64  `json:"buyback_price"`
	Price        *int64  `json:"price"`
	Date         string  `json:"date"`
}

// Snapshot is the ordered result of one successful acquisition.
// Immutable once produced; shared read-only between the filter,
// trend and storage paths.
type Snapshot struct {
	ID        string      `json:"id"`
	Source    string      `json:"source"`
	ScrapedAt time.Time   `json:"scraped_at"`
	Records   []GoldPrice `json:"records"`
	Warnings  int         `json:"warnings,omitempty"`
}

// Trend classifies a day-over-day price movement.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// PriceChange compares one (vendor, weight) pair across two snapshots.
// ChangePercent is nil when the previous price was zero.
type PriceChange struct {
	Vendor        string   `json:"vendor"`
	Weight        float64  `json:"weight"`
	PriceDate     string   `json:"price_date"`
	PreviousPrice int64    `json:"previous_price"`
	CurrentPrice  int64    `json:"current_price"`
	ChangeAmount  int64    `json:"change_amount"`
	ChangePercent *float64 `json:"change_percent"`
	Trend         Trend    `json:"trend"`
}

// TrendSummary counts changes per direction. Up+Down+Stable == Total.
type TrendSummary struct {
	Up     int `json:"up"`
	Down   int `json:"down"`
	Stable int `json:"stable"`
	Total  int `json:"total"`
}

// PriceQuery is the filter predicate for price listings. Nil fields
// impose no constraint on that dimension.
type PriceQuery struct {
	Vendor    string
	Weight    *float64
	MinWeight *float64
	MaxWeight *float64
}

// ChangeQuery filters persisted price changes.
type ChangeQuery struct {
	Vendor string
	Trend  Trend
	Day    time.Time
}

// HistoryQuery filters persisted price history.
type HistoryQuery struct {
	Vendor string
	Weight *float64
	Days   int
}
