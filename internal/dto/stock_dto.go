package dto

import "github.com/shopspring/decimal"

// UpsertStockRequest creates or replaces the stock entry for one product.
// Non-negative bounds here keep the planner's numeric preconditions intact;
// the optimizer itself does not re-validate.
type UpsertStockRequest struct {
	QtyL            decimal.Decimal `json:"qty_l"               validate:"gte=0"`
	MaxPricePer1000 decimal.Decimal `json:"max_price_per_1000"  validate:"gte=0"`
	CapPerTripL     decimal.Decimal `json:"cap_per_trip_l"      validate:"gte=0"`
	MinKeepL        decimal.Decimal `json:"min_keep_l"          validate:"gte=0"`
	Enabled         *bool           `json:"enabled"`
}

type StockEntryResponse struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name,omitempty"`
	QtyL            decimal.Decimal `json:"qty_l"`
	MaxPricePer1000 decimal.Decimal `json:"max_price_per_1000"`
	CapPerTripL     decimal.Decimal `json:"cap_per_trip_l"`
	MinKeepL        decimal.Decimal `json:"min_keep_l"`
	Enabled         bool            `json:"enabled"`
}

type StockListResponse struct {
	FarmID  string               `json:"farm_id"`
	Entries []StockEntryResponse `json:"entries"`
}
