package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockEntry is the live registry record the optimizer reads from: one row
// per (farm, product). Quantities are litres, prices EUR per 1000 L.
type StockEntry struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FarmID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_farm_product"`
	ProductID       string          `gorm:"not null;uniqueIndex:idx_farm_product"`
	QtyL            decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	MaxPricePer1000 decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CapPerTripL     decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	MinKeepL        decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	Enabled         bool            `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Farm *Farm `gorm:"foreignKey:FarmID;constraint:OnDelete:CASCADE"`
}
