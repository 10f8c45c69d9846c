package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserProduct is a farm-defined catalog extension: a product that does not
// exist in the built-in catalog but can be stocked and planned like any other.
type UserProduct struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FarmID                 uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_farm_user_product"`
	ProductID              string          `gorm:"not null;uniqueIndex:idx_farm_user_product"`
	Name                   string          `gorm:"not null"`
	Icon                   string
	DefaultMaxPricePer1000 decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt              time.Time
	UpdatedAt              time.Time

	Farm *Farm `gorm:"foreignKey:FarmID;constraint:OnDelete:CASCADE"`
}
