package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanRecord stores a farm's last computed trip plan. The full plan is kept
// as JSON in Payload so it round-trips losslessly; the scalar columns are
// denormalized for listing and filtering.
type PlanRecord struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FarmID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Feasible        bool            `gorm:"not null"`
	TargetEUR       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalRevenueEUR decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TotalTrips      int             `gorm:"not null"`
	Reason          string
	Payload         []byte `gorm:"type:jsonb;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Farm *Farm `gorm:"foreignKey:FarmID;constraint:OnDelete:CASCADE"`
}
