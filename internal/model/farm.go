package model

import (
	"time"

	"github.com/google/uuid"
)

// Farm groups a set of stock entries and at most one stored trip plan.
type Farm struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
