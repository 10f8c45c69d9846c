package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles: viewer (read stock/plans), planner (compute/apply plans),
// admin (everything, incl. user and farm management).
const (
	RoleAdmin   = "admin"
	RolePlanner = "planner"
	RoleViewer  = "viewer"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	Email        string
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:'viewer'"`
	Active       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
