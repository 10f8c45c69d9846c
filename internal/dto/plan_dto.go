package dto

import (
	"time"

	"fsstock/internal/planner"

	"github.com/shopspring/decimal"
)

// ComputePlanRequest carries the revenue target. Zero and negative targets
// are accepted here; the optimizer answers them with an infeasible plan.
type ComputePlanRequest struct {
	TargetEUR decimal.Decimal `json:"target_eur"`
}

// PlanResponse wraps the optimizer's plan verbatim; every planner field
// round-trips through this DTO unchanged.
type PlanResponse struct {
	FarmID     string       `json:"farm_id"`
	Plan       planner.Plan `json:"plan"`
	ComputedAt time.Time    `json:"computed_at"`
}

// ApplyPlanResponse reports the registry mutation performed when a plan is
// applied: entries reduced and entries removed because stock hit zero.
type ApplyPlanResponse struct {
	FarmID          string   `json:"farm_id"`
	AppliedTrips    int      `json:"applied_trips"`
	UpdatedProducts []string `json:"updated_products"`
	RemovedProducts []string `json:"removed_products"`
}
