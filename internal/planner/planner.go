// Package planner computes delivery trip plans for a farm's sellable stock.
//
// Given per-product stock, keep thresholds, per-trip hauling capacities and
// prices, plus a revenue target, it produces the plan that reaches the target
// in the minimum number of trips and, among all minimum-trip plans, preserves
// the most remaining stock (revenue as the final tiebreak).
//
// The package is pure: no I/O, no shared state, safe for concurrent calls.
package planner

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Reason classifies why a plan is infeasible. Business outcomes are never
// surfaced as Go errors — callers branch on Plan.Feasible and Plan.Reason.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonNoTarget         Reason = "no_target"
	ReasonNoProducts       Reason = "no_products"
	ReasonQuotaUnreachable Reason = "quota_unreachable"
)

// Product is the optimizer's view of one stock entry. Quantities are litres,
// prices are EUR per 1000 L. Inputs must be non-negative and ProductID unique;
// the caller sanitizes before calling.
type Product struct {
	ProductID    string          `json:"product_id"`
	StockL       decimal.Decimal `json:"stock_l"`
	MinKeepL     decimal.Decimal `json:"min_keep_l"`
	CapPerTripL  decimal.Decimal `json:"cap_per_trip_l"`
	PricePer1000 decimal.Decimal `json:"price_per_1000"`
	Enabled      bool            `json:"enabled"`
}

// PlanLine reports what a single product contributes to the plan.
type PlanLine struct {
	ProductID       string          `json:"product_id"`
	FullTrips       int             `json:"full_trips"`
	LastPartialUsed bool            `json:"last_partial_used"`
	SoldL           decimal.Decimal `json:"sold_l"`
	RevenueEUR      decimal.Decimal `json:"revenue_eur"`
}

// Plan is the complete optimization result. It is a self-consistent snapshot:
// applying it to live stock is the caller's responsibility.
type Plan struct {
	Feasible        bool            `json:"feasible"`
	TargetEUR       decimal.Decimal `json:"target_eur"`
	TotalRevenueEUR decimal.Decimal `json:"total_revenue_eur"`
	TotalTrips      int             `json:"total_trips"`
	Lines           []PlanLine      `json:"lines"`
	Reason          Reason          `json:"reason,omitempty"`
}

func infeasible(target, revenue decimal.Decimal, reason Reason) Plan {
	return Plan{
		Feasible:        false,
		TargetEUR:       target,
		TotalRevenueEUR: revenue,
		TotalTrips:      0,
		Lines:           []PlanLine{},
		Reason:          reason,
	}
}

// MinTrips plans which trips to haul so that total revenue reaches targetEUR.
//
// Preference order: fewest trips, then most remaining stock, then highest
// revenue, with product id as the final deterministic tiebreak. The trip count
// K is found by a greedy highest-value-first simulation (optimal because a
// product's per-trip value never increases as its trips are consumed); the K
// trips are then re-chosen one by one, preferring the candidate that leaves
// the most stock while a feasibility probe confirms the target is still
// reachable within the remaining trip budget.
func MinTrips(products []Product, targetEUR decimal.Decimal) Plan {
	if !targetEUR.IsPositive() {
		return infeasible(targetEUR, decimal.Zero, ReasonNoTarget)
	}

	states := initStates(products)
	if len(states) == 0 {
		return infeasible(targetEUR, decimal.Zero, ReasonNoProducts)
	}

	// Minimum trip count K. When the target is unreachable the exhausted
	// simulation total is exactly the maximum obtainable revenue, which the
	// caller wants reported.
	maxAll, k := greedySimulate(cloneStates(states), unboundedTrips, targetEUR)
	if maxAll.LessThan(targetEUR) {
		return infeasible(targetEUR, maxAll, ReasonQuotaUnreachable)
	}

	total := decimal.Zero
	trips := 0

	for step := 1; step <= k; step++ {
		tripsLeftAfter := k - step

		bestIdx := -1
		var bestPartial bool
		var bestSold, bestValue, bestStockAfter decimal.Decimal

		for i := range states {
			st := &states[i]

			// Next candidate trip for this product: full while any remain,
			// then the single partial trip, never both.
			var partial bool
			var sold decimal.Decimal
			switch {
			case st.remainingFull > 0:
				sold = st.capL
			case st.remL.IsPositive() && !st.lastUsed:
				partial = true
				sold = st.remL
			default:
				continue
			}
			value := sold.Mul(st.pricePerL)
			stockAfter := st.stockL.Sub(st.soldL).Sub(sold)

			// Feasibility guard: taking this trip must leave the target
			// reachable within the remaining trip budget.
			scratch := cloneStates(states)
			if partial {
				scratch[i].lastUsed = true
			} else {
				scratch[i].remainingFull--
			}
			future, _ := greedySimulate(scratch, tripsLeftAfter, decimal.Zero)
			if total.Add(value).Add(future).LessThan(targetEUR) {
				continue
			}

			if bestIdx < 0 || betterChoice(stockAfter, value, st.id, bestStockAfter, bestValue, states[bestIdx].id) {
				bestIdx = i
				bestPartial = partial
				bestSold = sold
				bestValue = value
				bestStockAfter = stockAfter
			}
		}

		// K was proven reachable, so every step has at least one candidate
		// that passes the guard.
		st := &states[bestIdx]
		st.soldL = st.soldL.Add(bestSold)
		total = total.Add(bestValue)
		trips++
		if bestPartial {
			st.chosenLast = true
			st.lastUsed = true
		} else {
			st.chosenFull++
			st.remainingFull--
		}
	}

	lines := make([]PlanLine, 0, len(states))
	for i := range states {
		st := &states[i]
		if st.chosenFull == 0 && !st.chosenLast {
			continue
		}
		lines = append(lines, PlanLine{
			ProductID:       st.id,
			FullTrips:       st.chosenFull,
			LastPartialUsed: st.chosenLast,
			SoldL:           st.soldL,
			RevenueEUR:      st.soldL.Mul(st.pricePerL),
		})
	}

	// Presentation order: most trips first, then most litres sold, then id.
	sort.Slice(lines, func(i, j int) bool {
		ti := lines[i].FullTrips + boolToInt(lines[i].LastPartialUsed)
		tj := lines[j].FullTrips + boolToInt(lines[j].LastPartialUsed)
		if ti != tj {
			return ti > tj
		}
		if c := lines[i].SoldL.Cmp(lines[j].SoldL); c != 0 {
			return c > 0
		}
		return lines[i].ProductID < lines[j].ProductID
	})

	return Plan{
		Feasible:        true,
		TargetEUR:       targetEUR,
		TotalRevenueEUR: total,
		TotalTrips:      trips,
		Lines:           lines,
	}
}

// betterChoice reports whether candidate a beats candidate b under the
// selection key (remaining stock after, trip value, product id), compared
// lexicographically with the greater tuple winning.
func betterChoice(aStock, aValue decimal.Decimal, aID string, bStock, bValue decimal.Decimal, bID string) bool {
	if c := aStock.Cmp(bStock); c != 0 {
		return c > 0
	}
	if c := aValue.Cmp(bValue); c != 0 {
		return c > 0
	}
	return aID > bID
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
