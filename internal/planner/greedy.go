package planner

import (
	"container/heap"

	"github.com/shopspring/decimal"
)

// unboundedTrips tells greedySimulate to consume trips until the heap empties.
const unboundedTrips = -1

// productState is the mutable per-product planning state. The struct is kept
// copyable by value so that scratch snapshots for what-if probes are a plain
// slice copy and can never alias the plan under construction.
type productState struct {
	id        string
	stockL    decimal.Decimal
	minKeepL  decimal.Decimal
	capL      decimal.Decimal
	pricePerL decimal.Decimal
	sellableL decimal.Decimal

	remainingFull int
	remL          decimal.Decimal
	lastUsed      bool

	soldL      decimal.Decimal
	chosenFull int
	chosenLast bool
}

// initStates derives planning state for every eligible product. A product is
// eligible when it is enabled, has a positive per-trip capacity, and holds
// more stock than its keep threshold. Input order is preserved; all tie
// breaking is keyed by product id, so order never affects the result.
func initStates(products []Product) []productState {
	states := make([]productState, 0, len(products))
	thousand := decimal.NewFromInt(1000)
	for _, pr := range products {
		sellable := pr.StockL.Sub(pr.MinKeepL)
		if !pr.Enabled || !pr.CapPerTripL.IsPositive() || !sellable.IsPositive() {
			continue
		}
		// Exact integer division: fullTrips whole trips plus a remainder
		// 0 <= remL < cap that forms the single partial trip.
		fullTrips, remL := sellable.QuoRem(pr.CapPerTripL, 0)
		states = append(states, productState{
			id:        pr.ProductID,
			stockL:    pr.StockL,
			minKeepL:  pr.MinKeepL,
			capL:      pr.CapPerTripL,
			pricePerL: pr.PricePer1000.Div(thousand),
			sellableL: sellable,

			remainingFull: int(fullTrips.IntPart()),
			remL:          remL,

			soldL: decimal.Zero,
		})
	}
	return states
}

func cloneStates(states []productState) []productState {
	return append([]productState(nil), states...)
}

// tripCandidate is one product's currently available trip.
type tripCandidate struct {
	value     decimal.Decimal
	productID string
	idx       int
	partial   bool
}

// tripHeap pops the highest-value candidate first, ties broken by ascending
// product id so extraction order is deterministic.
type tripHeap []tripCandidate

func (h tripHeap) Len() int { return len(h) }

func (h tripHeap) Less(i, j int) bool {
	if c := h[i].value.Cmp(h[j].value); c != 0 {
		return c > 0
	}
	return h[i].productID < h[j].productID
}

func (h tripHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *tripHeap) Push(x any) { *h = append(*h, x.(tripCandidate)) }

func (h *tripHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

// nextCandidate returns the trip st offers right now: a full trip while any
// remain, otherwise the partial trip if it exists and is unused. The partial
// trip is never offered before the full trips are exhausted.
func nextCandidate(st *productState, idx int) (tripCandidate, bool) {
	if st.remainingFull > 0 {
		return tripCandidate{value: st.capL.Mul(st.pricePerL), productID: st.id, idx: idx}, true
	}
	if st.remL.IsPositive() && !st.lastUsed {
		return tripCandidate{value: st.remL.Mul(st.pricePerL), productID: st.id, idx: idx, partial: true}, true
	}
	return tripCandidate{}, false
}

// greedySimulate consumes highest-value trips from states until maxTrips trips
// are used (unbounded when negative), the accumulated revenue reaches target
// (ignored when target is not positive), or no trips remain. It returns the
// revenue accumulated and the number of trips consumed.
//
// states is mutated: callers must pass their own scratch copy (cloneStates),
// never the live planning state. One routine serves all three uses — the
// minimum-trip-count search, the per-step feasibility probe, and the
// max-revenue report for unreachable targets.
func greedySimulate(states []productState, maxTrips int, target decimal.Decimal) (decimal.Decimal, int) {
	if maxTrips == 0 {
		return decimal.Zero, 0
	}

	h := make(tripHeap, 0, len(states))
	for i := range states {
		if c, ok := nextCandidate(&states[i], i); ok {
			h = append(h, c)
		}
	}
	heap.Init(&h)

	total := decimal.Zero
	trips := 0
	for h.Len() > 0 {
		if maxTrips > 0 && trips >= maxTrips {
			break
		}
		if target.IsPositive() && total.GreaterThanOrEqual(target) {
			break
		}

		c := heap.Pop(&h).(tripCandidate)
		st := &states[c.idx]

		total = total.Add(c.value)
		trips++
		if c.partial {
			st.lastUsed = true
		} else {
			st.remainingFull--
		}

		if nc, ok := nextCandidate(st, c.idx); ok {
			heap.Push(&h, nc)
		}
	}
	return total, trips
}
