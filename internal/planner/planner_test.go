package planner

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func product(id, stock, minKeep, cap, pricePer1000 string) Product {
	return Product{
		ProductID:    id,
		StockL:       dec(stock),
		MinKeepL:     dec(minKeep),
		CapPerTripL:  dec(cap),
		PricePer1000: dec(pricePer1000),
		Enabled:      true,
	}
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

// greedyBound is the exhaustive greedy revenue obtainable with at most
// maxTrips trips from a fresh state — used to verify trip-count minimality.
func greedyBound(products []Product, maxTrips int) decimal.Decimal {
	total, _ := greedySimulate(initStates(products), maxTrips, decimal.Zero)
	return total
}

// ── Trivial rejections ───────────────────────────────────────────────────────

func TestZeroTargetIsRejected(t *testing.T) {
	plan := MinTrips([]Product{product("milk", "100", "0", "30", "1000")}, decimal.Zero)

	assert.False(t, plan.Feasible)
	assert.Equal(t, ReasonNoTarget, plan.Reason)
	assert.Equal(t, 0, plan.TotalTrips)
	assertDec(t, "0", plan.TotalRevenueEUR)
	assert.Empty(t, plan.Lines)
}

func TestNegativeTargetIsRejected(t *testing.T) {
	plan := MinTrips([]Product{product("milk", "100", "0", "30", "1000")}, dec("-5"))

	assert.False(t, plan.Feasible)
	assert.Equal(t, ReasonNoTarget, plan.Reason)
}

func TestNoEligibleProducts(t *testing.T) {
	disabled := product("milk", "100", "0", "30", "1000")
	disabled.Enabled = false
	noCap := product("water", "100", "0", "0", "500")
	allKept := product("diesel", "50", "50", "30", "800")

	plan := MinTrips([]Product{disabled, noCap, allKept}, dec("10"))

	assert.False(t, plan.Feasible)
	assert.Equal(t, ReasonNoProducts, plan.Reason)
	assert.Equal(t, 0, plan.TotalTrips)
}

func TestEmptyInput(t *testing.T) {
	plan := MinTrips(nil, dec("10"))

	assert.False(t, plan.Feasible)
	assert.Equal(t, ReasonNoProducts, plan.Reason)
}

// ── Core scenarios ───────────────────────────────────────────────────────────

// One product, 100 L stock, 30 L per trip at 1 EUR/L: 3 full trips plus a
// 10 L partial. A 50 EUR target needs two full trips (60 EUR).
func TestSingleProductTwoFullTrips(t *testing.T) {
	products := []Product{product("milk", "100", "0", "30", "1000")}
	plan := MinTrips(products, dec("50"))

	require.True(t, plan.Feasible)
	assert.Equal(t, 2, plan.TotalTrips)
	assertDec(t, "60", plan.TotalRevenueEUR)
	assertDec(t, "50", plan.TargetEUR)
	require.Len(t, plan.Lines, 1)

	line := plan.Lines[0]
	assert.Equal(t, "milk", line.ProductID)
	assert.Equal(t, 2, line.FullTrips)
	assert.False(t, line.LastPartialUsed)
	assertDec(t, "60", line.SoldL)
	assertDec(t, "60", line.RevenueEUR)
}

// Same product, target above the 100 EUR maximum: infeasible, and the true
// maximum obtainable revenue is reported so the caller can show how close
// the farm got.
func TestUnreachableTargetReportsMaxRevenue(t *testing.T) {
	products := []Product{product("milk", "100", "0", "30", "1000")}
	plan := MinTrips(products, dec("1000"))

	assert.False(t, plan.Feasible)
	assert.Equal(t, ReasonQuotaUnreachable, plan.Reason)
	assert.Equal(t, 0, plan.TotalTrips)
	assertDec(t, "100", plan.TotalRevenueEUR)
	assert.Empty(t, plan.Lines)
}

// Two products where either single trip reaches the target: remaining stock
// ties at zero for both, so the higher-value trip wins.
func TestSingleTripValueTiebreak(t *testing.T) {
	products := []Product{
		product("a_oil", "50", "0", "50", "2000"),
		product("b_juice", "10", "0", "50", "2000"),
	}
	plan := MinTrips(products, dec("15"))

	require.True(t, plan.Feasible)
	assert.Equal(t, 1, plan.TotalTrips)
	assertDec(t, "100", plan.TotalRevenueEUR)
	require.Len(t, plan.Lines, 1)
	assert.Equal(t, "a_oil", plan.Lines[0].ProductID)
	assert.Equal(t, 1, plan.Lines[0].FullTrips)
	assert.False(t, plan.Lines[0].LastPartialUsed)
}

// Stock preservation outranks revenue: a cheap small trip that leaves 90 L
// in the silo beats a big trip that empties it, as long as both reach the
// target on their own.
func TestStockPreservationBeatsRevenue(t *testing.T) {
	products := []Product{
		product("water", "100", "0", "10", "1000"),  // 10 EUR per trip, leaves 90
		product("diesel", "30", "0", "30", "1000"),  // 30 EUR, leaves 0
	}
	plan := MinTrips(products, dec("10"))

	require.True(t, plan.Feasible)
	assert.Equal(t, 1, plan.TotalTrips)
	require.Len(t, plan.Lines, 1)
	assert.Equal(t, "water", plan.Lines[0].ProductID)
	assertDec(t, "10", plan.TotalRevenueEUR)
}

// The feasibility guard must reject stock-preserving trips that would leave
// the target unreachable in the remaining budget.
func TestFeasibilityGuardRejectsDeadEnds(t *testing.T) {
	products := []Product{
		product("slurry", "100", "0", "10", "100"), // 1 EUR per trip, very stock-friendly
		product("milk", "40", "0", "20", "1000"),   // 20 EUR per trip
	}
	plan := MinTrips(products, dec("40"))

	require.True(t, plan.Feasible)
	assert.Equal(t, 2, plan.TotalTrips)
	assertDec(t, "40", plan.TotalRevenueEUR)
	require.Len(t, plan.Lines, 1)
	assert.Equal(t, "milk", plan.Lines[0].ProductID)
	assert.Equal(t, 2, plan.Lines[0].FullTrips)
}

// Fractional litres stay exact: 7.5 L stock keeping 0.5 L sells 7 L in
// 2 L trips — three full trips plus a 1 L partial.
func TestFractionalQuantities(t *testing.T) {
	products := []Product{product("grape_juice", "7.5", "0.5", "2", "1000")}
	plan := MinTrips(products, dec("6.5"))

	require.True(t, plan.Feasible)
	assert.Equal(t, 4, plan.TotalTrips)
	assertDec(t, "7", plan.TotalRevenueEUR)
	require.Len(t, plan.Lines, 1)
	assert.Equal(t, 3, plan.Lines[0].FullTrips)
	assert.True(t, plan.Lines[0].LastPartialUsed)
	assertDec(t, "7", plan.Lines[0].SoldL)
}

// ── Invariants and properties ────────────────────────────────────────────────

func multiProducts() []Product {
	return []Product{
		product("milk", "210", "10", "40", "1200"),
		product("water", "500", "100", "80", "150"),
		product("diesel", "95", "0", "30", "900"),
		product("herbicide", "61", "1", "25", "2000"),
		product("sunflower_oil", "18", "0", "50", "3000"),
	}
}

func TestTripCountMinimality(t *testing.T) {
	products := multiProducts()
	for _, target := range []string{"10", "55", "120", "250", "333.33", "410"} {
		plan := MinTrips(products, dec(target))
		require.True(t, plan.Feasible, "target %s", target)
		require.Positive(t, plan.TotalTrips)

		// K-1 trips of pure value greed must fall short of the target.
		bound := greedyBound(products, plan.TotalTrips-1)
		assert.True(t, bound.LessThan(dec(target)),
			"target %s reachable in %d trips (bound %s)", target, plan.TotalTrips-1, bound)
		assert.True(t, plan.TotalRevenueEUR.GreaterThanOrEqual(dec(target)))
	}
}

func TestStockConservationAndOrdering(t *testing.T) {
	products := multiProducts()
	byID := map[string]Product{}
	for _, p := range products {
		byID[p.ProductID] = p
	}

	plan := MinTrips(products, dec("300"))
	require.True(t, plan.Feasible)

	for _, line := range plan.Lines {
		p := byID[line.ProductID]
		sellable := p.StockL.Sub(p.MinKeepL)
		fullTrips, rem := sellable.QuoRem(p.CapPerTripL, 0)

		// Never sell below the keep threshold.
		assert.True(t, line.SoldL.LessThanOrEqual(sellable), "%s oversold", line.ProductID)

		// Sold quantity decomposes into whole trips plus the optional partial.
		want := p.CapPerTripL.Mul(decimal.NewFromInt(int64(line.FullTrips)))
		if line.LastPartialUsed {
			want = want.Add(rem)
			// The partial trip is only reachable after every full trip.
			assert.Equal(t, int(fullTrips.IntPart()), line.FullTrips,
				"%s used its partial trip with full trips remaining", line.ProductID)
		}
		assert.True(t, want.Equal(line.SoldL), "%s sold %s, decomposition %s", line.ProductID, line.SoldL, want)

		assert.True(t, line.RevenueEUR.Equal(line.SoldL.Mul(p.PricePer1000.Div(decimal.NewFromInt(1000)))))
	}
}

func TestMonotonicTripCount(t *testing.T) {
	products := multiProducts()
	prev := 0
	for _, target := range []string{"5", "25", "60", "110", "200", "320", "400"} {
		plan := MinTrips(products, dec(target))
		require.True(t, plan.Feasible, "target %s", target)
		assert.GreaterOrEqual(t, plan.TotalTrips, prev, "trips decreased at target %s", target)
		prev = plan.TotalTrips
	}
}

func TestDeterministicAndOrderIndependent(t *testing.T) {
	products := multiProducts()
	reversed := make([]Product, len(products))
	for i, p := range products {
		reversed[len(products)-1-i] = p
	}

	a := MinTrips(products, dec("275"))
	b := MinTrips(products, dec("275"))
	c := MinTrips(reversed, dec("275"))

	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
}

func TestInputsAreNotMutated(t *testing.T) {
	products := []Product{product("milk", "100", "0", "30", "1000")}
	before := products[0]

	_ = MinTrips(products, dec("50"))

	assert.Equal(t, before, products[0])
}

func TestLinePresentationOrder(t *testing.T) {
	products := []Product{
		product("milk", "120", "0", "40", "1000"),
		product("water", "240", "0", "40", "1000"),
	}
	plan := MinTrips(products, dec("355"))

	require.True(t, plan.Feasible)
	require.Len(t, plan.Lines, 2)
	// More trips sorts first.
	first := plan.Lines[0].FullTrips + boolToInt(plan.Lines[0].LastPartialUsed)
	second := plan.Lines[1].FullTrips + boolToInt(plan.Lines[1].LastPartialUsed)
	assert.GreaterOrEqual(t, first, second)
}

// ── Greedy helper ────────────────────────────────────────────────────────────

func TestGreedyPrefersHighestValueThenID(t *testing.T) {
	states := initStates([]Product{
		product("b", "20", "0", "20", "1000"), // one 20 EUR trip
		product("a", "20", "0", "20", "1000"), // identical value, lower id
	})

	total, trips := greedySimulate(cloneStates(states), 1, decimal.Zero)
	assert.Equal(t, 1, trips)
	assert.True(t, dec("20").Equal(total))

	// Identical values: ascending id pops first, and exhaustion sums both.
	total, trips = greedySimulate(cloneStates(states), unboundedTrips, decimal.Zero)
	assert.Equal(t, 2, trips)
	assert.True(t, dec("40").Equal(total))
}

func TestGreedyPartialOnlyAfterFullTrips(t *testing.T) {
	states := initStates([]Product{product("milk", "100", "0", "30", "1000")})

	// 4 trips exhaust the product: three 30 EUR full trips then the 10 EUR partial.
	total, trips := greedySimulate(cloneStates(states), unboundedTrips, decimal.Zero)
	assert.Equal(t, 4, trips)
	assert.True(t, dec("100").Equal(total))

	// With 3 trips the partial is never reached.
	total, trips = greedySimulate(cloneStates(states), 3, decimal.Zero)
	assert.Equal(t, 3, trips)
	assert.True(t, dec("90").Equal(total))
}

func TestGreedyStopsAtTarget(t *testing.T) {
	states := initStates([]Product{product("milk", "100", "0", "30", "1000")})

	total, trips := greedySimulate(cloneStates(states), unboundedTrips, dec("45"))
	assert.Equal(t, 2, trips)
	assert.True(t, dec("60").Equal(total))
}
