package order

// RecalcScope is a bit set naming which derived sections of an order are
// stale and must be recomputed. It is the explicit replacement for the
// reactive field-watching of the original console: every aggregate mutation
// declares which scopes it invalidates, and the pricing service recomputes
// exactly those. A mutation that touches none of the pricing inputs (for
// example a note on the sender) marks nothing and therefore never triggers
// repricing.
type RecalcScope uint8

const (
	// ScopeLinePricing covers rate resolution and per-line unit prices.
	// Marked by changes to route, service, volumetric divisor, or any
	// goods line's dimensions, weight or quantity.
	ScopeLinePricing RecalcScope = 1 << iota

	// ScopeInsurance covers the insurance fee.
	// Marked by changes to the insurance package or declared value.
	ScopeInsurance

	// ScopeTotals covers the money totals projection.
	// Marked by every pricing-relevant change, including surcharges and
	// the branch discount.
	ScopeTotals
)

// Has reports whether the scope set includes the given scope.
func (s RecalcScope) Has(scope RecalcScope) bool {
	return s&scope != 0
}

// IsEmpty reports whether nothing is stale.
func (s RecalcScope) IsEmpty() bool {
	return s == 0
}
