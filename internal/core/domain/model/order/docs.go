// Package order implements the shipping order aggregate: the goods lines,
// surcharges and insurance detail an order owns, the money projection derived
// from them, and the lifecycle state machine every order moves through.
//
// ShippingOrder is the aggregate root. All writes go through it: child
// entities are constructed outside but attached, replaced and removed only
// via the aggregate's methods, and every derived value (unit prices, the
// insurance fee, Totals) is written exclusively by ApplyPricing. Mutators
// record which derived sections they invalidate in a RecalcScope set, so the
// application layer can tell a priced order from a stale one without
// re-deriving anything.
//
// The lifecycle is a linear chain from Draft to Delivered with a universal
// cancel: each non-terminal status exposes exactly one primary action plus
// ActionCancel, and Status.Apply is the single place transitions are
// decided. Kanban board drops are translated into lifecycle actions (or,
// under the free-move policy, recorded as board moves) by MoveOnBoard.
package order
