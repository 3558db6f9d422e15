// Package refdata provides the immutable reference data the rating engine
// consumes: routes, shipping services, rate cards, insurance packages,
// surcharge types and branches.
//
// Reference data is owned externally (the admin console maintains it) and is
// only referenced by id from shipping orders. The engine resolves it through
// read-only lookups and never mutates it; accordingly every type in this
// package is a value object with private fields, a validating constructor,
// and a Restore constructor for rehydration from persistence.
//
// The one piece of behavior that lives here is RateCard.ActiveAt: the validity
// window check (effectiveDate <= t, and t < deletionDate when a deletion date
// is set) that the rate resolver builds on.
package refdata
