// Package services provides the domain services of the rating engine:
// business operations that read reference data and shipping orders together
// and therefore don't belong to a single aggregate.
//
// The package includes:
//   - RateResolver: selects the rate card governing a route/service pair at
//     a given date
//   - ChargeableWeight: the volumetric (DIM) weight calculation
//   - OrderPricer: the full pricing pass — line pricing, insurance fee and
//     fee aggregation — applied to an order through its aggregate root
//
// All services are pure over their inputs; repositories load the reference
// data and the application layer wires the two together.
package services
