// Package ports defines repository interfaces for the shipping domain.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/refdata"
)

// ReferenceRepository defines the read-only contract for the reference data
// the rating engine consumes: routes, services, rate cards, insurance
// packages, surcharge types and branches. Reference data is maintained
// elsewhere; the engine only ever looks it up.
//
// Lookups by id return errs.ObjectNotFoundError when the id is unknown.
type ReferenceRepository interface {
	// GetRoute retrieves a route by its unique identifier.
	GetRoute(ctx context.Context, id kernel.UUID) (refdata.Route, error)

	// GetService retrieves a shipping service by its unique identifier.
	GetService(ctx context.Context, id kernel.UUID) (refdata.ShippingService, error)

	// GetRateCards retrieves every rate card registered for the given
	// route and service, regardless of validity window. The rate resolver
	// applies the window rules.
	GetRateCards(ctx context.Context, routeID, serviceID kernel.UUID) ([]refdata.RateCard, error)

	// GetAllRateCards retrieves every rate card in the system.
	// Used by the rate-card audit job to detect overlapping windows.
	GetAllRateCards(ctx context.Context) ([]refdata.RateCard, error)

	// GetInsurancePackage retrieves an insurance package by its unique identifier.
	GetInsurancePackage(ctx context.Context, id kernel.UUID) (refdata.InsurancePackage, error)

	// GetSurchargeType retrieves a surcharge type by its unique identifier.
	GetSurchargeType(ctx context.Context, id kernel.UUID) (refdata.SurchargeType, error)

	// GetBranch retrieves a branch by its unique identifier.
	GetBranch(ctx context.Context, id kernel.UUID) (refdata.Branch, error)
}
