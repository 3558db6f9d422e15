package refdata

import (
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrRateCardIsNotConstructed is returned when a RateCard instance was not
// created through the NewRateCard constructor.
var ErrRateCardIsNotConstructed = errors.New("RateCard must be created via NewRateCard constructor")

// RateCard ties a (route, service) pair to a base rate per kilogram, bounded
// by a validity window. Multiple cards may exist for the same pair over time;
// at most one should be active for any reference date. When the data violates
// that invariant the resolver picks the card with the latest effective date
// (most recent supersedes) and the audit job reports the overlap.
//
// The validity window is half-open: a card is active at t when
// effectiveDate <= t and (deletionDate is absent or t < deletionDate).
type RateCard struct {
	id            kernel.UUID
	routeID       kernel.UUID
	serviceID     kernel.UUID
	baseRatePerKg decimal.Decimal
	effectiveDate time.Time
	deletionDate  *time.Time

	isConstructed bool
}

// NewRateCard creates a validated RateCard.
// The base rate must be strictly positive, the effective date must be set,
// and the deletion date, when present, must lie after the effective date.
func NewRateCard(
	id kernel.UUID,
	routeID kernel.UUID,
	serviceID kernel.UUID,
	baseRatePerKg decimal.Decimal,
	effectiveDate time.Time,
	deletionDate *time.Time,
) (RateCard, error) {
	if err := errors.Join(
		id.Validate(),
		routeID.Validate(),
		serviceID.Validate(),
	); err != nil {
		return RateCard{}, err
	}

	if !baseRatePerKg.IsPositive() {
		return RateCard{}, errs.NewValueIsInvalidErrorWithCause(
			"baseRatePerKg",
			fmt.Errorf("%s is not greater than 0", baseRatePerKg),
		)
	}

	if effectiveDate.IsZero() {
		return RateCard{}, errs.NewValueIsRequiredError("effectiveDate")
	}

	if deletionDate != nil && !deletionDate.After(effectiveDate) {
		return RateCard{}, errs.NewValueIsInvalidErrorWithCause(
			"deletionDate",
			fmt.Errorf("%s is not after effective date %s", deletionDate, effectiveDate),
		)
	}

	return RateCard{
		id:            id,
		routeID:       routeID,
		serviceID:     serviceID,
		baseRatePerKg: baseRatePerKg,
		effectiveDate: effectiveDate,
		deletionDate:  deletionDate,
		isConstructed: true,
	}, nil
}

// Validate ensures the RateCard was created via NewRateCard.
func (c RateCard) Validate() error {
	if !c.isConstructed {
		return ErrRateCardIsNotConstructed
	}
	return nil
}

// ID returns the rate card's unique identifier.
func (c RateCard) ID() kernel.UUID {
	return c.id
}

// RouteID returns the id of the route the card prices.
func (c RateCard) RouteID() kernel.UUID {
	return c.routeID
}

// ServiceID returns the id of the service level the card prices.
func (c RateCard) ServiceID() kernel.UUID {
	return c.serviceID
}

// BaseRatePerKg returns the price per kilogram of chargeable weight.
func (c RateCard) BaseRatePerKg() decimal.Decimal {
	return c.baseRatePerKg
}

// EffectiveDate returns the start of the card's validity window (inclusive).
func (c RateCard) EffectiveDate() time.Time {
	return c.effectiveDate
}

// DeletionDate returns the end of the card's validity window (exclusive),
// or nil for an open-ended card.
func (c RateCard) DeletionDate() *time.Time {
	return c.deletionDate
}

// AppliesTo reports whether the card prices the given (route, service) pair.
func (c RateCard) AppliesTo(routeID, serviceID kernel.UUID) bool {
	return c.routeID.IsEqual(routeID) && c.serviceID.IsEqual(serviceID)
}

// ActiveAt reports whether the reference date falls inside the card's
// validity window.
func (c RateCard) ActiveAt(referenceDate time.Time) bool {
	if referenceDate.Before(c.effectiveDate) {
		return false
	}
	if c.deletionDate != nil && !referenceDate.Before(*c.deletionDate) {
		return false
	}
	return true
}

// Overlaps reports whether two cards for the same (route, service) pair have
// intersecting validity windows. Cards for different pairs never overlap.
func (c RateCard) Overlaps(other RateCard) bool {
	if !c.AppliesTo(other.routeID, other.serviceID) {
		return false
	}

	// Half-open windows [effective, deletion) intersect when each starts
	// before the other ends.
	if c.deletionDate != nil && !other.effectiveDate.Before(*c.deletionDate) {
		return false
	}
	if other.deletionDate != nil && !c.effectiveDate.Before(*other.deletionDate) {
		return false
	}
	return true
}
