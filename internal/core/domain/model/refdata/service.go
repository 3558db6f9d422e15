package refdata

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrShippingServiceIsNotConstructed is returned when a ShippingService was
// not created through the NewShippingService constructor.
var ErrShippingServiceIsNotConstructed = errors.New(
	"ShippingService must be created via NewShippingService constructor",
)

// ShippingService is a service level (Standard, Express, ...) offered on a
// route. The multiplier and transit time are descriptive reference data; the
// actual price-per-kilogram for a (route, service) pair comes from the rate
// card table, which is already maintained per service level.
type ShippingService struct {
	id              kernel.UUID
	name            string
	multiplier      decimal.Decimal
	transitTimeDays int

	isConstructed bool
}

// NewShippingService creates a validated ShippingService.
// The name must be non-empty, the multiplier strictly positive and the
// transit time at least one day.
func NewShippingService(
	id kernel.UUID,
	name string,
	multiplier decimal.Decimal,
	transitTimeDays int,
) (ShippingService, error) {
	if err := id.Validate(); err != nil {
		return ShippingService{}, err
	}
	if name == "" {
		return ShippingService{}, errs.NewValueIsRequiredError("name")
	}
	if !multiplier.IsPositive() {
		return ShippingService{}, errs.NewValueIsInvalidErrorWithCause(
			"multiplier",
			fmt.Errorf("%s is not greater than 0", multiplier),
		)
	}
	if transitTimeDays <= 0 {
		return ShippingService{}, errs.NewValueIsInvalidErrorWithCause(
			"transitTimeDays",
			fmt.Errorf("%d is not greater than 0", transitTimeDays),
		)
	}

	return ShippingService{
		id:              id,
		name:            name,
		multiplier:      multiplier,
		transitTimeDays: transitTimeDays,
		isConstructed:   true,
	}, nil
}

// Validate ensures the ShippingService was created via NewShippingService.
func (s ShippingService) Validate() error {
	if !s.isConstructed {
		return ErrShippingServiceIsNotConstructed
	}
	return nil
}

// ID returns the service's unique identifier.
func (s ShippingService) ID() kernel.UUID {
	return s.id
}

// Name returns the service level name.
func (s ShippingService) Name() string {
	return s.name
}

// Multiplier returns the service level multiplier.
func (s ShippingService) Multiplier() decimal.Decimal {
	return s.multiplier
}

// TransitTimeDays returns the advertised transit time in days.
func (s ShippingService) TransitTimeDays() int {
	return s.transitTimeDays
}
