package refdata

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

// ErrSurchargeTypeIsNotConstructed is returned when a SurchargeType was not
// created through the NewSurchargeType constructor.
var ErrSurchargeTypeIsNotConstructed = errors.New(
	"SurchargeType must be created via NewSurchargeType constructor",
)

// SurchargeType names a category of flat surcharge (fuel, remote area,
// dangerous goods, ...). The amount itself is captured per order.
type SurchargeType struct {
	id   kernel.UUID
	name string

	isConstructed bool
}

// NewSurchargeType creates a validated SurchargeType.
func NewSurchargeType(id kernel.UUID, name string) (SurchargeType, error) {
	if err := id.Validate(); err != nil {
		return SurchargeType{}, err
	}
	if name == "" {
		return SurchargeType{}, errs.NewValueIsRequiredError("name")
	}

	return SurchargeType{
		id:            id,
		name:          name,
		isConstructed: true,
	}, nil
}

// Validate ensures the SurchargeType was created via NewSurchargeType.
func (s SurchargeType) Validate() error {
	if !s.isConstructed {
		return ErrSurchargeTypeIsNotConstructed
	}
	return nil
}

// ID returns the surcharge type's unique identifier.
func (s SurchargeType) ID() kernel.UUID {
	return s.id
}

// Name returns the surcharge category name.
func (s SurchargeType) Name() string {
	return s.name
}
