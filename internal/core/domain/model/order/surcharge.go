package order

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrSurchargeIsNotConstructed is returned when a Surcharge was not created
// through the NewSurcharge constructor.
var ErrSurchargeIsNotConstructed = errors.New("Surcharge must be created via NewSurcharge constructor")

// Surcharge is a flat extra amount added to an order, categorized by a
// surcharge type (fuel, remote area, ...). Zero or more surcharges may exist
// per order; their amounts are summed into the grand total.
type Surcharge struct {
	surchargeTypeID kernel.UUID
	amount          decimal.Decimal

	isConstructed bool
}

// NewSurcharge creates a validated Surcharge. The amount must be strictly
// positive: a non-positive surcharge is a data-entry error, not a discount.
func NewSurcharge(surchargeTypeID kernel.UUID, amount decimal.Decimal) (Surcharge, error) {
	if err := surchargeTypeID.Validate(); err != nil {
		return Surcharge{}, err
	}

	if !amount.IsPositive() {
		return Surcharge{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is not greater than 0", amount),
		)
	}

	return Surcharge{
		surchargeTypeID: surchargeTypeID,
		amount:          amount,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Surcharge was created via NewSurcharge.
func (s Surcharge) Validate() error {
	if !s.isConstructed {
		return ErrSurchargeIsNotConstructed
	}
	return nil
}

// SurchargeTypeID returns the id of the surcharge category.
func (s Surcharge) SurchargeTypeID() kernel.UUID {
	return s.surchargeTypeID
}

// Amount returns the flat surcharge amount.
func (s Surcharge) Amount() decimal.Decimal {
	return s.amount
}
