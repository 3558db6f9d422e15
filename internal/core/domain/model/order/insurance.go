package order

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrInsuranceDetailIsNotConstructed is returned when an InsuranceDetail was
// not created through the NewInsuranceDetail constructor.
var ErrInsuranceDetailIsNotConstructed = errors.New(
	"InsuranceDetail must be created via NewInsuranceDetail constructor",
)

// InsuranceDetail captures the insurance selection of an order: the chosen
// package and the declared value of the goods. The fee is derived
// (package rate × declared value) and written back by the pricing service
// through the aggregate.
type InsuranceDetail struct {
	insurancePackageID kernel.UUID
	declaredValue      decimal.Decimal

	fee      decimal.Decimal
	isPriced bool

	isConstructed bool
}

// NewInsuranceDetail creates a validated InsuranceDetail.
// The declared value must be strictly positive.
func NewInsuranceDetail(insurancePackageID kernel.UUID, declaredValue decimal.Decimal) (InsuranceDetail, error) {
	if err := insurancePackageID.Validate(); err != nil {
		return InsuranceDetail{}, err
	}

	if !declaredValue.IsPositive() {
		return InsuranceDetail{}, errs.NewValueIsInvalidErrorWithCause(
			"declaredValue",
			fmt.Errorf("%s is not greater than 0", declaredValue),
		)
	}

	return InsuranceDetail{
		insurancePackageID: insurancePackageID,
		declaredValue:      declaredValue,
		isConstructed:      true,
	}, nil
}

// RestoreInsuranceDetail reconstructs an InsuranceDetail from persistence,
// including its previously computed fee.
func RestoreInsuranceDetail(
	insurancePackageID kernel.UUID,
	declaredValue decimal.Decimal,
	fee decimal.Decimal,
	isPriced bool,
) (InsuranceDetail, error) {
	detail, err := NewInsuranceDetail(insurancePackageID, declaredValue)
	if err != nil {
		return InsuranceDetail{}, err
	}

	if isPriced {
		if fee.IsNegative() {
			return InsuranceDetail{}, errs.NewValueIsInvalidErrorWithCause(
				"fee",
				fmt.Errorf("%s is negative", fee),
			)
		}
		detail.fee = fee
		detail.isPriced = true
	}

	return detail, nil
}

// Validate ensures the InsuranceDetail was created via NewInsuranceDetail.
func (i InsuranceDetail) Validate() error {
	if !i.isConstructed {
		return ErrInsuranceDetailIsNotConstructed
	}
	return nil
}

// InsurancePackageID returns the id of the selected insurance package.
func (i InsuranceDetail) InsurancePackageID() kernel.UUID {
	return i.insurancePackageID
}

// DeclaredValue returns the declared value of the insured goods.
func (i InsuranceDetail) DeclaredValue() decimal.Decimal {
	return i.declaredValue
}

// Fee returns the derived insurance fee.
// Meaningful only when IsPriced reports true.
func (i InsuranceDetail) Fee() decimal.Decimal {
	return i.fee
}

// IsPriced reports whether the fee has been computed.
func (i InsuranceDetail) IsPriced() bool {
	return i.isPriced
}
