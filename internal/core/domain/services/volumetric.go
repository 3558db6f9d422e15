package services

import (
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// halfKgStep is the billing granularity of dimensional weight: carriers
// charge in 0.5 kg increments, always rounding up.
var halfKgStep = decimal.NewFromInt(2)

// ChargeableWeight computes the billable weight of a single package.
//
// The dimensional (DIM) weight is length×width×height in cm divided by the
// carrier's volumetric divisor, rounded UP to the nearest 0.5 kg. The
// chargeable weight is whichever is greater, the dimensional weight or the
// actual weight, so a light bulky package and a dense small one are both
// billed for the capacity they consume.
//
// All inputs must be positive; invalid geometry or a non-positive divisor is
// rejected before any arithmetic runs.
func ChargeableWeight(dims kernel.Dimensions, actualWeightKg, divisor decimal.Decimal) (decimal.Decimal, error) {
	if err := dims.Validate(); err != nil {
		return decimal.Decimal{}, err
	}
	if !actualWeightKg.IsPositive() {
		return decimal.Decimal{}, errs.NewValueIsInvalidErrorWithCause(
			"actualWeightKg",
			fmt.Errorf("%s is not greater than 0", actualWeightKg),
		)
	}
	if !divisor.IsPositive() {
		return decimal.Decimal{}, errs.NewValueIsInvalidErrorWithCause(
			"divisor",
			fmt.Errorf("%s is not greater than 0", divisor),
		)
	}

	dimWeight := roundUpToHalfKg(dims.VolumeCm3().Div(divisor))
	return decimal.Max(dimWeight, actualWeightKg), nil
}

// roundUpToHalfKg rounds up to the next multiple of 0.5.
// An exact multiple is returned unchanged.
func roundUpToHalfKg(weight decimal.Decimal) decimal.Decimal {
	return weight.Mul(halfKgStep).Ceil().Div(halfKgStep)
}
