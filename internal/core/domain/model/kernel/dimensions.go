package kernel

import (
	"fmt"

	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrDimensionsAreNotConstructed indicates that a Dimensions value was not
// created via NewDimensions and therefore never passed validation.
var ErrDimensionsAreNotConstructed = errs.NewValueIsRequiredError("Dimensions must be created via NewDimensions")

// cmPerMeter cubed; used to convert a volume in cm³ to m³.
var cubicCentimetersPerCubicMeter = decimal.NewFromInt(1_000_000)

// Dimensions is a value object describing the physical size of a package
// in centimeters. All three sides must be strictly positive; a package with
// a zero or negative side is a data-entry error and is rejected before any
// volumetric calculation can see it.
//
// Dimensions is immutable: every accessor returns a copy and there are no
// setters. Construct it with NewDimensions.
//
// Example:
//
//	dims, err := kernel.NewDimensions(
//	    decimal.NewFromInt(100),
//	    decimal.NewFromInt(50),
//	    decimal.NewFromInt(30),
//	)
//	if err != nil {
//	    // one of the sides was not positive
//	}
//	volume := dims.VolumeCm3() // 150000 cm³
type Dimensions struct {
	lengthCm decimal.Decimal
	widthCm  decimal.Decimal
	heightCm decimal.Decimal

	isConstructed bool
}

// NewDimensions creates a validated Dimensions value object.
// Each side is given in centimeters and must be strictly positive.
// Returns a ValueIsInvalidError naming the offending side otherwise.
func NewDimensions(lengthCm, widthCm, heightCm decimal.Decimal) (Dimensions, error) {
	sides := []struct {
		name  string
		value decimal.Decimal
	}{
		{"lengthCm", lengthCm},
		{"widthCm", widthCm},
		{"heightCm", heightCm},
	}

	for _, side := range sides {
		if !side.value.IsPositive() {
			return Dimensions{}, errs.NewValueIsInvalidErrorWithCause(
				side.name,
				fmt.Errorf("%s is not greater than 0", side.value),
			)
		}
	}

	return Dimensions{
		lengthCm:      lengthCm,
		widthCm:       widthCm,
		heightCm:      heightCm,
		isConstructed: true,
	}, nil
}

// LengthCm returns the package length in centimeters.
func (d Dimensions) LengthCm() decimal.Decimal {
	return d.lengthCm
}

// WidthCm returns the package width in centimeters.
func (d Dimensions) WidthCm() decimal.Decimal {
	return d.widthCm
}

// HeightCm returns the package height in centimeters.
func (d Dimensions) HeightCm() decimal.Decimal {
	return d.heightCm
}

// VolumeCm3 returns length × width × height in cubic centimeters.
func (d Dimensions) VolumeCm3() decimal.Decimal {
	return d.lengthCm.Mul(d.widthCm).Mul(d.heightCm)
}

// VolumeM3 returns the package volume in cubic meters.
func (d Dimensions) VolumeM3() decimal.Decimal {
	return d.VolumeCm3().Div(cubicCentimetersPerCubicMeter)
}

// IsEqual compares two Dimensions side by side using exact decimal equality.
func (d Dimensions) IsEqual(other Dimensions) bool {
	return d.lengthCm.Equal(other.lengthCm) &&
		d.widthCm.Equal(other.widthCm) &&
		d.heightCm.Equal(other.heightCm)
}

// Validate checks that the Dimensions value was created via NewDimensions.
// Returns ErrDimensionsAreNotConstructed for a zero value.
func (d Dimensions) Validate() error {
	if !d.isConstructed {
		return ErrDimensionsAreNotConstructed
	}
	return nil
}
