package refdata

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrInsurancePackageIsNotConstructed is returned when an InsurancePackage
// was not created through the NewInsurancePackage constructor.
var ErrInsurancePackageIsNotConstructed = errors.New(
	"InsurancePackage must be created via NewInsurancePackage constructor",
)

var maxInsuranceRate = decimal.NewFromInt(1)

// InsurancePackage defines an insurance product: a rate expressed as a
// fraction of the declared value, and the date the package became available.
// The insurance fee of an order is rate × declaredValue.
type InsurancePackage struct {
	id         kernel.UUID
	name       string
	rate       decimal.Decimal
	activeDate time.Time

	isConstructed bool
}

// NewInsurancePackage creates a validated InsurancePackage.
// The rate is a fraction of declared value and must lie in (0, 1].
func NewInsurancePackage(
	id kernel.UUID,
	name string,
	rate decimal.Decimal,
	activeDate time.Time,
) (InsurancePackage, error) {
	if err := id.Validate(); err != nil {
		return InsurancePackage{}, err
	}
	if name == "" {
		return InsurancePackage{}, errs.NewValueIsRequiredError("name")
	}
	if !rate.IsPositive() || rate.GreaterThan(maxInsuranceRate) {
		return InsurancePackage{}, errs.NewValueIsOutOfRangeError("rate", rate.String(), "0", "1")
	}
	if activeDate.IsZero() {
		return InsurancePackage{}, errs.NewValueIsRequiredError("activeDate")
	}

	return InsurancePackage{
		id:            id,
		name:          name,
		rate:          rate,
		activeDate:    activeDate,
		isConstructed: true,
	}, nil
}

// Validate ensures the InsurancePackage was created via NewInsurancePackage.
func (p InsurancePackage) Validate() error {
	if !p.isConstructed {
		return ErrInsurancePackageIsNotConstructed
	}
	return nil
}

// ID returns the package's unique identifier.
func (p InsurancePackage) ID() kernel.UUID {
	return p.id
}

// Name returns the package name.
func (p InsurancePackage) Name() string {
	return p.name
}

// Rate returns the premium rate as a fraction of declared value.
func (p InsurancePackage) Rate() decimal.Decimal {
	return p.rate
}

// ActiveDate returns the date the package became available.
func (p InsurancePackage) ActiveDate() time.Time {
	return p.activeDate
}

// FeeFor computes the insurance fee for a declared value: rate × declaredValue.
func (p InsurancePackage) FeeFor(declaredValue decimal.Decimal) decimal.Decimal {
	return p.rate.Mul(declaredValue)
}
