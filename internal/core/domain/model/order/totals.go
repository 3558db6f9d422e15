package order

import (
	"errors"
	"fmt"

	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrTotalsAreNotConstructed is returned when a Totals value was not created
// through the NewTotals constructor.
var ErrTotalsAreNotConstructed = errors.New("Totals must be created via NewTotals constructor")

// Totals is the read-only money projection of a priced order:
//
//	grandTotal = shippingFee + insuranceFee + surchargeTotal − discount
//
// Only the pricing flow produces Totals; nothing else may write them. Every
// component except the discount subtraction is guaranteed non-negative. The
// grand total itself may go negative when the branch discount exceeds the
// other components — whether that is acceptable is a business policy decided
// by the pricing service, not here.
type Totals struct {
	shippingFee    decimal.Decimal
	insuranceFee   decimal.Decimal
	surchargeTotal decimal.Decimal
	discount       decimal.Decimal
	grandTotal     decimal.Decimal

	isConstructed bool
}

// NewTotals creates a Totals projection from its components and derives the
// grand total. All components must be non-negative.
func NewTotals(shippingFee, insuranceFee, surchargeTotal, discount decimal.Decimal) (Totals, error) {
	components := []struct {
		name  string
		value decimal.Decimal
	}{
		{"shippingFee", shippingFee},
		{"insuranceFee", insuranceFee},
		{"surchargeTotal", surchargeTotal},
		{"discount", discount},
	}
	for _, c := range components {
		if c.value.IsNegative() {
			return Totals{}, errs.NewValueIsInvalidErrorWithCause(
				c.name,
				fmt.Errorf("%s is negative", c.value),
			)
		}
	}

	return Totals{
		shippingFee:    shippingFee,
		insuranceFee:   insuranceFee,
		surchargeTotal: surchargeTotal,
		discount:       discount,
		grandTotal:     shippingFee.Add(insuranceFee).Add(surchargeTotal).Sub(discount),
		isConstructed:  true,
	}, nil
}

// Validate ensures the Totals value was created via NewTotals.
func (t Totals) Validate() error {
	if !t.isConstructed {
		return ErrTotalsAreNotConstructed
	}
	return nil
}

// ShippingFee returns the sum of line totals over all goods lines.
func (t Totals) ShippingFee() decimal.Decimal {
	return t.shippingFee
}

// InsuranceFee returns the derived insurance fee (zero without insurance).
func (t Totals) InsuranceFee() decimal.Decimal {
	return t.insuranceFee
}

// SurchargeTotal returns the sum of all flat surcharges.
func (t Totals) SurchargeTotal() decimal.Decimal {
	return t.surchargeTotal
}

// Discount returns the flat branch discount subtracted from the total.
func (t Totals) Discount() decimal.Decimal {
	return t.discount
}

// GrandTotal returns shippingFee + insuranceFee + surchargeTotal − discount.
func (t Totals) GrandTotal() decimal.Decimal {
	return t.grandTotal
}

// IsEqual compares two Totals component by component.
func (t Totals) IsEqual(other Totals) bool {
	return t.shippingFee.Equal(other.shippingFee) &&
		t.insuranceFee.Equal(other.insuranceFee) &&
		t.surchargeTotal.Equal(other.surchargeTotal) &&
		t.discount.Equal(other.discount) &&
		t.grandTotal.Equal(other.grandTotal)
}
