package services

import (
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/refdata"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrNegativeGrandTotal is returned when the branch discount exceeds the sum
// of the order's fee components and the pricing policy forbids a negative
// grand total.
var ErrNegativeGrandTotal = errors.New("grand total is negative")

// PricingPolicy carries the configurable knobs of the pricing pass.
type PricingPolicy struct {
	// DisallowNegativeGrandTotal rejects orders whose discount exceeds
	// shippingFee + insuranceFee + surchargeTotal. Off by default: a
	// negative grand total is accepted and surfaces as a credit.
	DisallowNegativeGrandTotal bool
}

// OrderPricer is the domain service that prices a shipping order end to end:
// it resolves the governing rate card, computes a unit price for every goods
// line, derives the insurance fee, and installs the result on the aggregate
// through ApplyPricing.
//
// The pass is scope-driven. The aggregate records which derived sections a
// mutation invalidated (see order.RecalcScope); the pricer recomputes exactly
// those sections and reuses the already-applied values for the rest. An
// insurance-only change therefore never touches the rate card, and pricing a
// clean order is a no-op: pricing is idempotent — repricing an unchanged
// order yields identical totals.
//
// Business rules:
//   - The rate is resolved once per order and reused across all lines
//   - A goods line's unit price is its chargeable weight × the base rate
//   - The insurance fee is the package rate × the declared value
//   - The grand total is derived by the aggregate, never computed here
type OrderPricer struct {
	resolver RateResolver
	policy   PricingPolicy
}

// NewOrderPricer creates an OrderPricer with the given policy.
func NewOrderPricer(policy PricingPolicy) OrderPricer {
	return OrderPricer{
		resolver: NewRateResolver(),
		policy:   policy,
	}
}

// Price recomputes the order's stale pricing sections as of the given date
// and applies the result to the aggregate.
//
// The caller supplies the reference-data snapshot: the candidate rate cards
// for the order's route/service pair, and the insurance package referenced
// by the order (nil when the order carries no insurance).
//
// Returns:
//   - nil when the order is already fully priced or was priced successfully
//   - an error wrapping ErrRateNotFound when no rate card applies
//   - an error wrapping ErrNegativeGrandTotal when the policy rejects the total
//   - a validation error when reference data does not match the order
func (p OrderPricer) Price(
	o *order.ShippingOrder,
	cards []refdata.RateCard,
	insurancePkg *refdata.InsurancePackage,
	at time.Time,
) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if o.StaleScopes().IsEmpty() && o.IsPriced() {
		return nil
	}

	linePrices, err := p.priceLines(o, cards, at)
	if err != nil {
		return err
	}

	insuranceFee, err := p.insuranceFee(o, insurancePkg)
	if err != nil {
		return err
	}

	if p.policy.DisallowNegativeGrandTotal {
		if err = p.checkGrandTotal(o, linePrices, insuranceFee); err != nil {
			return err
		}
	}

	return o.ApplyPricing(order.PricingResult{
		LinePrices:   linePrices,
		InsuranceFee: insuranceFee,
	})
}

// priceLines computes a unit price for every goods line. When line pricing
// is not stale the already-applied unit prices are carried over unchanged,
// so an insurance-only pass never resolves a rate.
func (p OrderPricer) priceLines(
	o *order.ShippingOrder,
	cards []refdata.RateCard,
	at time.Time,
) ([]order.LinePrice, error) {
	goods := o.Goods()
	linePrices := make([]order.LinePrice, 0, len(goods))

	if !o.StaleScopes().Has(order.ScopeLinePricing) {
		for _, item := range goods {
			if !item.IsPriced() {
				return nil, errs.NewValueIsInvalidErrorWithCause(
					"goods",
					fmt.Errorf("goods item %s has no applied price to reuse", item.ID()),
				)
			}
			linePrices = append(linePrices, order.LinePrice{
				GoodsItemID: item.ID(),
				UnitPrice:   item.UnitPrice(),
			})
		}
		return linePrices, nil
	}

	card, err := p.resolver.Resolve(cards, o.RouteID(), o.ServiceID(), at)
	if err != nil {
		return nil, err
	}

	for _, item := range goods {
		unitPrice, err := p.priceLine(item, card, o.VolumetricDivisor())
		if err != nil {
			return nil, err
		}
		linePrices = append(linePrices, order.LinePrice{
			GoodsItemID: item.ID(),
			UnitPrice:   unitPrice,
		})
	}
	return linePrices, nil
}

// priceLine computes the unit price of one goods line: the chargeable weight
// of a single unit multiplied by the resolved base rate.
func (p OrderPricer) priceLine(item order.GoodsItem, card refdata.RateCard, divisor decimal.Decimal) (decimal.Decimal, error) {
	weight, err := ChargeableWeight(item.Dimensions(), item.WeightKg(), divisor)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return weight.Mul(card.BaseRatePerKg()), nil
}

// insuranceFee derives the fee for the order's insurance selection, reusing
// the applied fee when the insurance section is not stale.
func (p OrderPricer) insuranceFee(
	o *order.ShippingOrder,
	insurancePkg *refdata.InsurancePackage,
) (decimal.Decimal, error) {
	detail := o.Insurance()
	if detail == nil {
		return decimal.Zero, nil
	}

	if !o.StaleScopes().Has(order.ScopeInsurance) && detail.IsPriced() {
		return detail.Fee(), nil
	}

	if insurancePkg == nil {
		return decimal.Decimal{}, errs.NewObjectNotFoundError(
			"insurancePackage", detail.InsurancePackageID().String(),
		)
	}
	if !insurancePkg.ID().IsEqual(detail.InsurancePackageID()) {
		return decimal.Decimal{}, errs.NewValueIsInvalidErrorWithCause(
			"insurancePackage",
			fmt.Errorf("package %s does not match order selection %s",
				insurancePkg.ID(), detail.InsurancePackageID()),
		)
	}

	return insurancePkg.FeeFor(detail.DeclaredValue()), nil
}

// checkGrandTotal rejects the pass when the discount exceeds the sum of the
// fee components.
func (p OrderPricer) checkGrandTotal(
	o *order.ShippingOrder,
	linePrices []order.LinePrice,
	insuranceFee decimal.Decimal,
) error {
	shippingFee := decimal.Zero
	for _, item := range o.Goods() {
		for _, lp := range linePrices {
			if lp.GoodsItemID.IsEqual(item.ID()) {
				shippingFee = shippingFee.Add(lp.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity()))))
			}
		}
	}

	surchargeTotal := decimal.Zero
	for _, s := range o.Surcharges() {
		surchargeTotal = surchargeTotal.Add(s.Amount())
	}

	grandTotal := shippingFee.Add(insuranceFee).Add(surchargeTotal).Sub(o.BranchDiscount())
	if grandTotal.IsNegative() {
		return fmt.Errorf("%w: discount %s exceeds fee components %s",
			ErrNegativeGrandTotal, o.BranchDiscount(), grandTotal.Add(o.BranchDiscount()))
	}
	return nil
}
