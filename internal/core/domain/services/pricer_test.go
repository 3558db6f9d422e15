package services_test

import (
	"testing"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/refdata"
	"shipping/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pricingDate = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

type pricerFixture struct {
	order        *order.ShippingOrder
	routeID      kernel.UUID
	serviceID    kernel.UUID
	cards        []refdata.RateCard
	insurancePkg *refdata.InsurancePackage
}

// newPricerFixture builds an order with one goods line (40×30×20 cm, 1 kg,
// quantity 2) against a 50 000/kg rate card. The chargeable weight per unit
// is 5.0 kg, so the expected unit price is 250 000 and the shipping fee
// 500 000.
func newPricerFixture(t *testing.T, discount int64) *pricerFixture {
	t.Helper()

	routeID := kernel.NewUUID()
	serviceID := kernel.NewUUID()

	o, err := order.NewShippingOrder(
		kernel.NewUUID(), kernel.NewUUID(), routeID,
		kernel.NewUUID(), serviceID,
		decimal.NewFromInt(5000),
		decimal.NewFromInt(discount),
	)
	require.NoError(t, err)

	require.NoError(t, o.AddGoodsItem(fixtureGoodsItem(t)))

	return &pricerFixture{
		order:     o,
		routeID:   routeID,
		serviceID: serviceID,
		cards: []refdata.RateCard{
			card(t, routeID, serviceID, 50000, date(2024, time.January, 1), nil),
		},
	}
}

func fixtureGoodsItem(t *testing.T) order.GoodsItem {
	t.Helper()
	item, err := order.NewGoodsItem(
		kernel.NewUUID(), kernel.NewUUID(),
		mustDims(t, 40, 30, 20),
		decimal.NewFromInt(1), 2,
	)
	require.NoError(t, err)
	return item
}

func (f *pricerFixture) withInsurance(t *testing.T) *pricerFixture {
	t.Helper()

	pkg, err := refdata.NewInsurancePackage(
		kernel.NewUUID(), "standard",
		decimal.NewFromFloat(0.02), date(2024, time.January, 1),
	)
	require.NoError(t, err)
	f.insurancePkg = &pkg

	detail, err := order.NewInsuranceDetail(pkg.ID(), decimal.NewFromInt(10_000_000))
	require.NoError(t, err)
	require.NoError(t, f.order.SetInsurance(detail))
	return f
}

func TestOrderPricerPrice(t *testing.T) {
	pricer := services.NewOrderPricer(services.PricingPolicy{})

	t.Run("should aggregate all fee components", func(t *testing.T) {
		f := newPricerFixture(t, 0).withInsurance(t)

		s, err := order.NewSurcharge(kernel.NewUUID(), decimal.NewFromInt(50000))
		require.NoError(t, err)
		require.NoError(t, f.order.AddSurcharge(s))

		err = pricer.Price(f.order, f.cards, f.insurancePkg, pricingDate)

		require.NoError(t, err)
		require.True(t, f.order.IsPriced())

		totals, ok := f.order.Totals()
		require.True(t, ok)
		assert.True(t, totals.ShippingFee().Equal(decimal.NewFromInt(500000)), "shipping fee %s", totals.ShippingFee())
		assert.True(t, totals.InsuranceFee().Equal(decimal.NewFromInt(200000)), "insurance fee %s", totals.InsuranceFee())
		assert.True(t, totals.SurchargeTotal().Equal(decimal.NewFromInt(50000)))
		assert.True(t, totals.GrandTotal().Equal(decimal.NewFromInt(750000)), "grand total %s", totals.GrandTotal())
	})

	t.Run("should price each line from chargeable weight and base rate", func(t *testing.T) {
		f := newPricerFixture(t, 0)

		err := pricer.Price(f.order, f.cards, nil, pricingDate)

		require.NoError(t, err)
		goods := f.order.Goods()
		require.Len(t, goods, 1)
		assert.True(t, goods[0].UnitPrice().Equal(decimal.NewFromInt(250000)), "unit price %s", goods[0].UnitPrice())
	})

	t.Run("should resolve the rate once and be idempotent", func(t *testing.T) {
		f := newPricerFixture(t, 0)

		require.NoError(t, pricer.Price(f.order, f.cards, nil, pricingDate))
		first, ok := f.order.Totals()
		require.True(t, ok)

		// Second pass on a clean order must be a no-op even with an
		// empty rate snapshot.
		require.NoError(t, pricer.Price(f.order, nil, nil, pricingDate))
		second, ok := f.order.Totals()
		require.True(t, ok)

		assert.True(t, first.IsEqual(second))
	})

	t.Run("should reuse line prices on an insurance-only change", func(t *testing.T) {
		f := newPricerFixture(t, 0).withInsurance(t)
		require.NoError(t, pricer.Price(f.order, f.cards, f.insurancePkg, pricingDate))

		detail, err := order.NewInsuranceDetail(f.insurancePkg.ID(), decimal.NewFromInt(20_000_000))
		require.NoError(t, err)
		require.NoError(t, f.order.SetInsurance(detail))

		// No rate cards supplied: line pricing is clean, so no rate
		// resolution may happen.
		err = pricer.Price(f.order, nil, f.insurancePkg, pricingDate)

		require.NoError(t, err)
		totals, ok := f.order.Totals()
		require.True(t, ok)
		assert.True(t, totals.ShippingFee().Equal(decimal.NewFromInt(500000)))
		assert.True(t, totals.InsuranceFee().Equal(decimal.NewFromInt(400000)), "insurance fee %s", totals.InsuranceFee())
	})

	t.Run("should fail when no rate card applies", func(t *testing.T) {
		f := newPricerFixture(t, 0)

		err := pricer.Price(f.order, nil, nil, pricingDate)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrRateNotFound)
		assert.False(t, f.order.IsPriced())
	})

	t.Run("should fail when the insurance package is missing", func(t *testing.T) {
		f := newPricerFixture(t, 0).withInsurance(t)

		err := pricer.Price(f.order, f.cards, nil, pricingDate)

		require.Error(t, err)
		assert.False(t, f.order.IsPriced())
	})

	t.Run("should fail when the insurance package does not match the order", func(t *testing.T) {
		f := newPricerFixture(t, 0).withInsurance(t)

		otherPkg, err := refdata.NewInsurancePackage(
			kernel.NewUUID(), "premium",
			decimal.NewFromFloat(0.05), date(2024, time.January, 1),
		)
		require.NoError(t, err)

		err = pricer.Price(f.order, f.cards, &otherPkg, pricingDate)

		require.Error(t, err)
		assert.False(t, f.order.IsPriced())
	})

	t.Run("should allow a negative grand total by default", func(t *testing.T) {
		f := newPricerFixture(t, 600000)

		err := pricer.Price(f.order, f.cards, nil, pricingDate)

		require.NoError(t, err)
		totals, ok := f.order.Totals()
		require.True(t, ok)
		assert.True(t, totals.GrandTotal().Equal(decimal.NewFromInt(-100000)), "grand total %s", totals.GrandTotal())
	})

	t.Run("should reject a negative grand total under strict policy", func(t *testing.T) {
		strict := services.NewOrderPricer(services.PricingPolicy{DisallowNegativeGrandTotal: true})
		f := newPricerFixture(t, 600000)

		err := strict.Price(f.order, f.cards, nil, pricingDate)

		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrNegativeGrandTotal)
		assert.False(t, f.order.IsPriced())
	})
}
