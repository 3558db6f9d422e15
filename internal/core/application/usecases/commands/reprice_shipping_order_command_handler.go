package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/refdata"
	"shipping/internal/core/domain/services"
)

// RepriceShippingOrderCommandHandler handles explicit repricing of an order.
//
// What gets recomputed follows the order's stale scopes: a goods or route
// change reprices the lines against a freshly resolved rate card, an
// insurance change re-derives only the fee, and in both cases the totals are
// re-aggregated. Edits that never marked a scope never reprice anything —
// the handler loads reference data only for the sections that are stale.
type RepriceShippingOrderCommandHandler struct {
	uowFactory UoWFactory
	pricer     services.OrderPricer
}

// NewRepriceShippingOrderCommandHandler creates a handler for repricing operations.
func NewRepriceShippingOrderCommandHandler(
	uowFactory UoWFactory,
	pricer services.OrderPricer,
) RepriceShippingOrderCommandHandler {
	return RepriceShippingOrderCommandHandler{
		uowFactory: uowFactory,
		pricer:     pricer,
	}
}

// Handle processes the repricing command. The pricing pass and the save run
// in one transaction; the optimistic version check on save rejects the
// reprice when a concurrent writer got there first.
func (h *RepriceShippingOrderCommandHandler) Handle(ctx context.Context, cmd RepriceShippingOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	// Nothing stale: the deferred rollback releases the transaction.
	if aggregate.StaleScopes().IsEmpty() && aggregate.IsPriced() {
		return nil
	}

	var cards []refdata.RateCard
	if aggregate.StaleScopes().Has(order.ScopeLinePricing) {
		cards, err = uow.ReferenceRepository().GetRateCards(ctx, aggregate.RouteID(), aggregate.ServiceID())
		if err != nil {
			return err
		}
	}

	var insurancePkg *refdata.InsurancePackage
	if detail := aggregate.Insurance(); detail != nil && aggregate.StaleScopes().Has(order.ScopeInsurance) {
		pkg, pkgErr := uow.ReferenceRepository().GetInsurancePackage(ctx, detail.InsurancePackageID())
		if pkgErr != nil {
			return pkgErr
		}
		insurancePkg = &pkg
	}

	if err = h.pricer.Price(aggregate, cards, insurancePkg, time.Now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
