package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/refdata"
	"shipping/internal/core/domain/services"
)

// CreateShippingOrderCommandHandler handles the business logic for order
// creation. Resolves the referenced reference data, snapshots the branch
// discount, builds the aggregate, runs the initial pricing pass and persists
// the order in Draft status — all inside one transaction.
type CreateShippingOrderCommandHandler struct {
	uowFactory UoWFactory
	pricer     services.OrderPricer
}

// NewCreateShippingOrderCommandHandler creates a handler for order creation.
// Requires a UoWFactory for transactional persistence and the pricer that
// runs the initial pricing pass.
func NewCreateShippingOrderCommandHandler(
	uowFactory UoWFactory,
	pricer services.OrderPricer,
) CreateShippingOrderCommandHandler {
	return CreateShippingOrderCommandHandler{
		uowFactory: uowFactory,
		pricer:     pricer,
	}
}

// Handle processes the order creation command.
// Unknown reference ids surface as errs.ObjectNotFoundError; a route/service
// pair with no applicable rate card fails with services.ErrRateNotFound and
// nothing is persisted.
func (h *CreateShippingOrderCommandHandler) Handle(ctx context.Context, cmd CreateShippingOrderCommand) error {
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

	refRepo := uow.ReferenceRepository()

	if _, err := refRepo.GetRoute(ctx, cmd.RouteID()); err != nil {
		return err
	}
	if _, err := refRepo.GetService(ctx, cmd.ServiceID()); err != nil {
		return err
	}
	branch, err := refRepo.GetBranch(ctx, cmd.BranchID())
	if err != nil {
		return err
	}

	aggregate, err := order.NewShippingOrder(
		cmd.OrderID(), cmd.BranchID(), cmd.RouteID(), cmd.CarrierID(), cmd.ServiceID(),
		cmd.VolumetricDivisor(), branch.Discount(),
	)
	if err != nil {
		return err
	}

	if err = h.attachGoods(aggregate, cmd.Goods()); err != nil {
		return err
	}
	if err = h.attachSurcharges(ctx, uow, aggregate, cmd.Surcharges()); err != nil {
		return err
	}

	insurancePkg, err := h.attachInsurance(ctx, uow, aggregate, cmd.Insurance())
	if err != nil {
		return err
	}

	cards, err := refRepo.GetRateCards(ctx, cmd.RouteID(), cmd.ServiceID())
	if err != nil {
		return err
	}
	if err = h.pricer.Price(aggregate, cards, insurancePkg, time.Now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *CreateShippingOrderCommandHandler) attachGoods(
	aggregate *order.ShippingOrder,
	goods []GoodsLineInput,
) error {
	for _, line := range goods {
		dims, err := kernel.NewDimensions(line.LengthCm, line.WidthCm, line.HeightCm)
		if err != nil {
			return err
		}

		item, err := order.NewGoodsItem(
			kernel.NewUUID(), line.CommodityTypeID, dims, line.WeightKg, line.Quantity,
		)
		if err != nil {
			return err
		}

		if err = aggregate.AddGoodsItem(item); err != nil {
			return err
		}
	}
	return nil
}

func (h *CreateShippingOrderCommandHandler) attachSurcharges(
	ctx context.Context,
	uow UoW,
	aggregate *order.ShippingOrder,
	surcharges []SurchargeInput,
) error {
	for _, input := range surcharges {
		if _, err := uow.ReferenceRepository().GetSurchargeType(ctx, input.SurchargeTypeID); err != nil {
			return err
		}

		s, err := order.NewSurcharge(input.SurchargeTypeID, input.Amount)
		if err != nil {
			return err
		}

		if err = aggregate.AddSurcharge(s); err != nil {
			return err
		}
	}
	return nil
}

func (h *CreateShippingOrderCommandHandler) attachInsurance(
	ctx context.Context,
	uow UoW,
	aggregate *order.ShippingOrder,
	input *InsuranceInput,
) (*refdata.InsurancePackage, error) {
	if input == nil {
		return nil, nil
	}

	pkg, err := uow.ReferenceRepository().GetInsurancePackage(ctx, input.InsurancePackageID)
	if err != nil {
		return nil, err
	}

	detail, err := order.NewInsuranceDetail(input.InsurancePackageID, input.DeclaredValue)
	if err != nil {
		return nil, err
	}

	if err = aggregate.SetInsurance(detail); err != nil {
		return nil, err
	}
	return &pkg, nil
}
