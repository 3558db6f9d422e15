package commands_test

import (
	"errors"
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// pricedDraftOrder builds a Draft order that is fully priced, so the confirm
// action is legal on it.
func pricedDraftOrder(t *testing.T) *order.ShippingOrder {
	t.Helper()

	aggregate, err := order.NewShippingOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		kernel.NewUUID(), kernel.NewUUID(),
		decimal.NewFromInt(5000), decimal.Zero,
	)
	require.NoError(t, err)

	dims, err := kernel.NewDimensions(
		decimal.NewFromInt(40), decimal.NewFromInt(30), decimal.NewFromInt(20),
	)
	require.NoError(t, err)

	item, err := order.NewGoodsItem(
		kernel.NewUUID(), kernel.NewUUID(), dims, decimal.NewFromInt(1), 1,
	)
	require.NoError(t, err)
	require.NoError(t, aggregate.AddGoodsItem(item))

	require.NoError(t, aggregate.ApplyPricing(order.PricingResult{
		LinePrices: []order.LinePrice{
			{GoodsItemID: item.ID(), UnitPrice: decimal.NewFromInt(250000)},
		},
		InsuranceFee: decimal.Zero,
	}))
	return aggregate
}

func TestTransitionShippingOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := pricedDraftOrder(t)
	cmd, err := commands.NewTransitionShippingOrderCommand(
		aggregate.ID(), order.ActionConfirm, kernel.NewUUID(),
	)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, mock.AnythingOfType("*order.ShippingOrder")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionShippingOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, order.PendingForApproval, aggregate.Status())
	require.Len(t, aggregate.History(), 1)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestTransitionShippingOrderCommandHandler_Handle_IllegalAction(t *testing.T) {
	ctx := t.Context()
	aggregate := pricedDraftOrder(t)
	cmd, err := commands.NewTransitionShippingOrderCommand(
		aggregate.ID(), order.ActionExport, kernel.NewUUID(),
	)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionShippingOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrIllegalTransition)
	require.Equal(t, order.Draft, aggregate.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionShippingOrderCommandHandler_Handle_VersionConflict(t *testing.T) {
	ctx := t.Context()
	aggregate := pricedDraftOrder(t)
	cmd, err := commands.NewTransitionShippingOrderCommand(
		aggregate.ID(), order.ActionConfirm, kernel.NewUUID(),
	)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, mock.AnythingOfType("*order.ShippingOrder")).
			Return(errs.NewVersionIsInvalidError("order version")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionShippingOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionShippingOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewTransitionShippingOrderCommand(
		orderID, order.ActionConfirm, kernel.NewUUID(),
	)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionShippingOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestTransitionShippingOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewTransitionShippingOrderCommand(
		kernel.NewUUID(), order.ActionConfirm, kernel.NewUUID(),
	)
	require.NoError(t, err)

	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewTransitionShippingOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
}
