package commands_test

import (
	"errors"
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/refdata"
	"shipping/internal/core/domain/services"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixtureRoute(t *testing.T, id kernel.UUID) refdata.Route {
	t.Helper()
	route, err := refdata.NewRoute(id, "Hanoi", "VN", "Tokyo", "JP", kernel.NewUUID())
	require.NoError(t, err)
	return route
}

func fixtureService(t *testing.T, id kernel.UUID) refdata.ShippingService {
	t.Helper()
	svc, err := refdata.NewShippingService(id, "express", decimal.NewFromInt(1), 3)
	require.NoError(t, err)
	return svc
}

func fixtureBranch(t *testing.T, id kernel.UUID) refdata.Branch {
	t.Helper()
	branch, err := refdata.NewBranch(id, "central", decimal.Zero)
	require.NoError(t, err)
	return branch
}

func fixtureRateCards(t *testing.T, routeID, serviceID kernel.UUID) []refdata.RateCard {
	t.Helper()
	card, err := refdata.NewRateCard(
		kernel.NewUUID(), routeID, serviceID,
		decimal.NewFromInt(50000),
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), nil,
	)
	require.NoError(t, err)
	return []refdata.RateCard{card}
}

func TestCreateShippingOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateCommand(t)

	orderRepo := new(MockOrderRepository)
	refRepo := new(MockReferenceRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReferenceRepository").Return(refRepo).Once(),
		refRepo.On("GetRoute", mock.Anything, cmd.RouteID()).
			Return(fixtureRoute(t, cmd.RouteID()), nil).Once(),
		refRepo.On("GetService", mock.Anything, cmd.ServiceID()).
			Return(fixtureService(t, cmd.ServiceID()), nil).Once(),
		refRepo.On("GetBranch", mock.Anything, cmd.BranchID()).
			Return(fixtureBranch(t, cmd.BranchID()), nil).Once(),
		refRepo.On("GetRateCards", mock.Anything, cmd.RouteID(), cmd.ServiceID()).
			Return(fixtureRateCards(t, cmd.RouteID(), cmd.ServiceID()), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.ShippingOrder")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShippingOrderCommandHandler(factory, services.NewOrderPricer(services.PricingPolicy{}))
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	refRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateShippingOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateShippingOrderCommand{} // not constructed properly
	factory := new(MockUoWFactory)
	h := commands.NewCreateShippingOrderCommandHandler(factory, services.NewOrderPricer(services.PricingPolicy{}))
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateShippingOrderCommandIsNotConstructed)
}

func TestCreateShippingOrderCommandHandler_Handle_UnknownRoute(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateCommand(t)

	refRepo := new(MockReferenceRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReferenceRepository").Return(refRepo).Once(),
		refRepo.On("GetRoute", mock.Anything, cmd.RouteID()).
			Return(refdata.Route{}, errs.NewObjectNotFoundError("route", cmd.RouteID().String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShippingOrderCommandHandler(factory, services.NewOrderPricer(services.PricingPolicy{}))
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	refRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateShippingOrderCommandHandler_Handle_NoRateCard(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateCommand(t)

	refRepo := new(MockReferenceRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReferenceRepository").Return(refRepo).Once(),
		refRepo.On("GetRoute", mock.Anything, cmd.RouteID()).
			Return(fixtureRoute(t, cmd.RouteID()), nil).Once(),
		refRepo.On("GetService", mock.Anything, cmd.ServiceID()).
			Return(fixtureService(t, cmd.ServiceID()), nil).Once(),
		refRepo.On("GetBranch", mock.Anything, cmd.BranchID()).
			Return(fixtureBranch(t, cmd.BranchID()), nil).Once(),
		refRepo.On("GetRateCards", mock.Anything, cmd.RouteID(), cmd.ServiceID()).
			Return([]refdata.RateCard{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShippingOrderCommandHandler(factory, services.NewOrderPricer(services.PricingPolicy{}))
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, services.ErrRateNotFound)
	refRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateShippingOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateCommand(t)

	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateShippingOrderCommandHandler(factory, services.NewOrderPricer(services.PricingPolicy{}))
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateShippingOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateCommand(t)

	orderRepo := new(MockOrderRepository)
	refRepo := new(MockReferenceRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReferenceRepository").Return(refRepo).Once(),
		refRepo.On("GetRoute", mock.Anything, cmd.RouteID()).
			Return(fixtureRoute(t, cmd.RouteID()), nil).Once(),
		refRepo.On("GetService", mock.Anything, cmd.ServiceID()).
			Return(fixtureService(t, cmd.ServiceID()), nil).Once(),
		refRepo.On("GetBranch", mock.Anything, cmd.BranchID()).
			Return(fixtureBranch(t, cmd.BranchID()), nil).Once(),
		refRepo.On("GetRateCards", mock.Anything, cmd.RouteID(), cmd.ServiceID()).
			Return(fixtureRateCards(t, cmd.RouteID(), cmd.ServiceID()), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.ShippingOrder")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShippingOrderCommandHandler(factory, services.NewOrderPricer(services.PricingPolicy{}))
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}
