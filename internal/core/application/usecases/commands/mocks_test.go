package commands_test

import (
	"context"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/refdata"
	"shipping/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.ShippingOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.ShippingOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.ShippingOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.ShippingOrder), args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.ShippingOrder, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.ShippingOrder), args.Error(1)
}

func (m *MockOrderRepository) GetAllDraftsOlderThan(ctx context.Context, cutoff time.Time) ([]*order.ShippingOrder, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.ShippingOrder), args.Error(1)
}

type MockReferenceRepository struct{ mock.Mock }

func (m *MockReferenceRepository) GetRoute(ctx context.Context, id kernel.UUID) (refdata.Route, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(refdata.Route), args.Error(1)
}

func (m *MockReferenceRepository) GetService(ctx context.Context, id kernel.UUID) (refdata.ShippingService, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(refdata.ShippingService), args.Error(1)
}

func (m *MockReferenceRepository) GetRateCards(ctx context.Context, routeID, serviceID kernel.UUID) ([]refdata.RateCard, error) {
	args := m.Called(ctx, routeID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]refdata.RateCard), args.Error(1)
}

func (m *MockReferenceRepository) GetAllRateCards(ctx context.Context) ([]refdata.RateCard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]refdata.RateCard), args.Error(1)
}

func (m *MockReferenceRepository) GetInsurancePackage(ctx context.Context, id kernel.UUID) (refdata.InsurancePackage, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(refdata.InsurancePackage), args.Error(1)
}

func (m *MockReferenceRepository) GetSurchargeType(ctx context.Context, id kernel.UUID) (refdata.SurchargeType, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(refdata.SurchargeType), args.Error(1)
}

func (m *MockReferenceRepository) GetBranch(ctx context.Context, id kernel.UUID) (refdata.Branch, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(refdata.Branch), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ReferenceRepository() ports.ReferenceRepository {
	args := m.Called()
	return args.Get(0).(ports.ReferenceRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}
