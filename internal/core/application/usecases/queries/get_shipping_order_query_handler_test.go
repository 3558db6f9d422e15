package queries_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/orderrepo"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetShippingOrderQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetShippingOrderQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetShippingOrderQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.GoodsItemDTO{},
		&orderrepo.SurchargeDTO{}, &orderrepo.HistoryDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetShippingOrderQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetShippingOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetShippingOrderQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE shipping_orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetShippingOrderQueryHandlerTestSuite) TestHandle_UnpricedDraft_TotalsAreNil() {
	ctx := context.Background()

	o := draftOrder(&suite.Suite)
	suite.Require().NoError(suite.orderRepo.Add(ctx, o))

	query, err := queries.NewGetShippingOrderQuery(o.ID())
	suite.Require().NoError(err)

	view, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(o.ID(), view.ID)
	suite.Equal("Draft", view.Status)
	suite.Equal(1, view.Version)
	suite.Nil(view.Totals, "Unpriced order must not expose totals")
	suite.Require().Len(view.Goods, 1)
	suite.False(view.Goods[0].IsPriced)
	suite.Empty(view.History)
}

func (suite *GetShippingOrderQueryHandlerTestSuite) TestHandle_PricedOrder_FullView() {
	ctx := context.Background()

	o := draftOrder(&suite.Suite)
	priceOrder(&suite.Suite, o)

	actingUser := kernel.NewUUID()
	suite.Require().NoError(o.Transition(order.ActionConfirm, actingUser, time.Now()))
	suite.Require().NoError(o.Transition(order.ActionApprove, actingUser, time.Now()))
	suite.Require().NoError(suite.orderRepo.Add(ctx, o))

	query, err := queries.NewGetShippingOrderQuery(o.ID())
	suite.Require().NoError(err)

	view, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal("Approved", view.Status)

	suite.Require().NotNil(view.Totals)
	suite.True(view.Totals.ShippingFee.Equal(decimal.NewFromInt(500_000)))
	suite.True(view.Totals.InsuranceFee.IsZero())
	suite.True(view.Totals.GrandTotal.Equal(decimal.NewFromInt(500_000)))

	suite.Require().Len(view.Goods, 1)
	suite.True(view.Goods[0].IsPriced)
	suite.True(view.Goods[0].UnitPrice.Equal(decimal.NewFromInt(250_000)))
	suite.Equal(2, view.Goods[0].Quantity)

	suite.Require().Len(view.History, 2)
	suite.Equal("confirm", view.History[0].Action)
	suite.Equal("Draft", view.History[0].FromStatus)
	suite.Equal("PendingForApproval", view.History[0].ToStatus)
	suite.Equal("approve", view.History[1].Action)
	suite.Equal("Approved", view.History[1].ToStatus)
	suite.Equal(actingUser, view.History[0].ActingUserID)
}

func (suite *GetShippingOrderQueryHandlerTestSuite) TestHandle_UnknownOrder_ReturnsNotFound() {
	query, err := queries.NewGetShippingOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.ErrorAs(err, &notFoundErr)
}

func (suite *GetShippingOrderQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetShippingOrderQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetShippingOrderQuery constructor")
}

func TestGetShippingOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetShippingOrderQueryHandlerTestSuite))
}
