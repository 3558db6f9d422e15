package queries_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/orderrepo"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker satisfies the repository's tracker dependency without
// a full unit of work.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// draftOrder builds a valid draft order with one goods line.
func draftOrder(s *suite.Suite) *order.ShippingOrder {
	o, err := order.NewShippingOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		decimal.NewFromInt(5000), decimal.Zero,
	)
	s.Require().NoError(err)

	dims, err := kernel.NewDimensions(
		decimal.NewFromInt(40), decimal.NewFromInt(30), decimal.NewFromInt(20),
	)
	s.Require().NoError(err)

	item, err := order.NewGoodsItem(
		kernel.NewUUID(), kernel.NewUUID(), dims, decimal.NewFromInt(3), 2,
	)
	s.Require().NoError(err)
	s.Require().NoError(o.AddGoodsItem(item))

	return o
}

// priceOrder applies a fixed pricing result: one line at 250,000 x 2, no
// insurance, grand total 500,000.
func priceOrder(s *suite.Suite, o *order.ShippingOrder) {
	err := o.ApplyPricing(order.PricingResult{
		LinePrices: []order.LinePrice{
			{GoodsItemID: o.Goods()[0].ID(), UnitPrice: decimal.NewFromInt(250_000)},
		},
		InsuranceFee: decimal.Zero,
	})
	s.Require().NoError(err)
}

type GetOrderBoardQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderBoardQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOrderBoardQueryHandlerTestSuite) SetupSuite() {
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

	suite.handler = queries.NewGetOrderBoardQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetOrderBoardQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderBoardQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE shipping_orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderBoardQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsAllColumnsEmpty() {
	query := queries.NewGetOrderBoardQuery()

	board, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(board, 9, "Every lifecycle status is a column, even when empty")
	suite.Equal("Draft", board[0].Status)
	suite.Equal("Delivered", board[7].Status)
	suite.Equal("Cancelled", board[8].Status)
	for _, column := range board {
		suite.Empty(column.Orders)
	}
}

func (suite *GetOrderBoardQueryHandlerTestSuite) TestHandle_GroupsOrdersByStatus() {
	ctx := context.Background()

	draft1 := draftOrder(&suite.Suite)
	draft2 := draftOrder(&suite.Suite)
	suite.Require().NoError(suite.orderRepo.Add(ctx, draft1))
	suite.Require().NoError(suite.orderRepo.Add(ctx, draft2))

	confirmed := draftOrder(&suite.Suite)
	priceOrder(&suite.Suite, confirmed)
	suite.Require().NoError(confirmed.Transition(order.ActionConfirm, kernel.NewUUID(), time.Now()))
	suite.Require().NoError(suite.orderRepo.Add(ctx, confirmed))

	cancelled := draftOrder(&suite.Suite)
	suite.Require().NoError(cancelled.Transition(order.ActionCancel, kernel.NewUUID(), time.Now()))
	suite.Require().NoError(suite.orderRepo.Add(ctx, cancelled))

	board, err := suite.handler.Handle(ctx, queries.NewGetOrderBoardQuery())
	suite.Require().NoError(err)
	suite.Require().Len(board, 9)

	columns := make(map[string]queries.BoardColumnResponse, len(board))
	for _, column := range board {
		columns[column.Status] = column
	}

	suite.Len(columns["Draft"].Orders, 2)
	suite.Len(columns["PendingForApproval"].Orders, 1)
	suite.Len(columns["Cancelled"].Orders, 1)
	suite.Empty(columns["InTransit"].Orders)

	suite.Equal(confirmed.ID(), columns["PendingForApproval"].Orders[0].ID)
	suite.Equal(cancelled.ID(), columns["Cancelled"].Orders[0].ID)
}

func (suite *GetOrderBoardQueryHandlerTestSuite) TestHandle_CardCarriesGrandTotalAndPrimaryAction() {
	ctx := context.Background()

	unpriced := draftOrder(&suite.Suite)
	suite.Require().NoError(suite.orderRepo.Add(ctx, unpriced))

	priced := draftOrder(&suite.Suite)
	priceOrder(&suite.Suite, priced)
	suite.Require().NoError(suite.orderRepo.Add(ctx, priced))

	cancelled := draftOrder(&suite.Suite)
	suite.Require().NoError(cancelled.Transition(order.ActionCancel, kernel.NewUUID(), time.Now()))
	suite.Require().NoError(suite.orderRepo.Add(ctx, cancelled))

	board, err := suite.handler.Handle(ctx, queries.NewGetOrderBoardQuery())
	suite.Require().NoError(err)

	cards := make(map[kernel.UUID]queries.BoardOrderResponse)
	for _, column := range board {
		for _, card := range column.Orders {
			cards[card.ID] = card
		}
	}

	suite.Nil(cards[unpriced.ID()].GrandTotal, "Unpriced order has no grand total")
	suite.Require().NotNil(cards[priced.ID()].GrandTotal)
	suite.True(cards[priced.ID()].GrandTotal.Equal(decimal.NewFromInt(500_000)))

	suite.Equal("confirm", cards[unpriced.ID()].PrimaryAction)
	suite.Equal("confirm", cards[priced.ID()].PrimaryAction)
	suite.Empty(cards[cancelled.ID()].PrimaryAction, "Terminal columns offer no action")
}

func (suite *GetOrderBoardQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOrderBoardQuery{}

	board, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(board)
	suite.Contains(err.Error(), "must be created via NewGetOrderBoardQuery constructor")
}

func TestGetOrderBoardQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderBoardQueryHandlerTestSuite))
}
