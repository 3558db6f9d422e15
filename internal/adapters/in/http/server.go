// Package http exposes the rating and lifecycle engine over a JSON API.
// It translates HTTP requests into commands and queries and maps domain
// error types onto status codes.
package http

import (
	"errors"
	"net/http"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/services"
	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler commands.CreateShippingOrderCommandHandler
	repriceHandler     commands.RepriceShippingOrderCommandHandler
	transitionHandler  commands.TransitionShippingOrderCommandHandler
	boardMoveHandler   commands.MoveOrderOnBoardCommandHandler

	getOrderHandler queries.GetShippingOrderQueryHandler
	getBoardHandler queries.GetOrderBoardQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateShippingOrderCommandHandler,
	repriceHandler commands.RepriceShippingOrderCommandHandler,
	transitionHandler commands.TransitionShippingOrderCommandHandler,
	boardMoveHandler commands.MoveOrderOnBoardCommandHandler,
	getOrderHandler queries.GetShippingOrderQueryHandler,
	getBoardHandler queries.GetOrderBoardQueryHandler,
) *Server {
	return &Server{
		createOrderHandler: createOrderHandler,
		repriceHandler:     repriceHandler,
		transitionHandler:  transitionHandler,
		boardMoveHandler:   boardMoveHandler,
		getOrderHandler:    getOrderHandler,
		getBoardHandler:    getBoardHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:orderID", s.GetOrder)
	api.POST("/orders/:orderID/reprice", s.RepriceOrder)
	api.POST("/orders/:orderID/actions", s.TransitionOrder)
	api.POST("/orders/:orderID/board-move", s.MoveOrderOnBoard)
	api.GET("/board", s.GetBoard)
}

// Error is the JSON error body returned on every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GoodsLineRequest is one goods line of an order creation request.
type GoodsLineRequest struct {
	CommodityTypeID string          `json:"commodityTypeId"`
	LengthCm        decimal.Decimal `json:"lengthCm"`
	WidthCm         decimal.Decimal `json:"widthCm"`
	HeightCm        decimal.Decimal `json:"heightCm"`
	WeightKg        decimal.Decimal `json:"weightKg"`
	Quantity        int             `json:"quantity"`
}

// SurchargeRequest is one surcharge of an order creation request.
type SurchargeRequest struct {
	SurchargeTypeID string          `json:"surchargeTypeId"`
	Amount          decimal.Decimal `json:"amount"`
}

// InsuranceRequest is the optional insurance selection of an order creation
// request.
type InsuranceRequest struct {
	InsurancePackageID string          `json:"insurancePackageId"`
	DeclaredValue      decimal.Decimal `json:"declaredValue"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	BranchID          string             `json:"branchId"`
	RouteID           string             `json:"routeId"`
	CarrierID         string             `json:"carrierId"`
	ServiceID         string             `json:"serviceId"`
	VolumetricDivisor decimal.Decimal    `json:"volumetricDivisor"`
	Goods             []GoodsLineRequest `json:"goods"`
	Surcharges        []SurchargeRequest `json:"surcharges"`
	Insurance         *InsuranceRequest  `json:"insurance"`
}

// CreateOrderResponse returns the id assigned to the new order.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// ActionRequest is the body of POST /orders/{id}/actions.
type ActionRequest struct {
	Action       string `json:"action"`
	ActingUserID string `json:"actingUserId"`
}

// BoardMoveRequest is the body of POST /orders/{id}/board-move.
type BoardMoveRequest struct {
	Target       string `json:"target"`
	ActingUserID string `json:"actingUserId"`
}

// CreateOrder handles POST /api/v1/orders - creates and prices a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	branchID, err := kernel.UUIDFromString(req.BranchID)
	if err != nil {
		return badRequest(ctx, "Invalid branch id: "+req.BranchID)
	}
	routeID, err := kernel.UUIDFromString(req.RouteID)
	if err != nil {
		return badRequest(ctx, "Invalid route id: "+req.RouteID)
	}
	carrierID, err := kernel.UUIDFromString(req.CarrierID)
	if err != nil {
		return badRequest(ctx, "Invalid carrier id: "+req.CarrierID)
	}
	serviceID, err := kernel.UUIDFromString(req.ServiceID)
	if err != nil {
		return badRequest(ctx, "Invalid service id: "+req.ServiceID)
	}

	goods, err := goodsFromRequest(req.Goods)
	if err != nil {
		return badRequest(ctx, "Invalid goods line: "+err.Error())
	}
	surcharges, err := surchargesFromRequest(req.Surcharges)
	if err != nil {
		return badRequest(ctx, "Invalid surcharge: "+err.Error())
	}
	insurance, err := insuranceFromRequest(req.Insurance)
	if err != nil {
		return badRequest(ctx, "Invalid insurance: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateShippingOrderCommand(
		orderID, branchID, routeID, carrierID, serviceID,
		req.VolumetricDivisor, goods, surcharges, insurance,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// RepriceOrder handles POST /api/v1/orders/{orderID}/reprice - recomputes
// the stale pricing sections of an order.
func (s *Server) RepriceOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewRepriceShippingOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	if err := s.repriceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TransitionOrder handles POST /api/v1/orders/{orderID}/actions - applies a
// lifecycle action to an order.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req ActionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actingUserID, err := kernel.UUIDFromString(req.ActingUserID)
	if err != nil {
		return badRequest(ctx, "Invalid acting user id")
	}

	cmd, err := commands.NewTransitionShippingOrderCommand(orderID, order.Action(req.Action), actingUserID)
	if err != nil {
		return badRequest(ctx, "Invalid action: "+err.Error())
	}

	if err := s.transitionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MoveOrderOnBoard handles POST /api/v1/orders/{orderID}/board-move - drops
// an order onto another board column.
func (s *Server) MoveOrderOnBoard(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req BoardMoveRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actingUserID, err := kernel.UUIDFromString(req.ActingUserID)
	if err != nil {
		return badRequest(ctx, "Invalid acting user id")
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return badRequest(ctx, "Invalid target column: "+req.Target)
	}

	cmd, err := commands.NewMoveOrderOnBoardCommand(orderID, target, actingUserID)
	if err != nil {
		return badRequest(ctx, "Invalid board move: "+err.Error())
	}

	if err := s.boardMoveHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/{orderID} - retrieves one order with
// totals, goods lines and history.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetShippingOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderViewResponse(view))
}

// GetBoard handles GET /api/v1/board - retrieves the kanban board.
func (s *Server) GetBoard(ctx echo.Context) error {
	board, err := s.getBoardHandler.Handle(ctx.Request().Context(), queries.NewGetOrderBoardQuery())
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, boardResponse(board))
}

func goodsFromRequest(lines []GoodsLineRequest) ([]commands.GoodsLineInput, error) {
	goods := make([]commands.GoodsLineInput, 0, len(lines))
	for _, line := range lines {
		commodityTypeID, err := kernel.UUIDFromString(line.CommodityTypeID)
		if err != nil {
			return nil, err
		}

		goods = append(goods, commands.GoodsLineInput{
			CommodityTypeID: commodityTypeID,
			LengthCm:        line.LengthCm,
			WidthCm:         line.WidthCm,
			HeightCm:        line.HeightCm,
			WeightKg:        line.WeightKg,
			Quantity:        line.Quantity,
		})
	}
	return goods, nil
}

func surchargesFromRequest(reqs []SurchargeRequest) ([]commands.SurchargeInput, error) {
	surcharges := make([]commands.SurchargeInput, 0, len(reqs))
	for _, req := range reqs {
		surchargeTypeID, err := kernel.UUIDFromString(req.SurchargeTypeID)
		if err != nil {
			return nil, err
		}

		surcharges = append(surcharges, commands.SurchargeInput{
			SurchargeTypeID: surchargeTypeID,
			Amount:          req.Amount,
		})
	}
	return surcharges, nil
}

func insuranceFromRequest(req *InsuranceRequest) (*commands.InsuranceInput, error) {
	if req == nil {
		return nil, nil
	}

	insurancePackageID, err := kernel.UUIDFromString(req.InsurancePackageID)
	if err != nil {
		return nil, err
	}

	return &commands.InsuranceInput{
		InsurancePackageID: insurancePackageID,
		DeclaredValue:      req.DeclaredValue,
	}, nil
}

// TotalsView is the money breakdown of a priced order.
type TotalsView struct {
	ShippingFee    decimal.Decimal `json:"shippingFee"`
	InsuranceFee   decimal.Decimal `json:"insuranceFee"`
	SurchargeTotal decimal.Decimal `json:"surchargeTotal"`
	Discount       decimal.Decimal `json:"discount"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
}

// GoodsLineView is one goods line of the order view.
type GoodsLineView struct {
	ID        string          `json:"id"`
	WeightKg  decimal.Decimal `json:"weightKg"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	IsPriced  bool            `json:"isPriced"`
}

// HistoryEntryView is one lifecycle record of the order view.
type HistoryEntryView struct {
	At           string `json:"at"`
	ActingUserID string `json:"actingUserId"`
	Action       string `json:"action"`
	FromStatus   string `json:"fromStatus"`
	ToStatus     string `json:"toStatus"`
	Description  string `json:"description"`
}

// OrderView is the full order representation returned by GET /orders/{id}.
type OrderView struct {
	ID      string             `json:"id"`
	Status  string             `json:"status"`
	Version int                `json:"version"`
	Totals  *TotalsView        `json:"totals"`
	Goods   []GoodsLineView    `json:"goods"`
	History []HistoryEntryView `json:"history"`
}

// BoardCardView is one card of the board view.
type BoardCardView struct {
	ID            string           `json:"id"`
	GrandTotal    *decimal.Decimal `json:"grandTotal"`
	PrimaryAction string           `json:"primaryAction"`
}

// BoardColumnView is one column of the board view.
type BoardColumnView struct {
	Status string          `json:"status"`
	Orders []BoardCardView `json:"orders"`
}

func orderViewResponse(view queries.GetShippingOrderQueryResponse) OrderView {
	resp := OrderView{
		ID:      view.ID.String(),
		Status:  view.Status,
		Version: view.Version,
		Goods:   make([]GoodsLineView, 0, len(view.Goods)),
		History: make([]HistoryEntryView, 0, len(view.History)),
	}

	if view.Totals != nil {
		resp.Totals = &TotalsView{
			ShippingFee:    view.Totals.ShippingFee,
			InsuranceFee:   view.Totals.InsuranceFee,
			SurchargeTotal: view.Totals.SurchargeTotal,
			Discount:       view.Totals.Discount,
			GrandTotal:     view.Totals.GrandTotal,
		}
	}

	for _, line := range view.Goods {
		resp.Goods = append(resp.Goods, GoodsLineView{
			ID:        line.ID.String(),
			WeightKg:  line.WeightKg,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			IsPriced:  line.IsPriced,
		})
	}

	for _, entry := range view.History {
		resp.History = append(resp.History, HistoryEntryView{
			At:           entry.At.UTC().Format("2006-01-02T15:04:05Z07:00"),
			ActingUserID: entry.ActingUserID.String(),
			Action:       entry.Action,
			FromStatus:   entry.FromStatus,
			ToStatus:     entry.ToStatus,
			Description:  entry.Description,
		})
	}

	return resp
}

func boardResponse(board []queries.BoardColumnResponse) []BoardColumnView {
	resp := make([]BoardColumnView, 0, len(board))
	for _, column := range board {
		cards := make([]BoardCardView, 0, len(column.Orders))
		for _, card := range column.Orders {
			cards = append(cards, BoardCardView{
				ID:            card.ID.String(),
				GrandTotal:    card.GrandTotal,
				PrimaryAction: card.PrimaryAction,
			})
		}
		resp = append(resp, BoardColumnView{Status: column.Status, Orders: cards})
	}
	return resp
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps domain error types onto HTTP status codes.
func domainError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	var notFoundErr *errs.ObjectNotFoundError
	var invalidErr *errs.ValueIsInvalidError
	var requiredErr *errs.ValueIsRequiredError
	var rangeErr *errs.ValueIsOutOfRangeError
	var versionErr *errs.VersionIsInvalidError

	switch {
	case errors.As(err, &notFoundErr):
		code = http.StatusNotFound
	case errors.As(err, &versionErr):
		code = http.StatusConflict
	case errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, order.ErrOrderIsNotPriced),
		errors.Is(err, order.ErrOrderIsNotEditable),
		errors.Is(err, services.ErrRateNotFound),
		errors.Is(err, services.ErrNegativeGrandTotal):
		code = http.StatusUnprocessableEntity
	case errors.As(err, &invalidErr),
		errors.As(err, &requiredErr),
		errors.As(err, &rangeErr):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}
