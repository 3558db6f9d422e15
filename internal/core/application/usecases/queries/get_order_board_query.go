package queries

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderBoardQueryIsNotConstructed = errors.New(
	"GetOrderBoardQuery must be created via NewGetOrderBoardQuery constructor",
)

// GetOrderBoardQuery retrieves the kanban board projection: every order,
// grouped by status column. Each lifecycle status is a column; terminal
// columns appear too, so cancelled and delivered orders stay visible.
type GetOrderBoardQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrderBoardQuery creates a query to retrieve the order board.
// This is a parameterless query that fetches every order.
func NewGetOrderBoardQuery() GetOrderBoardQuery {
	return GetOrderBoardQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderBoardQueryIsNotConstructed if validation fails.
func (q GetOrderBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderBoardQueryIsNotConstructed)
}

// BoardOrderResponse is one card on the board: the order, its grand total
// when priced, and the primary action its column offers.
type BoardOrderResponse struct {
	ID         kernel.UUID
	GrandTotal *decimal.Decimal
	// PrimaryAction is the single forward action available from the
	// order's column, empty for terminal columns.
	PrimaryAction string
}

// BoardColumnResponse is one column of the board with its cards in creation
// order.
type BoardColumnResponse struct {
	Status string
	Orders []BoardOrderResponse
}
