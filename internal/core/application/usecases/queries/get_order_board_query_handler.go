package queries

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderBoardQueryHandler builds the kanban board projection straight from
// the database: one column per lifecycle status, each holding its orders in
// creation order. Columns with no orders are still present, so the board
// renders a stable layout.
type GetOrderBoardQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderBoardQueryHandler creates a handler for board queries.
// Requires a GORM database connection for query execution.
func NewGetOrderBoardQueryHandler(db *gorm.DB) GetOrderBoardQueryHandler {
	return GetOrderBoardQueryHandler{db: db}
}

// boardColumns is the fixed column order of the board.
var boardColumns = []order.Status{
	order.Draft,
	order.PendingForApproval,
	order.Approved,
	order.DocsVerified,
	order.EntryInWarehouse,
	order.ReadyToExport,
	order.InTransit,
	order.Delivered,
	order.Cancelled,
}

// Handle executes the query and returns the board columns.
func (h GetOrderBoardQueryHandler) Handle(
	ctx context.Context,
	query GetOrderBoardQuery,
) ([]BoardColumnResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	byStatus := make(map[order.Status][]BoardOrderResponse, len(boardColumns))

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			grand_total
		FROM shipping_orders
		ORDER BY created_at, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var status int
		var grandTotal *decimal.Decimal

		if err = rows.Scan(&id, &status, &grandTotal); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		card := BoardOrderResponse{
			ID:         orderID,
			GrandTotal: grandTotal,
		}
		if action, ok := order.Status(status).PrimaryAction(); ok {
			card.PrimaryAction = action.String()
		}

		byStatus[order.Status(status)] = append(byStatus[order.Status(status)], card)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	board := make([]BoardColumnResponse, 0, len(boardColumns))
	for _, status := range boardColumns {
		board = append(board, BoardColumnResponse{
			Status: status.String(),
			Orders: byStatus[status],
		})
	}
	return board, nil
}
