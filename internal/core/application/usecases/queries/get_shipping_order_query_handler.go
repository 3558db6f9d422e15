package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetShippingOrderQueryHandler retrieves one order with its totals, goods
// lines and history from the database.
type GetShippingOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetShippingOrderQueryHandler creates a handler for single-order queries.
// Requires a GORM database connection for query execution.
func NewGetShippingOrderQueryHandler(db *gorm.DB) GetShippingOrderQueryHandler {
	return GetShippingOrderQueryHandler{db: db}
}

// Handle executes the query. An unknown order id yields errs.ObjectNotFoundError.
func (h GetShippingOrderQueryHandler) Handle(
	ctx context.Context,
	query GetShippingOrderQuery,
) (GetShippingOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShippingOrderQueryResponse{}, err
	}

	resp, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return GetShippingOrderQueryResponse{}, err
	}

	if resp.Goods, err = h.loadGoods(ctx, query.OrderID()); err != nil {
		return GetShippingOrderQueryResponse{}, err
	}
	if resp.History, err = h.loadHistory(ctx, query.OrderID()); err != nil {
		return GetShippingOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetShippingOrderQueryHandler) loadOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (GetShippingOrderQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			version,
			shipping_fee,
			insurance_fee,
			surcharge_total,
			discount,
			grand_total
		FROM shipping_orders
		WHERE id = ?
	`, orderID.String()).Row()

	var id uuid.UUID
	var status, version int
	var shippingFee, insuranceFee, surchargeTotal, discount, grandTotal *decimal.Decimal

	err := row.Scan(&id, &status, &version, &shippingFee, &insuranceFee, &surchargeTotal, &discount, &grandTotal)
	if errors.Is(err, sql.ErrNoRows) {
		return GetShippingOrderQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
	}
	if err != nil {
		return GetShippingOrderQueryResponse{}, err
	}

	respID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetShippingOrderQueryResponse{}, err
	}

	resp := GetShippingOrderQueryResponse{
		ID:      respID,
		Status:  order.Status(status).String(),
		Version: version,
	}
	if grandTotal != nil {
		resp.Totals = &TotalsResponse{
			ShippingFee:    *shippingFee,
			InsuranceFee:   *insuranceFee,
			SurchargeTotal: *surchargeTotal,
			Discount:       *discount,
			GrandTotal:     *grandTotal,
		}
	}
	return resp, nil
}

func (h GetShippingOrderQueryHandler) loadGoods(
	ctx context.Context,
	orderID kernel.UUID,
) ([]GoodsLineResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			weight_kg,
			quantity,
			unit_price,
			is_priced
		FROM order_goods_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goods := make([]GoodsLineResponse, 0)
	for rows.Next() {
		var id uuid.UUID
		var line GoodsLineResponse

		if err = rows.Scan(&id, &line.WeightKg, &line.Quantity, &line.UnitPrice, &line.IsPriced); err != nil {
			return nil, err
		}

		if line.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		goods = append(goods, line)
	}

	return goods, rows.Err()
}

func (h GetShippingOrderQueryHandler) loadHistory(
	ctx context.Context,
	orderID kernel.UUID,
) ([]HistoryEntryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			occurred_at,
			acting_user_id,
			action,
			from_status,
			to_status,
			description
		FROM order_history
		WHERE order_id = ?
		ORDER BY occurred_at, id
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]HistoryEntryResponse, 0)
	for rows.Next() {
		var at time.Time
		var userID uuid.UUID
		var action string
		var fromStatus, toStatus int
		var description string

		if err = rows.Scan(&at, &userID, &action, &fromStatus, &toStatus, &description); err != nil {
			return nil, err
		}

		actingUserID, idErr := kernel.UUIDFromBytes(userID[:])
		if idErr != nil {
			return nil, idErr
		}

		history = append(history, HistoryEntryResponse{
			At:           at,
			ActingUserID: actingUserID,
			Action:       action,
			FromStatus:   order.Status(fromStatus).String(),
			ToStatus:     order.Status(toStatus).String(),
			Description:  description,
		})
	}

	return history, rows.Err()
}
