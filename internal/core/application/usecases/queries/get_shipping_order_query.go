package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetShippingOrderQueryIsNotConstructed = errors.New(
	"GetShippingOrderQuery must be created via NewGetShippingOrderQuery constructor",
)

// GetShippingOrderQuery retrieves one order with its totals breakdown,
// goods lines and full status history.
type GetShippingOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShippingOrderQuery creates a query to retrieve the given order.
func NewGetShippingOrderQuery(orderID kernel.UUID) (GetShippingOrderQuery, error) {
	q := GetShippingOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setOrderID(orderID); err != nil {
		return GetShippingOrderQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShippingOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetShippingOrderQueryIsNotConstructed)
}

// OrderID returns the unique identifier of the requested order.
func (q GetShippingOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetShippingOrderQuery) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	q.orderID = id
	return nil
}

// TotalsResponse is the money breakdown of a priced order.
type TotalsResponse struct {
	ShippingFee    decimal.Decimal
	InsuranceFee   decimal.Decimal
	SurchargeTotal decimal.Decimal
	Discount       decimal.Decimal
	GrandTotal     decimal.Decimal
}

// GoodsLineResponse is one goods line of the order view.
type GoodsLineResponse struct {
	ID        kernel.UUID
	WeightKg  decimal.Decimal
	Quantity  int
	UnitPrice decimal.Decimal
	IsPriced  bool
}

// HistoryEntryResponse is one status-change record of the order view.
type HistoryEntryResponse struct {
	At           time.Time
	ActingUserID kernel.UUID
	Action       string
	FromStatus   string
	ToStatus     string
	Description  string
}

// GetShippingOrderQueryResponse is the full order view: identity, current
// status, totals when priced, goods lines and the status history.
type GetShippingOrderQueryResponse struct {
	ID      kernel.UUID
	Status  string
	Version int
	// Totals is nil while the order is unpriced or stale.
	Totals  *TotalsResponse
	Goods   []GoodsLineResponse
	History []HistoryEntryResponse
}
