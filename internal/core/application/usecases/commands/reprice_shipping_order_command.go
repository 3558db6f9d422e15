package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrRepriceShippingOrderCommandIsNotConstructed = errors.New(
	"RepriceShippingOrderCommand must be created via NewRepriceShippingOrderCommand constructor",
)

// RepriceShippingOrderCommand represents a request to recompute an order's
// derived pricing. The recomputation is scope-driven: only the sections a
// prior mutation invalidated are recomputed, and a clean order is a no-op.
type RepriceShippingOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRepriceShippingOrderCommand creates a command to reprice the given order.
func NewRepriceShippingOrderCommand(orderID kernel.UUID) (RepriceShippingOrderCommand, error) {
	cmd := RepriceShippingOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return RepriceShippingOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RepriceShippingOrderCommand) Validate() error {
	return c.guard.Validate(ErrRepriceShippingOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier of the order to reprice.
func (c RepriceShippingOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *RepriceShippingOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}
