package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/guard"
)

var ErrMoveOrderOnBoardCommandIsNotConstructed = errors.New(
	"MoveOrderOnBoardCommand must be created via NewMoveOrderOnBoardCommand constructor",
)

// MoveOrderOnBoardCommand represents a kanban board drop: the order and the
// status column it was dragged to. Whether the drop is legal is decided by
// the aggregate under the configured board policy.
type MoveOrderOnBoardCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	target       order.Status
	actingUserID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMoveOrderOnBoardCommand creates a command to move the given order to
// the target column.
func NewMoveOrderOnBoardCommand(
	orderID kernel.UUID,
	target order.Status,
	actingUserID kernel.UUID,
) (MoveOrderOnBoardCommand, error) {
	cmd := MoveOrderOnBoardCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActingUserID(actingUserID),
	); err != nil {
		return MoveOrderOnBoardCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MoveOrderOnBoardCommand) Validate() error {
	return c.guard.Validate(ErrMoveOrderOnBoardCommandIsNotConstructed)
}

// OrderID returns the unique identifier of the order being moved.
func (c MoveOrderOnBoardCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the status column the order was dropped into.
func (c MoveOrderOnBoardCommand) Target() order.Status {
	return c.target
}

// ActingUserID returns the id of the user performing the move.
func (c MoveOrderOnBoardCommand) ActingUserID() kernel.UUID {
	return c.actingUserID
}

func (c *MoveOrderOnBoardCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *MoveOrderOnBoardCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *MoveOrderOnBoardCommand) setActingUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.actingUserID = id
	return nil
}
