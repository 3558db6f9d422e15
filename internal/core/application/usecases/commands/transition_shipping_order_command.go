package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/guard"
)

var ErrTransitionShippingOrderCommandIsNotConstructed = errors.New(
	"TransitionShippingOrderCommand must be created via NewTransitionShippingOrderCommand constructor",
)

// TransitionShippingOrderCommand represents a request to apply one lifecycle
// action to an order: the primary action of its current status, or the
// universal cancel.
type TransitionShippingOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	action       order.Action
	actingUserID kernel.UUID

	guard guard.ConstructorGuard
}

// NewTransitionShippingOrderCommand creates a command to transition the
// given order. The action must be a known lifecycle action; whether it is
// legal for the order's current status is decided by the aggregate.
func NewTransitionShippingOrderCommand(
	orderID kernel.UUID,
	action order.Action,
	actingUserID kernel.UUID,
) (TransitionShippingOrderCommand, error) {
	cmd := TransitionShippingOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAction(action),
		cmd.setActingUserID(actingUserID),
	); err != nil {
		return TransitionShippingOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionShippingOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionShippingOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier of the order to transition.
func (c TransitionShippingOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Action returns the lifecycle action to apply.
func (c TransitionShippingOrderCommand) Action() order.Action {
	return c.action
}

// ActingUserID returns the id of the user performing the transition.
func (c TransitionShippingOrderCommand) ActingUserID() kernel.UUID {
	return c.actingUserID
}

func (c *TransitionShippingOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *TransitionShippingOrderCommand) setAction(action order.Action) error {
	if err := action.Validate(); err != nil {
		return err
	}
	c.action = action
	return nil
}

func (c *TransitionShippingOrderCommand) setActingUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.actingUserID = id
	return nil
}
