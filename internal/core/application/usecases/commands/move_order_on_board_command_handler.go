package commands

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/order"
)

// MoveOrderOnBoardCommandHandler handles kanban board drops, routing them
// through the order's state machine under the configured board policy.
// An illegal drop is rejected and the order stays in its column; a legal
// one is persisted with its history entry like any other transition.
type MoveOrderOnBoardCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     order.BoardPolicy
}

// NewMoveOrderOnBoardCommandHandler creates a handler for board moves under
// the given policy.
func NewMoveOrderOnBoardCommandHandler(
	uowFactory OrderUoWFactory,
	policy order.BoardPolicy,
) MoveOrderOnBoardCommandHandler {
	return MoveOrderOnBoardCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the board move command.
// Illegal drops surface as order.IllegalBoardMoveError.
func (h *MoveOrderOnBoardCommandHandler) Handle(ctx context.Context, cmd MoveOrderOnBoardCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.MoveOnBoard(cmd.Target(), cmd.ActingUserID(), time.Now(), h.policy); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
