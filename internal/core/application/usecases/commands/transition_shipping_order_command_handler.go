package commands

import (
	"context"
	"time"
)

// TransitionShippingOrderCommandHandler handles lifecycle transitions:
// one atomic status change plus one history append.
//
// Concurrency is resolved optimistically. Two users acting on the same order
// both load it, but the save checks the stored version; the loser's
// transition fails with errs.VersionIsInvalidError and the order's history
// records exactly one change.
type TransitionShippingOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewTransitionShippingOrderCommandHandler creates a handler for transition operations.
func NewTransitionShippingOrderCommandHandler(uowFactory OrderUoWFactory) TransitionShippingOrderCommandHandler {
	return TransitionShippingOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the transition command.
// Illegal actions surface as order.IllegalTransitionError and leave the
// order untouched.
func (h *TransitionShippingOrderCommandHandler) Handle(ctx context.Context, cmd TransitionShippingOrderCommand) error {
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

	if err = aggregate.Transition(cmd.Action(), cmd.ActingUserID(), time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
