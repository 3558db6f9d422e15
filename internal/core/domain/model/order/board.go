package order

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// BoardPolicy decides how the kanban board translates a column drop into a
// lifecycle change. The original console mutated the status in place during
// drag events, silently bypassing the transition rules; whether that was
// intentional is an open business question, so the behavior is a policy
// rather than a constant.
type BoardPolicy int

const (
	// BoardEnforceLifecycle only allows drops that correspond to a legal
	// lifecycle action from the order's current status: the primary action
	// or cancel. Everything else is rejected and the order stays in its
	// original column. This is the default.
	BoardEnforceLifecycle BoardPolicy = iota

	// BoardFreeMove allows dragging a non-terminal order into any valid
	// column, including backward and skip moves. The move is still recorded
	// in the order's history; it never bypasses the aggregate.
	BoardFreeMove
)

// Validate checks the policy is one of the declared values.
func (p BoardPolicy) Validate() error {
	switch p {
	case BoardEnforceLifecycle, BoardFreeMove:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"board policy is invalid",
			fmt.Errorf("%d is not a valid board policy", p),
		)
	}
}

// String implements fmt.Stringer.
func (p BoardPolicy) String() string {
	switch p {
	case BoardEnforceLifecycle:
		return "EnforceLifecycle"
	case BoardFreeMove:
		return "FreeMove"
	default:
		return "Unknown"
	}
}

// IllegalBoardMoveError reports a board drop that does not correspond to any
// legal lifecycle change under the active policy. It unwraps to
// ErrIllegalTransition so callers can classify it together with direct
// transition failures.
type IllegalBoardMoveError struct {
	From   Status
	Target Status
}

func (e *IllegalBoardMoveError) Error() string {
	return fmt.Sprintf("illegal transition: board move from %q to %q is not allowed", e.From, e.Target)
}

func (e *IllegalBoardMoveError) Unwrap() error {
	return ErrIllegalTransition
}

// NewIllegalBoardMoveError creates an IllegalBoardMoveError for the given
// source and target columns.
func NewIllegalBoardMoveError(from, target Status) *IllegalBoardMoveError {
	return &IllegalBoardMoveError{From: from, Target: target}
}
