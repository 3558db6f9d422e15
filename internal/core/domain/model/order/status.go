package order

import (
	"errors"
	"fmt"

	"shipping/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipping order.
// It implements a state machine with a single expected forward transition
// (the "primary action") per non-terminal state, plus a universal cancel
// action reachable from any non-terminal state.
//
// State progression:
//
//	Draft ──confirm──> PendingForApproval ──approve──> Approved ──verify──> DocsVerified
//	  ──inbound──> EntryInWarehouse ──ready──> ReadyToExport ──export──> InTransit
//	  ──delivered──> Delivered
//
// with Cancelled reachable via the cancel action from every non-terminal
// state. Delivered and Cancelled are terminal: no action is accepted once an
// order reaches either of them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status of a newly created order.
	Draft

	// PendingForApproval means the order was confirmed by its author and
	// waits for a supervisor's approval.
	PendingForApproval

	// Approved means a supervisor accepted the order for processing.
	Approved

	// DocsVerified means the shipping documents passed verification.
	DocsVerified

	// EntryInWarehouse means the goods physically arrived at the warehouse.
	EntryInWarehouse

	// ReadyToExport means the goods are packed and cleared for export.
	ReadyToExport

	// InTransit means the shipment left the warehouse and is being carried.
	InTransit

	// Delivered means the shipment reached its consignee. Terminal.
	Delivered

	// Cancelled means the order was abandoned before delivery. Terminal.
	Cancelled
)

// Action is a named lifecycle command applied to an order.
// Every non-terminal status maps to exactly one primary (forward) action;
// ActionCancel is legal from any non-terminal status.
type Action string

const (
	ActionConfirm   Action = "confirm"
	ActionApprove   Action = "approve"
	ActionVerify    Action = "verify"
	ActionInbound   Action = "inbound"
	ActionReady     Action = "ready"
	ActionExport    Action = "export"
	ActionDelivered Action = "delivered"
	ActionCancel    Action = "cancel"

	// ActionBoardMove records a free-form kanban move when the board runs
	// under the BoardFreeMove policy. It is never a legal argument to Apply:
	// free moves go through ShippingOrder.MoveOnBoard, which sets the target
	// status directly and uses this action only for the history entry.
	ActionBoardMove Action = "board-move"
)

// ErrIllegalTransition is the sentinel all transition failures unwrap to.
var ErrIllegalTransition = errors.New("illegal transition")

// IllegalTransitionError reports a lifecycle action that is not legal from
// the order's current status: either the action is not the status's primary
// action (and not cancel), or the order is already terminal.
type IllegalTransitionError struct {
	From   Status
	Action Action
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal transition: action %q is not allowed from status %q", e.Action, e.From)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// NewIllegalTransitionError creates an IllegalTransitionError for the given
// status/action combination.
func NewIllegalTransitionError(from Status, action Action) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, Action: action}
}

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "Unknown",
		Draft:              "Draft",
		PendingForApproval: "PendingForApproval",
		Approved:           "Approved",
		DocsVerified:       "DocsVerified",
		EntryInWarehouse:   "EntryInWarehouse",
		ReadyToExport:      "ReadyToExport",
		InTransit:          "InTransit",
		Delivered:          "Delivered",
		Cancelled:          "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Draft:              "Draft",
		PendingForApproval: "PendingForApproval",
		Approved:           "Approved",
		DocsVerified:       "DocsVerified",
		EntryInWarehouse:   "EntryInWarehouse",
		ReadyToExport:      "ReadyToExport",
		InTransit:          "InTransit",
		Delivered:          "Delivered",
		Cancelled:          "Cancelled",
	}
}

// getPrimaryActions returns the forward action registered for each
// non-terminal status. Terminal statuses have no entry.
func getPrimaryActions() map[Status]Action {
	//nolint:exhaustive // terminal statuses intentionally have no primary action
	return map[Status]Action{
		Draft:              ActionConfirm,
		PendingForApproval: ActionApprove,
		Approved:           ActionVerify,
		DocsVerified:       ActionInbound,
		EntryInWarehouse:   ActionReady,
		ReadyToExport:      ActionExport,
		InTransit:          ActionDelivered,
	}
}

// getActionTargets returns the status each action leads to.
func getActionTargets() map[Action]Status {
	return map[Action]Status{
		ActionConfirm:   PendingForApproval,
		ActionApprove:   Approved,
		ActionVerify:    DocsVerified,
		ActionInbound:   EntryInWarehouse,
		ActionReady:     ReadyToExport,
		ActionExport:    InTransit,
		ActionDelivered: Delivered,
		ActionCancel:    Cancelled,
	}
}

// getValidActionStrings returns the set of actions accepted by Validate.
// It covers the lifecycle actions plus the board-move marker used in history.
func getValidActionStrings() map[Action]string {
	return map[Action]string{
		ActionConfirm:   "confirm",
		ActionApprove:   "approve",
		ActionVerify:    "verify",
		ActionInbound:   "inbound",
		ActionReady:     "ready",
		ActionExport:    "export",
		ActionDelivered: "delivered",
		ActionCancel:    "cancel",
		ActionBoardMove: "board-move",
	}
}

// getActionDescriptions returns the human-readable history description
// recorded for each successful action.
func getActionDescriptions() map[Action]string {
	return map[Action]string{
		ActionConfirm:   "order confirmed and submitted for approval",
		ActionApprove:   "order approved",
		ActionVerify:    "shipping documents verified",
		ActionInbound:   "goods received into warehouse",
		ActionReady:     "shipment packed and ready to export",
		ActionExport:    "shipment exported and in transit",
		ActionDelivered: "shipment delivered to consignee",
		ActionCancel:    "order cancelled",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any value outside the enum range are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer; safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses the name produced by String back into a Status.
// Unknown names yield a ValueIsInvalidError.
func StatusFromString(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", name),
	)
}

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// PrimaryAction returns the single expected forward action from this status.
// The second return value is false for terminal or invalid statuses, which
// have no primary action.
func (s Status) PrimaryAction() (Action, bool) {
	action, ok := getPrimaryActions()[s]
	return action, ok
}

// Apply transitions the status by the given action.
//
// A transition is legal only if the action is the status's primary action or
// the universal cancel action, and the status is not terminal. Illegal
// transitions return an IllegalTransitionError; they are reported, never
// silently ignored.
//
// Returns:
//   - (newStatus, nil) on a legal transition
//   - (0, *IllegalTransitionError) otherwise
func (s Status) Apply(action Action) (Status, error) {
	if err := action.Validate(); err != nil {
		return 0, err
	}

	if s.IsTerminal() {
		return 0, NewIllegalTransitionError(s, action)
	}

	if err := s.Validate(); err != nil {
		return 0, err
	}

	if action == ActionCancel {
		return Cancelled, nil
	}

	primary, ok := s.PrimaryAction()
	if !ok || primary != action {
		return 0, NewIllegalTransitionError(s, action)
	}

	return getActionTargets()[action], nil
}

// ActionTo returns the action that moves this status to the target status,
// if such a legal action exists. Used by the kanban board to translate a
// column drop into a lifecycle action.
func (s Status) ActionTo(target Status) (Action, bool) {
	if s.IsTerminal() {
		return "", false
	}

	if target == Cancelled {
		return ActionCancel, true
	}

	primary, ok := s.PrimaryAction()
	if !ok {
		return "", false
	}

	if getActionTargets()[primary] == target {
		return primary, true
	}

	return "", false
}

// Validate checks that the action is one of the known lifecycle actions.
func (a Action) Validate() error {
	if _, ok := getValidActionStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action is invalid", fmt.Errorf("%q is not a valid action", string(a)))
	}
	return nil
}

// Description returns the human-readable history description recorded when
// the action succeeds.
func (a Action) Description() string {
	if desc, ok := getActionDescriptions()[a]; ok {
		return desc
	}
	return string(a)
}

// String implements fmt.Stringer.
func (a Action) String() string {
	return string(a)
}
