package order

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

// ErrHistoryEntryIsNotConstructed is returned when a HistoryEntry was not
// created through the NewHistoryEntry constructor.
var ErrHistoryEntryIsNotConstructed = errors.New(
	"HistoryEntry must be created via NewHistoryEntry constructor",
)

// HistoryEntry records one status-changing event on a shipping order:
// when it happened, which user triggered it, and a human-readable
// description of the action. Entries are append-only; the order's history
// is never rewritten.
type HistoryEntry struct {
	at           time.Time
	actingUserID kernel.UUID
	action       Action
	fromStatus   Status
	toStatus     Status
	description  string

	isConstructed bool
}

// NewHistoryEntry creates a validated HistoryEntry.
func NewHistoryEntry(
	at time.Time,
	actingUserID kernel.UUID,
	action Action,
	fromStatus, toStatus Status,
	description string,
) (HistoryEntry, error) {
	if at.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("at")
	}
	if err := actingUserID.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := action.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if err := errors.Join(fromStatus.Validate(), toStatus.Validate()); err != nil {
		return HistoryEntry{}, err
	}
	if description == "" {
		return HistoryEntry{}, errs.NewValueIsRequiredError("description")
	}

	return HistoryEntry{
		at:            at,
		actingUserID:  actingUserID,
		action:        action,
		fromStatus:    fromStatus,
		toStatus:      toStatus,
		description:   description,
		isConstructed: true,
	}, nil
}

// Validate ensures the HistoryEntry was created via NewHistoryEntry.
func (h HistoryEntry) Validate() error {
	if !h.isConstructed {
		return ErrHistoryEntryIsNotConstructed
	}
	return nil
}

// At returns the timestamp of the event.
func (h HistoryEntry) At() time.Time {
	return h.at
}

// ActingUserID returns the id of the user who triggered the event.
func (h HistoryEntry) ActingUserID() kernel.UUID {
	return h.actingUserID
}

// Action returns the lifecycle action that produced the event.
func (h HistoryEntry) Action() Action {
	return h.action
}

// FromStatus returns the order status before the event.
func (h HistoryEntry) FromStatus() Status {
	return h.fromStatus
}

// ToStatus returns the order status after the event.
func (h HistoryEntry) ToStatus() Status {
	return h.toStatus
}

// Description returns the human-readable description of the event.
func (h HistoryEntry) Description() string {
	return h.description
}
