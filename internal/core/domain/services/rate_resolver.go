package services

import (
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/refdata"

	"github.com/samber/lo"
)

// ErrRateNotFound is returned when no rate card covers the requested route,
// service and date. This occurs when no card exists for the pair at all, or
// when every matching card's validity window excludes the pricing date.
var ErrRateNotFound = errors.New("rate not found")

// RateResolver is a domain service that selects the rate card governing a
// shipment. It is pure: the caller supplies the candidate cards (typically
// the repository's snapshot for the route/service pair) and the resolver
// applies the validity-window rules to them.
//
// Business rules:
//   - A card applies when its route and service match and the pricing date
//     falls inside its window: effectiveDate <= date, and date strictly
//     before deletionDate when one is set
//   - When several windows contain the date, the card with the latest
//     effectiveDate wins — the most recently published rate is the
//     operative one
//   - No applicable card is an error, never a silent zero rate
type RateResolver struct{}

// NewRateResolver creates a new RateResolver instance.
func NewRateResolver() RateResolver {
	return RateResolver{}
}

// Resolve returns the rate card governing the given route and service at the
// given date.
//
// Returns:
//   - (card, nil) when exactly one card wins
//   - (zero, error wrapping ErrRateNotFound) when no card applies; the error
//     names the route, service and date for diagnostics
func (r RateResolver) Resolve(
	cards []refdata.RateCard,
	routeID, serviceID kernel.UUID,
	at time.Time,
) (refdata.RateCard, error) {
	candidates := lo.Filter(cards, func(card refdata.RateCard, _ int) bool {
		return card.AppliesTo(routeID, serviceID) && card.ActiveAt(at)
	})

	if len(candidates) == 0 {
		return refdata.RateCard{}, fmt.Errorf(
			"%w: route %s, service %s, at %s",
			ErrRateNotFound, routeID, serviceID, at.Format(time.RFC3339),
		)
	}

	best := lo.MaxBy(candidates, func(a, b refdata.RateCard) bool {
		return a.EffectiveDate().After(b.EffectiveDate())
	})
	return best, nil
}
