package refdata

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

// ErrRouteIsNotConstructed is returned when a Route instance was not created
// through the NewRoute constructor.
var ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute constructor")

// Route identifies an origin/destination city+country pair within a zone.
// It is immutable reference data: orders reference a route by id, and rate
// cards price the (route, service) combination.
type Route struct {
	id                 kernel.UUID
	originCity         string
	originCountry      string
	destinationCity    string
	destinationCountry string
	zoneID             kernel.UUID

	isConstructed bool
}

// NewRoute creates a validated Route.
// The id and zone id must be valid UUIDs and every city/country name must be
// non-empty.
func NewRoute(
	id kernel.UUID,
	originCity, originCountry, destinationCity, destinationCountry string,
	zoneID kernel.UUID,
) (Route, error) {
	if err := id.Validate(); err != nil {
		return Route{}, err
	}
	if err := zoneID.Validate(); err != nil {
		return Route{}, err
	}

	names := []struct {
		param string
		value string
	}{
		{"originCity", originCity},
		{"originCountry", originCountry},
		{"destinationCity", destinationCity},
		{"destinationCountry", destinationCountry},
	}
	for _, n := range names {
		if n.value == "" {
			return Route{}, errs.NewValueIsRequiredError(n.param)
		}
	}

	return Route{
		id:                 id,
		originCity:         originCity,
		originCountry:      originCountry,
		destinationCity:    destinationCity,
		destinationCountry: destinationCountry,
		zoneID:             zoneID,
		isConstructed:      true,
	}, nil
}

// Validate ensures the Route was created via NewRoute.
func (r Route) Validate() error {
	if !r.isConstructed {
		return ErrRouteIsNotConstructed
	}
	return nil
}

// ID returns the route's unique identifier.
func (r Route) ID() kernel.UUID {
	return r.id
}

// OriginCity returns the origin city name.
func (r Route) OriginCity() string {
	return r.originCity
}

// OriginCountry returns the origin country name.
func (r Route) OriginCountry() string {
	return r.originCountry
}

// DestinationCity returns the destination city name.
func (r Route) DestinationCity() string {
	return r.destinationCity
}

// DestinationCountry returns the destination country name.
func (r Route) DestinationCountry() string {
	return r.destinationCountry
}

// ZoneID returns the id of the zone the route belongs to.
func (r Route) ZoneID() kernel.UUID {
	return r.zoneID
}
