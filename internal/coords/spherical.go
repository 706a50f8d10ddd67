// Package coords defines the spherical and planar coordinate systems used
// to place objects on the sky, and the stereographic projection between them.
package coords

import (
	"fmt"

	"github.com/litescript/ls-sky/internal/numeric"
)

// System identifies a spherical coordinate system.
type System int

const (
	SystemEcliptic System = iota
	SystemEquatorial
	SystemHorizontal
	SystemGeographic
)

func (s System) String() string {
	switch s {
	case SystemEcliptic:
		return "ecliptic"
	case SystemEquatorial:
		return "equatorial"
	case SystemHorizontal:
		return "horizontal"
	case SystemGeographic:
		return "geographic"
	default:
		return "unknown"
	}
}

// policy holds the valid ranges of one system, in radians.
type policy struct {
	lonName string
	latName string
	lon     numeric.RightOpenInterval
	lat     numeric.ClosedInterval
}

var (
	fullTurn   = numeric.MustRightOpen(0, numeric.Tau)
	halfTurn   = numeric.MustSymmetricClosed(numeric.OfDeg(180))
	geoLonTurn = numeric.MustSymmetricRightOpen(numeric.Tau)
)

var policies = [...]policy{
	SystemEcliptic:   {lonName: "ecliptic longitude", latName: "ecliptic latitude", lon: fullTurn, lat: halfTurn},
	SystemEquatorial: {lonName: "right ascension", latName: "declination", lon: fullTurn, lat: halfTurn},
	SystemHorizontal: {lonName: "azimuth", latName: "altitude", lon: fullTurn, lat: halfTurn},
	SystemGeographic: {lonName: "longitude", latName: "latitude", lon: geoLonTurn, lat: halfTurn},
}

type doNotCompare [0]func()

// angularPair is the (longitude, latitude) shape shared by every spherical
// system. Values are only created through newPair.
type angularPair struct {
	_   doNotCompare
	lon float64
	lat float64
}

func newPair(sys System, lon, lat float64) (angularPair, error) {
	p := policies[sys]
	if !p.lon.Contains(lon) {
		return angularPair{}, fmt.Errorf("%w: %s %s %g not in %s",
			numeric.ErrInvalidArgument, sys, p.lonName, lon, p.lon)
	}
	if !p.lat.Contains(lat) {
		return angularPair{}, fmt.Errorf("%w: %s %s %g not in %s",
			numeric.ErrInvalidArgument, sys, p.latName, lat, p.lat)
	}
	return angularPair{lon: lon, lat: lat}, nil
}

func (p angularPair) lonDeg() float64 { return numeric.ToDeg(p.lon) }
func (p angularPair) latDeg() float64 { return numeric.ToDeg(p.lat) }

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
