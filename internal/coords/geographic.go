package coords

import (
	"fmt"

	"github.com/litescript/ls-sky/internal/numeric"
)

// Geographic coordinates: longitude in [-π, π) positive east, latitude in
// [-π/2, π/2] positive north.
type Geographic struct {
	angularPair
}

// GeographicFromDeg validates and returns a geographic position given in
// degrees.
func GeographicFromDeg(lonDeg, latDeg float64) (Geographic, error) {
	p, err := newPair(SystemGeographic, numeric.OfDeg(lonDeg), numeric.OfDeg(latDeg))
	return Geographic{p}, err
}

// MustGeographicDeg is GeographicFromDeg for values known to be in range.
func MustGeographicDeg(lonDeg, latDeg float64) Geographic {
	return must(GeographicFromDeg(lonDeg, latDeg))
}

// IsValidLonDeg reports whether lonDeg is in [-180°, 180°).
func IsValidLonDeg(lonDeg float64) bool {
	return policies[SystemGeographic].lon.Contains(numeric.OfDeg(lonDeg))
}

// IsValidLatDeg reports whether latDeg is in [-90°, 90°].
func IsValidLatDeg(latDeg float64) bool {
	return policies[SystemGeographic].lat.Contains(numeric.OfDeg(latDeg))
}

func (c Geographic) Lon() float64    { return c.lon }
func (c Geographic) LonDeg() float64 { return c.lonDeg() }
func (c Geographic) Lat() float64    { return c.lat }
func (c Geographic) LatDeg() float64 { return c.latDeg() }

func (c Geographic) String() string {
	return fmt.Sprintf("(lon=%.4f°, lat=%.4f°)", c.lonDeg(), c.latDeg())
}
