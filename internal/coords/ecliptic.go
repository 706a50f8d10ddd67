package coords

import "fmt"

// Ecliptic coordinates: longitude λ in [0, 2π), latitude β in [-π/2, π/2].
type Ecliptic struct {
	angularPair
}

// NewEcliptic validates and returns ecliptic coordinates in radians.
func NewEcliptic(lon, lat float64) (Ecliptic, error) {
	p, err := newPair(SystemEcliptic, lon, lat)
	return Ecliptic{p}, err
}

// MustEcliptic is NewEcliptic for values known to be in range.
func MustEcliptic(lon, lat float64) Ecliptic {
	return must(NewEcliptic(lon, lat))
}

func (c Ecliptic) Lon() float64    { return c.lon }
func (c Ecliptic) LonDeg() float64 { return c.lonDeg() }
func (c Ecliptic) Lat() float64    { return c.lat }
func (c Ecliptic) LatDeg() float64 { return c.latDeg() }

func (c Ecliptic) String() string {
	return fmt.Sprintf("(λ=%.4f°, β=%.4f°)", c.lonDeg(), c.latDeg())
}
