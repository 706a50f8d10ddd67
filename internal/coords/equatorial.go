package coords

import (
	"fmt"

	"github.com/litescript/ls-sky/internal/numeric"
)

// Equatorial coordinates: right ascension α in [0, 2π), declination δ in
// [-π/2, π/2].
type Equatorial struct {
	angularPair
}

// NewEquatorial validates and returns equatorial coordinates in radians.
func NewEquatorial(ra, dec float64) (Equatorial, error) {
	p, err := newPair(SystemEquatorial, ra, dec)
	return Equatorial{p}, err
}

// MustEquatorial is NewEquatorial for values known to be in range.
func MustEquatorial(ra, dec float64) Equatorial {
	return must(NewEquatorial(ra, dec))
}

func (c Equatorial) RA() float64     { return c.lon }
func (c Equatorial) RADeg() float64  { return c.lonDeg() }
func (c Equatorial) RAHr() float64   { return numeric.ToHr(c.lon) }
func (c Equatorial) Dec() float64    { return c.lat }
func (c Equatorial) DecDeg() float64 { return c.latDeg() }

func (c Equatorial) String() string {
	return fmt.Sprintf("(ra=%.4fh, dec=%.4f°)", c.RAHr(), c.latDeg())
}
