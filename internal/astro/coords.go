// Package astro computes the positions of the Sun, the Moon, the planets and
// the catalogue stars as seen by an observer, and the projected sky that
// results.
package astro

import (
	"math"
	"time"

	"github.com/litescript/ls-sky/internal/coords"
	"github.com/litescript/ls-sky/internal/numeric"
)

// Mean obliquity of the ecliptic as a function of Julian centuries since J2000.
var obliquity = numeric.MustPolynomial(
	numeric.OfArcsec(0.00181),
	numeric.OfArcsec(-0.0006),
	numeric.OfArcsec(-46.815),
	numeric.MustDMS(23, 26, 21.45),
)

type doNotCompare [0]func()

// EclipticToEquatorialConversion converts ecliptic coordinates to
// equatorial coordinates for one instant.
type EclipticToEquatorialConversion struct {
	_      doNotCompare
	cosEps float64
	sinEps float64
}

// NewEclipticToEquatorial returns the conversion valid at t.
func NewEclipticToEquatorial(t time.Time) *EclipticToEquatorialConversion {
	eps := obliquity.At(J2000.JulianCenturiesUntil(t))
	return &EclipticToEquatorialConversion{
		cosEps: math.Cos(eps),
		sinEps: math.Sin(eps),
	}
}

// Obliquity returns the obliquity of the ecliptic used by the conversion.
func (c *EclipticToEquatorialConversion) Obliquity() float64 {
	return math.Atan2(c.sinEps, c.cosEps)
}

// Apply converts ecl to equatorial coordinates.
func (c *EclipticToEquatorialConversion) Apply(ecl coords.Ecliptic) coords.Equatorial {
	sinLon := math.Sin(ecl.Lon())
	ra := math.Atan2(sinLon*c.cosEps-math.Tan(ecl.Lat())*c.sinEps, math.Cos(ecl.Lon()))
	sinDec := math.Sin(ecl.Lat())*c.cosEps + math.Cos(ecl.Lat())*c.sinEps*sinLon
	dec := math.Asin(math.Max(-1, math.Min(1, sinDec)))
	return coords.MustEquatorial(numeric.NormalizePositive(ra), dec)
}

// EquatorialToHorizontalConversion converts equatorial coordinates to the
// horizontal coordinates of one observer at one instant.
type EquatorialToHorizontalConversion struct {
	_      doNotCompare
	lst    float64
	cosLat float64
	sinLat float64
}

// NewEquatorialToHorizontal returns the conversion for an observer at
// where at instant t.
func NewEquatorialToHorizontal(t time.Time, where coords.Geographic) *EquatorialToHorizontalConversion {
	return &EquatorialToHorizontalConversion{
		lst:    LocalSiderealTime(t, where),
		cosLat: math.Cos(where.Lat()),
		sinLat: math.Sin(where.Lat()),
	}
}

// Apply converts eq to horizontal coordinates.
func (c *EquatorialToHorizontalConversion) Apply(eq coords.Equatorial) coords.Horizontal {
	hourAngle := c.lst - eq.RA()
	sinDec, cosDec := math.Sin(eq.Dec()), math.Cos(eq.Dec())

	sinAlt := sinDec*c.sinLat + cosDec*c.cosLat*math.Cos(hourAngle)
	alt := math.Asin(math.Max(-1, math.Min(1, sinAlt)))
	az := math.Atan2(-cosDec*c.cosLat*math.Sin(hourAngle), sinDec-c.sinLat*sinAlt)

	return coords.MustHorizontal(numeric.NormalizePositive(az), alt)
}
