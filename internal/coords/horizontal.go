package coords

import (
	"fmt"
	"math"

	"github.com/litescript/ls-sky/internal/numeric"
)

// Horizontal coordinates: azimuth in [0, 2π) measured from north through
// east, altitude in [-π/2, π/2].
type Horizontal struct {
	angularPair
}

// NewHorizontal validates and returns horizontal coordinates in radians.
func NewHorizontal(az, alt float64) (Horizontal, error) {
	p, err := newPair(SystemHorizontal, az, alt)
	return Horizontal{p}, err
}

// HorizontalFromDeg is NewHorizontal with both angles in degrees.
func HorizontalFromDeg(azDeg, altDeg float64) (Horizontal, error) {
	return NewHorizontal(numeric.OfDeg(azDeg), numeric.OfDeg(altDeg))
}

// MustHorizontal is NewHorizontal for values known to be in range.
func MustHorizontal(az, alt float64) Horizontal {
	return must(NewHorizontal(az, alt))
}

// MustHorizontalDeg is HorizontalFromDeg for values known to be in range.
func MustHorizontalDeg(azDeg, altDeg float64) Horizontal {
	return must(HorizontalFromDeg(azDeg, altDeg))
}

func (c Horizontal) Az() float64     { return c.lon }
func (c Horizontal) AzDeg() float64  { return c.lonDeg() }
func (c Horizontal) Alt() float64    { return c.lat }
func (c Horizontal) AltDeg() float64 { return c.latDeg() }

// AzOctantName names the compass octant of the azimuth using the given
// names for the four cardinal points; intercardinal octants concatenate
// them north/south first ("ne", "sw").
func (c Horizontal) AzOctantName(n, e, s, w string) string {
	switch int((c.lonDeg() + 22.5) / 45) {
	case 1:
		return n + e
	case 2:
		return e
	case 3:
		return s + e
	case 4:
		return s
	case 5:
		return s + w
	case 6:
		return w
	case 7:
		return n + w
	default:
		return n
	}
}

// AngularDistanceTo returns the great-circle distance to o in radians.
func (c Horizontal) AngularDistanceTo(o Horizontal) float64 {
	cosD := math.Sin(c.lat)*math.Sin(o.lat) +
		math.Cos(c.lat)*math.Cos(o.lat)*math.Cos(c.lon-o.lon)
	// Clamp rounding overshoot so identical points give 0, not NaN
	return math.Acos(math.Max(-1, math.Min(1, cosD)))
}

func (c Horizontal) String() string {
	return fmt.Sprintf("(az=%.4f°, alt=%.4f°)", c.lonDeg(), c.latDeg())
}
