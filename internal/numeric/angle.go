// Package numeric provides the angle, interval and polynomial primitives
// shared by the coordinate and orbital models.
package numeric

import (
	"fmt"
	"math"

	"github.com/soniakeys/unit"
)

// Tau is a full turn in radians.
const Tau = 2 * math.Pi

var fullTurn = MustRightOpen(0, Tau)

// NormalizePositive reduces rad into [0, 2π).
func NormalizePositive(rad float64) float64 {
	return fullTurn.Reduce(rad)
}

// OfDeg converts degrees to radians.
func OfDeg(deg float64) float64 {
	return unit.AngleFromDeg(deg).Rad()
}

// ToDeg converts radians to degrees.
func ToDeg(rad float64) float64 {
	return unit.Angle(rad).Deg()
}

// OfArcsec converts arcseconds to radians.
func OfArcsec(sec float64) float64 {
	return unit.AngleFromSec(sec).Rad()
}

// ToArcsec converts radians to arcseconds.
func ToArcsec(rad float64) float64 {
	return unit.Angle(rad).Sec()
}

// OfDMS converts a positive degrees/minutes/seconds triple to radians.
// Minutes and seconds must lie in [0, 60).
func OfDMS(deg, min int, sec float64) (float64, error) {
	if deg < 0 || min < 0 || min >= 60 || sec < 0 || sec >= 60 {
		return 0, fmt.Errorf("%w: %d°%d′%g″", ErrInvalidArgument, deg, min, sec)
	}
	return unit.NewAngle(' ', deg, min, sec).Rad(), nil
}

// MustDMS is OfDMS for constant inputs; it panics on error.
func MustDMS(deg, min int, sec float64) float64 {
	rad, err := OfDMS(deg, min, sec)
	if err != nil {
		panic(err)
	}
	return rad
}

// OfHr converts hours to radians.
func OfHr(hr float64) float64 {
	return unit.HourAngleFromHour(hr).Rad()
}

// ToHr converts radians to hours.
func ToHr(rad float64) float64 {
	return unit.HourAngle(rad).Hour()
}
