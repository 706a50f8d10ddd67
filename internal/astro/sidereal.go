package astro

import (
	"time"

	"github.com/litescript/ls-sky/internal/coords"
	"github.com/litescript/ls-sky/internal/numeric"
)

var (
	siderealMidnight = numeric.MustPolynomial(0.000025862, 2400.051336, 6.697374558)
	siderealHours    = numeric.MustPolynomial(1.002737909, 0)
)

// GreenwichSiderealTime returns the Greenwich sidereal time at t, in
// radians in [0, 2π).
func GreenwichSiderealTime(t time.Time) float64 {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	centuries := J2000.JulianCenturiesUntil(midnight)
	hours := float64(t.UnixMilli()-midnight.UnixMilli()) / millisPerHour

	s := siderealMidnight.At(centuries) + siderealHours.At(hours)
	return numeric.NormalizePositive(numeric.OfHr(s))
}

// LocalSiderealTime returns the sidereal time at t for an observer at
// where, in radians in [0, 2π).
func LocalSiderealTime(t time.Time, where coords.Geographic) float64 {
	return numeric.NormalizePositive(GreenwichSiderealTime(t) + where.Lon())
}
