package astro

import (
	"math"

	"github.com/litescript/ls-sky/internal/coords"
	"github.com/litescript/ls-sky/internal/numeric"
)

// Orbital elements of the Earth around the Sun at J2010.
const (
	sunLonAtEpochDeg   = 279.557208
	sunPerigeeLonDeg   = 283.112438
	sunEccentricity    = 0.016705
	sunAngularSizeDeg  = 0.533128
	tropicalYearInDays = 365.242191
	sunMagnitude       = -26.7
)

// Sun is the Sun as seen from the Earth at one instant.
type Sun struct {
	body
	eclipticPos coords.Ecliptic
	meanAnomaly float64
}

// NewSun returns the Sun at the given ecliptic and equatorial positions.
func NewSun(ecl coords.Ecliptic, eq coords.Equatorial, angularSize, meanAnomaly float64) (*Sun, error) {
	b, err := newBody("Sun", eq, angularSize, sunMagnitude)
	if err != nil {
		return nil, err
	}
	return &Sun{body: b, eclipticPos: ecl, meanAnomaly: meanAnomaly}, nil
}

// EclipticPos returns the ecliptic position of the Sun.
func (s *Sun) EclipticPos() coords.Ecliptic { return s.eclipticPos }

// MeanAnomaly returns the mean anomaly in radians. It is not reduced to
// [0, 2π).
func (s *Sun) MeanAnomaly() float64 { return s.meanAnomaly }

// SunAt returns the Sun the given number of days after J2010.
func SunAt(daysSinceJ2010 float64, conv *EclipticToEquatorialConversion) *Sun {
	lonAtEpoch := numeric.OfDeg(sunLonAtEpochDeg)
	perigeeLon := numeric.OfDeg(sunPerigeeLonDeg)

	meanAnomaly := (numeric.Tau/tropicalYearInDays)*daysSinceJ2010 + lonAtEpoch - perigeeLon
	trueAnomaly := meanAnomaly + 2*sunEccentricity*math.Sin(meanAnomaly)

	ecl := coords.MustEcliptic(numeric.NormalizePositive(trueAnomaly+perigeeLon), 0)
	size := numeric.OfDeg(sunAngularSizeDeg) *
		(1 + sunEccentricity*math.Cos(trueAnomaly)) / (1 - sunEccentricity*sunEccentricity)

	sun, err := NewSun(ecl, conv.Apply(ecl), size, meanAnomaly)
	if err != nil {
		// size is positive for any eccentricity below 1
		panic(err)
	}
	return sun
}
