package astro

import (
	"fmt"
	"math"

	"github.com/litescript/ls-sky/internal/coords"
	"github.com/litescript/ls-sky/internal/numeric"
)

// Lunar orbit at J2010. Angles and daily motions are in degrees.
const (
	moonMeanLonAtEpoch   = 91.929336
	moonPerigeeAtEpoch   = 130.143076
	moonNodeAtEpoch      = 291.682547
	moonInclination      = 5.145396
	moonEccentricity     = 0.0549
	moonAngularSizeDeg   = 0.5181
	moonDailyMotion      = 13.1763966
	moonPerigeeMotion    = 0.1114041
	moonNodeMotion       = 0.0529539
	moonEvection         = 1.2739
	moonAnnualEquation   = 0.1858
	moonThirdCorrection  = 0.37
	moonEquationCentre   = 6.2886
	moonFourthCorrection = 0.214
	moonVariation        = 0.6583
	moonNodeCorrection   = 0.16
)

var phaseRange = numeric.MustClosed(0, 1)

// Moon is the Moon as seen from the Earth at one instant.
type Moon struct {
	body
	phase float64
}

// NewMoon returns the Moon with the given illuminated fraction in [0, 1].
func NewMoon(eq coords.Equatorial, angularSize, magnitude, phase float64) (*Moon, error) {
	if _, err := numeric.CheckInInterval(phaseRange, phase); err != nil {
		return nil, fmt.Errorf("moon phase: %w", err)
	}
	b, err := newBody("Moon", eq, angularSize, magnitude)
	if err != nil {
		return nil, err
	}
	return &Moon{body: b, phase: phase}, nil
}

// Phase returns the illuminated fraction of the disc.
func (m *Moon) Phase() float64 { return m.phase }

func (m *Moon) Info() string {
	return fmt.Sprintf("%s (%.1f%%)", m.name, m.phase*100)
}

func (m *Moon) String() string { return m.Info() }

// MoonAt returns the Moon the given number of days after J2010.
func MoonAt(daysSinceJ2010 float64, conv *EclipticToEquatorialConversion) *Moon {
	sun := SunAt(daysSinceJ2010, conv)
	sunAnomaly := sun.MeanAnomaly()
	sunLon := sun.EclipticPos().Lon()
	sinSunAnomaly := math.Sin(sunAnomaly)
	d := daysSinceJ2010

	// Orbital longitude
	meanLon := numeric.OfDeg(moonDailyMotion)*d + numeric.OfDeg(moonMeanLonAtEpoch)
	meanAnomaly := meanLon - numeric.OfDeg(moonPerigeeMotion)*d - numeric.OfDeg(moonPerigeeAtEpoch)
	evection := numeric.OfDeg(moonEvection) * math.Sin(2*(meanLon-sunLon)-meanAnomaly)
	annual := numeric.OfDeg(moonAnnualEquation) * sinSunAnomaly
	third := numeric.OfDeg(moonThirdCorrection) * sinSunAnomaly
	corrAnomaly := meanAnomaly + evection - annual - third
	centre := numeric.OfDeg(moonEquationCentre) * math.Sin(corrAnomaly)
	fourth := numeric.OfDeg(moonFourthCorrection) * math.Sin(2*corrAnomaly)
	corrLon := meanLon + evection + centre - annual + fourth
	variation := numeric.OfDeg(moonVariation) * math.Sin(2*(corrLon-sunLon))
	trueLon := corrLon + variation

	// Ecliptic position
	node := numeric.OfDeg(moonNodeAtEpoch) - numeric.OfDeg(moonNodeMotion)*d
	corrNode := node - numeric.OfDeg(moonNodeCorrection)*sinSunAnomaly
	incl := numeric.OfDeg(moonInclination)
	sinFromNode := math.Sin(trueLon - corrNode)
	lon := math.Atan2(sinFromNode*math.Cos(incl), math.Cos(trueLon-corrNode)) + corrNode
	lat := math.Asin(sinFromNode * math.Sin(incl))

	phase := (1 - math.Cos(trueLon-sunLon)) / 2

	rho := (1 - moonEccentricity*moonEccentricity) / (1 + moonEccentricity*math.Cos(corrAnomaly+centre))
	size := numeric.OfDeg(moonAngularSizeDeg) / rho

	ecl := coords.MustEcliptic(numeric.NormalizePositive(lon), lat)
	moon, err := NewMoon(conv.Apply(ecl), size, 0, phase)
	if err != nil {
		panic(err)
	}
	return moon
}
