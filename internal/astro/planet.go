package astro

import (
	"math"

	"github.com/litescript/ls-sky/internal/coords"
	"github.com/litescript/ls-sky/internal/numeric"
)

// Planet is a planet as seen from the Earth at one instant.
type Planet struct {
	body
}

// NewPlanet returns a planet at the given position.
func NewPlanet(name string, eq coords.Equatorial, angularSize, magnitude float64) (*Planet, error) {
	b, err := newBody(name, eq, angularSize, magnitude)
	if err != nil {
		return nil, err
	}
	return &Planet{body: b}, nil
}

// Side tells on which side of the Earth's orbit a planet moves.
type Side int

const (
	// Reference is the Earth itself.
	Reference Side = iota
	// Inferior planets orbit inside the Earth's orbit.
	Inferior
	// Superior planets orbit outside the Earth's orbit.
	Superior
)

// PlanetModel holds the J2010 orbital elements of one planet. Angles are
// stored in radians.
type PlanetModel struct {
	name         string
	side         Side
	tropicalYear float64 // in tropical years
	lonAtEpoch   float64
	perigeeLon   float64
	eccentricity float64
	semiMajor    float64 // AU
	inclination  float64
	nodeLon      float64
	sizeAt1AU    float64
	magAt1AU     float64
}

func newPlanetModel(name string, side Side, tropicalYear, lonDeg, perigeeDeg, e, a, inclDeg, nodeDeg, sizeArcsec, mag float64) *PlanetModel {
	return &PlanetModel{
		name:         name,
		side:         side,
		tropicalYear: tropicalYear,
		lonAtEpoch:   numeric.OfDeg(lonDeg),
		perigeeLon:   numeric.OfDeg(perigeeDeg),
		eccentricity: e,
		semiMajor:    a,
		inclination:  numeric.OfDeg(inclDeg),
		nodeLon:      numeric.OfDeg(nodeDeg),
		sizeAt1AU:    numeric.OfArcsec(sizeArcsec),
		magAt1AU:     mag,
	}
}

var (
	Mercury = newPlanetModel("Mercury", Inferior, 0.24085, 75.5671, 77.612, 0.205627, 0.387098, 7.0051, 48.449, 6.74, -0.42)
	Venus   = newPlanetModel("Venus", Inferior, 0.615207, 272.30044, 131.54, 0.006812, 0.723329, 3.3947, 76.769, 16.92, -4.40)
	Earth   = newPlanetModel("Earth", Reference, 0.999996, 99.556772, 103.2055, 0.016671, 0.999985, 0, 0, 0, 0)
	Mars    = newPlanetModel("Mars", Superior, 1.880765, 109.09646, 336.217, 0.093348, 1.523689, 1.8497, 49.632, 9.36, -1.52)
	Jupiter = newPlanetModel("Jupiter", Superior, 11.857911, 337.917132, 14.6633, 0.048907, 5.20278, 1.3035, 100.595, 196.74, -9.40)
	Saturn  = newPlanetModel("Saturn", Superior, 29.310579, 172.398316, 89.567, 0.053853, 9.51134, 2.4873, 113.752, 165.60, -8.88)
	Uranus  = newPlanetModel("Uranus", Superior, 84.039492, 356.135400, 172.884833, 0.046321, 19.21814, 0.773059, 73.926961, 65.80, -7.19)
	Neptune = newPlanetModel("Neptune", Superior, 165.84539, 326.895127, 23.07, 0.010483, 30.1985, 1.7673, 131.879, 62.20, -6.87)
)

// AllPlanetModels lists every model in order of distance from the Sun,
// the Earth included.
var AllPlanetModels = []*PlanetModel{Mercury, Venus, Earth, Mars, Jupiter, Saturn, Uranus, Neptune}

// Name returns the planet name.
func (m *PlanetModel) Name() string { return m.name }

// Side returns the position of the orbit relative to the Earth's.
func (m *PlanetModel) Side() Side { return m.side }

// orbit returns the heliocentric radius (AU) and longitude in the orbital
// plane.
func (m *PlanetModel) orbit(daysSinceJ2010 float64) (radius, lon float64) {
	meanAnomaly := (numeric.Tau/tropicalYearInDays)*(daysSinceJ2010/m.tropicalYear) + m.lonAtEpoch - m.perigeeLon
	trueAnomaly := meanAnomaly + 2*m.eccentricity*math.Sin(meanAnomaly)
	radius = m.semiMajor * (1 - m.eccentricity*m.eccentricity) / (1 + m.eccentricity*math.Cos(trueAnomaly))
	return radius, trueAnomaly + m.perigeeLon
}

// Heliocentric returns the heliocentric ecliptic position of the planet in
// AU, with X toward the vernal equinox and Z toward the north ecliptic pole.
func (m *PlanetModel) Heliocentric(daysSinceJ2010 float64) Vec3 {
	r, l := m.orbit(daysSinceJ2010)
	lat := math.Asin(math.Sin(l-m.nodeLon) * math.Sin(m.inclination))
	lon := math.Atan2(math.Sin(l-m.nodeLon)*math.Cos(m.inclination), math.Cos(l-m.nodeLon)) + m.nodeLon
	return Vec3{
		X: r * math.Cos(lat) * math.Cos(lon),
		Y: r * math.Cos(lat) * math.Sin(lon),
		Z: r * math.Sin(lat),
	}
}

// At returns the planet as seen from the Earth the given number of days
// after J2010. ok is false for the Earth model, which cannot observe itself.
func (m *PlanetModel) At(daysSinceJ2010 float64, conv *EclipticToEquatorialConversion) (p *Planet, ok bool) {
	if m.side == Reference {
		return nil, false
	}

	r, l := m.orbit(daysSinceJ2010)
	sinFromNode := math.Sin(l - m.nodeLon)
	helioLat := math.Asin(sinFromNode * math.Sin(m.inclination))
	projR := r * math.Cos(helioLat)
	projL := math.Atan2(sinFromNode*math.Cos(m.inclination), math.Cos(l-m.nodeLon)) + m.nodeLon

	earthR, earthL := Earth.orbit(daysSinceJ2010)

	dist := math.Sqrt(earthR*earthR + r*r - 2*earthR*r*math.Cos(l-earthL)*math.Cos(helioLat))

	var lon float64
	if m.side == Inferior {
		lon = math.Pi + earthL + math.Atan2(projR*math.Sin(earthL-projL), earthR-projR*math.Cos(earthL-projL))
	} else {
		lon = projL + math.Atan2(earthR*math.Sin(projL-earthL), projR-earthR*math.Cos(projL-earthL))
	}
	lon = numeric.NormalizePositive(lon)
	lat := math.Atan(projR * math.Tan(helioLat) * math.Sin(lon-projL) / (earthR * math.Sin(projL-earthL)))

	phase := (1 + math.Cos(lon-l)) / 2
	mag := m.magAt1AU + 5*math.Log10(r*dist/math.Sqrt(phase))

	ecl := coords.MustEcliptic(lon, lat)
	planet, err := NewPlanet(m.name, conv.Apply(ecl), m.sizeAt1AU/dist, mag)
	if err != nil {
		panic(err)
	}
	return planet, true
}

func (m *PlanetModel) String() string { return m.name }
