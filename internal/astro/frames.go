package astro

import (
	"math"

	"github.com/litescript/ls-sky/internal/numeric"
)

// Vec3 is a vector in the heliocentric ecliptic frame, in AU.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the length of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Sub returns v - u.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// EclipticLon returns the longitude of the vector in radians, in [0, 2π).
func (v Vec3) EclipticLon() float64 {
	return numeric.NormalizePositive(math.Atan2(v.Y, v.X))
}

// EclipticLat returns the latitude of the vector in radians.
func (v Vec3) EclipticLat() float64 {
	r := v.Norm()
	if r == 0 {
		return 0
	}
	return math.Asin(v.Z / r)
}

// ProjectedPoint is a position in the top-down solar system view.
type ProjectedPoint struct {
	X float64 // toward the vernal equinox
	Y float64
	R float64 // true distance from the Sun, AU
	Z float64 // height above the ecliptic, AU
}

// ScaleMode defines how radial distances are mapped to the view.
type ScaleMode int

const (
	// ScaleLogR maps r to log10(r+1), keeping Mercury and Neptune on screen.
	ScaleLogR ScaleMode = iota
	// ScaleInner is linear up to 5 AU; farther planets sit on the edge.
	ScaleInner
	// ScaleOuter is linear to 5 AU on the inner half, logarithmic beyond.
	ScaleOuter
)

func (m ScaleMode) String() string {
	switch m {
	case ScaleInner:
		return "inner"
	case ScaleOuter:
		return "outer"
	default:
		return "log"
	}
}

// ProjectionConfig configures ProjectEclipticTopDown.
type ProjectionConfig struct {
	Scale float64
	Mode  ScaleMode
}

// DefaultProjectionConfig returns a logarithmic unit-scale projection.
func DefaultProjectionConfig() ProjectionConfig {
	return ProjectionConfig{Scale: 1, Mode: ScaleLogR}
}

// ProjectEclipticTopDown projects v onto the ecliptic plane as seen from
// the north ecliptic pole.
func ProjectEclipticTopDown(v Vec3, cfg ProjectionConfig) ProjectedPoint {
	rPlane := math.Hypot(v.X, v.Y)
	rDisplay := scaleRadius(rPlane, cfg.Mode)
	angle := math.Atan2(v.Y, v.X)

	return ProjectedPoint{
		X: rDisplay * math.Cos(angle) * cfg.Scale,
		Y: rDisplay * math.Sin(angle) * cfg.Scale,
		R: v.Norm(),
		Z: v.Z,
	}
}

func scaleRadius(rAU float64, mode ScaleMode) float64 {
	switch mode {
	case ScaleInner:
		return math.Min(rAU, 5)
	case ScaleOuter:
		if rAU <= 5 {
			return rAU / 5 * 0.5
		}
		return 0.5 + math.Log10(rAU/5+1)*0.5
	default:
		return math.Log10(rAU + 1)
	}
}

// OrbitSample is the heliocentric position of one planet.
type OrbitSample struct {
	Model *PlanetModel
	Pos   Vec3
}

// SolarSystem returns the heliocentric position of every planet, the
// Earth included, the given number of days after J2010.
func SolarSystem(daysSinceJ2010 float64) []OrbitSample {
	out := make([]OrbitSample, len(AllPlanetModels))
	for i, m := range AllPlanetModels {
		out[i] = OrbitSample{Model: m, Pos: m.Heliocentric(daysSinceJ2010)}
	}
	return out
}

// OrbitPath samples one full orbit of m as n heliocentric positions,
// starting daysSinceJ2010 days after J2010.
func OrbitPath(m *PlanetModel, daysSinceJ2010 float64, n int) []Vec3 {
	if n < 2 {
		n = 2
	}
	period := m.tropicalYear * tropicalYearInDays
	path := make([]Vec3, n)
	for i := range path {
		path[i] = m.Heliocentric(daysSinceJ2010 + period*float64(i)/float64(n))
	}
	return path
}
