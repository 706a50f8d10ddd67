package astro

import (
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-sky/internal/coords"
)

// ObservedSky is the sky seen by one observer at one instant, projected on
// the plane. Positions are computed once, at construction.
type ObservedSky struct {
	when  time.Time
	where coords.Geographic
	proj  coords.StereographicProjection
	cat   *StarCatalogue

	sun     *Sun
	sunPos  coords.Cartesian
	moon    *Moon
	moonPos coords.Cartesian

	planets   []*Planet
	planetPos []float64 // x0, y0, x1, y1, ...

	starPos  []float64 // parallel to cat.Stars()
	hipIndex map[int]int
}

// NewObservedSky computes the sky at when, seen from where through proj.
func NewObservedSky(when time.Time, where coords.Geographic, proj coords.StereographicProjection, cat *StarCatalogue) *ObservedSky {
	eclToEq := NewEclipticToEquatorial(when)
	eqToHor := NewEquatorialToHorizontal(when, where)
	days := J2010.DaysUntil(when)

	project := func(eq coords.Equatorial) coords.Cartesian {
		return proj.Apply(eqToHor.Apply(eq))
	}

	sky := &ObservedSky{
		when:  when,
		where: where,
		proj:  proj,
		cat:   cat,
	}

	sky.sun = SunAt(days, eclToEq)
	sky.sunPos = project(sky.sun.EquatorialPos())
	sky.moon = MoonAt(days, eclToEq)
	sky.moonPos = project(sky.moon.EquatorialPos())

	sky.planets = make([]*Planet, 0, len(AllPlanetModels)-1)
	sky.planetPos = make([]float64, 0, 2*(len(AllPlanetModels)-1))
	for _, model := range AllPlanetModels {
		p, ok := model.At(days, eclToEq)
		if !ok {
			continue
		}
		xy := project(p.EquatorialPos())
		sky.planets = append(sky.planets, p)
		sky.planetPos = append(sky.planetPos, xy.X(), xy.Y())
	}

	stars := cat.Stars()
	sky.starPos = make([]float64, 2*len(stars))
	sky.hipIndex = make(map[int]int, len(stars))
	for i, s := range stars {
		xy := project(s.EquatorialPos())
		sky.starPos[2*i] = xy.X()
		sky.starPos[2*i+1] = xy.Y()
		// Stars without a Hipparcos number are not indexed
		if _, dup := sky.hipIndex[s.HIP()]; s.HIP() > 0 && !dup {
			sky.hipIndex[s.HIP()] = i
		}
	}
	return sky
}

// When returns the observation instant.
func (s *ObservedSky) When() time.Time { return s.when }

// Where returns the observer position.
func (s *ObservedSky) Where() coords.Geographic { return s.where }

// Projection returns the projection used for every position.
func (s *ObservedSky) Projection() coords.StereographicProjection { return s.proj }

func (s *ObservedSky) Sun() *Sun                      { return s.sun }
func (s *ObservedSky) SunPosition() coords.Cartesian  { return s.sunPos }
func (s *ObservedSky) Moon() *Moon                    { return s.moon }
func (s *ObservedSky) MoonPosition() coords.Cartesian { return s.moonPos }

// Planets returns the seven planets other than the Earth, from Mercury to
// Neptune.
func (s *ObservedSky) Planets() []*Planet {
	return append([]*Planet(nil), s.planets...)
}

// PlanetPositions returns the packed x, y positions of Planets.
func (s *ObservedSky) PlanetPositions() []float64 {
	return append([]float64(nil), s.planetPos...)
}

// Stars returns the catalogue stars. The slice must not be modified.
func (s *ObservedSky) Stars() []*Star { return s.cat.Stars() }

// StarPositions returns the packed x, y positions of Stars. The slice must
// not be modified.
func (s *ObservedSky) StarPositions() []float64 { return s.starPos }

// StarPosition returns the position of the star with Hipparcos number hip.
func (s *ObservedSky) StarPosition(hip int) (coords.Cartesian, error) {
	i, ok := s.hipIndex[hip]
	if !ok {
		return coords.Cartesian{}, fmt.Errorf("HIP %d: %w", hip, ErrUnknownStar)
	}
	return coords.NewCartesian(s.starPos[2*i], s.starPos[2*i+1]), nil
}

// Asterisms returns the catalogue asterisms.
func (s *ObservedSky) Asterisms() []*Asterism { return s.cat.Asterisms() }

// AsterismIndices returns the positions in Stars of the stars of a.
func (s *ObservedSky) AsterismIndices(a *Asterism) ([]int, error) {
	return s.cat.AsterismIndices(a)
}

// ObjectClosestTo returns the object whose projection is nearest to p,
// among those strictly closer than maxDistance. Candidates are scanned
// planets first (Mercury to Neptune), then stars in catalogue order, then
// the Sun, then the Moon; on equal distances the first scanned wins.
func (s *ObservedSky) ObjectClosestTo(p coords.Cartesian, maxDistance float64) (CelestialObject, bool) {
	px, py := p.X(), p.Y()
	var best CelestialObject
	bestDist := maxDistance

	consider := func(obj CelestialObject, x, y float64) {
		if d := math.Hypot(x-px, y-py); d < bestDist {
			best, bestDist = obj, d
		}
	}

	for i, planet := range s.planets {
		consider(planet, s.planetPos[2*i], s.planetPos[2*i+1])
	}
	stars := s.cat.Stars()
	for i, star := range stars {
		x, y := s.starPos[2*i], s.starPos[2*i+1]
		if math.Abs(x-px) < maxDistance && math.Abs(y-py) < maxDistance {
			consider(star, x, y)
		}
	}
	consider(s.sun, s.sunPos.X(), s.sunPos.Y())
	consider(s.moon, s.moonPos.X(), s.moonPos.Y())

	return best, best != nil
}
