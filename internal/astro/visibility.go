package astro

import (
	"errors"
	"math"
	"time"

	"github.com/litescript/ls-sky/internal/coords"
	"github.com/litescript/ls-sky/internal/numeric"
)

// PositionFunc returns the equatorial position of a body at t.
type PositionFunc func(t time.Time) coords.Equatorial

// SunPositionFunc tracks the Sun.
func SunPositionFunc(t time.Time) coords.Equatorial {
	return SunAt(J2010.DaysUntil(t), NewEclipticToEquatorial(t)).EquatorialPos()
}

// MoonPositionFunc tracks the Moon.
func MoonPositionFunc(t time.Time) coords.Equatorial {
	return MoonAt(J2010.DaysUntil(t), NewEclipticToEquatorial(t)).EquatorialPos()
}

// PositionFunc tracks the planet. It returns nil for the Earth.
func (m *PlanetModel) PositionFunc() PositionFunc {
	if m.side == Reference {
		return nil
	}
	return func(t time.Time) coords.Equatorial {
		p, _ := m.At(J2010.DaysUntil(t), NewEclipticToEquatorial(t))
		return p.EquatorialPos()
	}
}

// FixedPosition tracks a body that does not move on the celestial sphere.
func FixedPosition(eq coords.Equatorial) PositionFunc {
	return func(time.Time) coords.Equatorial { return eq }
}

// EquatorialAt is a position sampled at one instant.
type EquatorialAt struct {
	Time time.Time
	Pos  coords.Equatorial
}

// SampleTrack samples pos every step over [start, start+span].
func SampleTrack(pos PositionFunc, start time.Time, span, step time.Duration) []EquatorialAt {
	if step <= 0 || span < 0 {
		return nil
	}
	n := int(span/step) + 1
	out := make([]EquatorialAt, n)
	for i := range out {
		t := start.Add(time.Duration(i) * step)
		out[i] = EquatorialAt{Time: t, Pos: pos(t)}
	}
	return out
}

// VisibilityWindow is a rise-transit-set cycle.
type VisibilityWindow struct {
	Rise          time.Time // zero when the body is already up at the first sample
	Transit       time.Time
	Set           time.Time // zero when the body does not set in the sampled range
	MaxAltitude   float64   // radians
	Valid         bool
	AlwaysVisible bool // circumpolar over the samples
	NeverVisible  bool
}

// MinAltitude is the altitude above which a body counts as risen.
const MinAltitude = 0.0

// ErrInsufficientSamples is returned by RiseSet for fewer than three samples.
var ErrInsufficientSamples = errors.New("insufficient samples for visibility calculation")

type altSample struct {
	t   time.Time
	alt float64
}

func altitudes(where coords.Geographic, samples []EquatorialAt) []altSample {
	out := make([]altSample, len(samples))
	for i, s := range samples {
		h := NewEquatorialToHorizontal(s.Time, where).Apply(s.Pos)
		out[i] = altSample{t: s.Time, alt: h.Alt()}
	}
	return out
}

// RiseSet computes the rise, transit and set times from chronological
// samples covering at least one day.
func RiseSet(where coords.Geographic, samples []EquatorialAt) (VisibilityWindow, error) {
	if len(samples) < 3 {
		return VisibilityWindow{}, ErrInsufficientSamples
	}
	alts := altitudes(where, samples)

	minAlt, maxAlt := math.Pi, -math.Pi
	maxIdx := 0
	for i, s := range alts {
		minAlt = math.Min(minAlt, s.alt)
		if s.alt > maxAlt {
			maxAlt, maxIdx = s.alt, i
		}
	}

	if minAlt > MinAltitude {
		return VisibilityWindow{
			Transit:       alts[maxIdx].t,
			MaxAltitude:   maxAlt,
			Valid:         true,
			AlwaysVisible: true,
		}, nil
	}
	if maxAlt < MinAltitude {
		return VisibilityWindow{Valid: true, NeverVisible: true}, nil
	}

	var rise, set time.Time
	riseIdx := -1
	for i := 1; i < len(alts); i++ {
		if alts[i-1].alt <= MinAltitude && alts[i].alt > MinAltitude {
			rise = interpolateCrossing(alts[i-1], alts[i], MinAltitude)
			riseIdx = i
			break
		}
	}

	start := 1
	if riseIdx > 0 {
		start = riseIdx + 1
	}
	setFound := false
	for i := start; i < len(alts); i++ {
		if alts[i-1].alt > MinAltitude && alts[i].alt <= MinAltitude {
			set = interpolateCrossing(alts[i-1], alts[i], MinAltitude)
			setFound = true
			break
		}
	}

	transit, transitAlt := refineMaxAltitude(alts, maxIdx)
	upAtStart := alts[0].alt > MinAltitude

	return VisibilityWindow{
		Rise:        rise,
		Transit:     transit,
		Set:         set,
		MaxAltitude: transitAlt,
		Valid:       riseIdx > 0 || setFound || upAtStart,
	}, nil
}

// MaxAltitude returns the time and value of the highest sampled altitude,
// refined by parabolic interpolation.
func MaxAltitude(where coords.Geographic, samples []EquatorialAt) (time.Time, float64) {
	if len(samples) == 0 {
		return time.Time{}, 0
	}
	alts := altitudes(where, samples)
	maxIdx := 0
	for i, s := range alts {
		if s.alt > alts[maxIdx].alt {
			maxIdx = i
		}
	}
	return refineMaxAltitude(alts, maxIdx)
}

func refineMaxAltitude(alts []altSample, i int) (time.Time, float64) {
	if i == 0 || i == len(alts)-1 {
		return alts[i].t, alts[i].alt
	}
	// Parabola through t = -1, 0, +1
	y0, y1, y2 := alts[i-1].alt, alts[i].alt, alts[i+1].alt
	a := (y0+y2)/2 - y1
	b := (y2 - y0) / 2
	if a >= 0 {
		return alts[i].t, y1
	}
	tMax := numeric.MustClosed(-1, 1).Clip(-b / (2 * a))
	dt := alts[i].t.Sub(alts[i-1].t)
	return alts[i].t.Add(time.Duration(float64(dt) * tMax)), a*tMax*tMax + b*tMax + y1
}

func interpolateCrossing(s1, s2 altSample, threshold float64) time.Time {
	if math.Abs(s2.alt-s1.alt) < 1e-9 {
		return s1.t
	}
	f := numeric.MustClosed(0, 1).Clip((threshold - s1.alt) / (s2.alt - s1.alt))
	return s1.t.Add(time.Duration(float64(s2.t.Sub(s1.t)) * f))
}

// AltitudeTier groups altitudes for display.
type AltitudeTier int

const (
	AltitudeNone   AltitudeTier = iota // below the horizon
	AltitudeLow                        // 0-15°
	AltitudeMedium                     // 15-45°
	AltitudeHigh                       // 45° and above
)

// GetAltitudeTier returns the tier of an altitude in radians.
func GetAltitudeTier(alt float64) AltitudeTier {
	deg := numeric.ToDeg(alt)
	switch {
	case deg <= 0:
		return AltitudeNone
	case deg < 15:
		return AltitudeLow
	case deg < 45:
		return AltitudeMedium
	default:
		return AltitudeHigh
	}
}

func (t AltitudeTier) String() string {
	switch t {
	case AltitudeLow:
		return "low"
	case AltitudeMedium:
		return "medium"
	case AltitudeHigh:
		return "high"
	default:
		return "down"
	}
}
