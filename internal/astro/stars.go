package astro

import (
	"fmt"

	"github.com/litescript/ls-sky/internal/coords"
	"github.com/litescript/ls-sky/internal/numeric"
)

var colorIndexRange = numeric.MustClosed(-0.5, 5.5)

// Star is a catalogue star. Stars are compared by identity: two loads of the
// same record give two distinct stars.
type Star struct {
	body
	hip        int
	colorIndex float64
	colorTemp  int
}

// NewStar returns a star with Hipparcos number hip (0 when unknown) and
// B-V colour index colorIndex in [-0.5, 5.5].
func NewStar(hip int, name string, eq coords.Equatorial, magnitude, colorIndex float64) (*Star, error) {
	if hip < 0 {
		return nil, fmt.Errorf("%w: negative Hipparcos number %d", numeric.ErrInvalidArgument, hip)
	}
	if _, err := numeric.CheckInInterval(colorIndexRange, colorIndex); err != nil {
		return nil, fmt.Errorf("star %q colour index: %w", name, err)
	}
	b, err := newBody(name, eq, 0, magnitude)
	if err != nil {
		return nil, err
	}
	return &Star{
		body:       b,
		hip:        hip,
		colorIndex: colorIndex,
		colorTemp:  colorTemperature(colorIndex),
	}, nil
}

// colorTemperature estimates the black-body temperature in kelvin from the
// B-V colour index (Ballesteros' formula).
func colorTemperature(c float64) int {
	return int(4600 * (1/(0.92*c+1.7) + 1/(0.92*c+0.62)))
}

// HIP returns the Hipparcos number, 0 when unknown.
func (s *Star) HIP() int { return s.hip }

// ColorIndex returns the B-V colour index.
func (s *Star) ColorIndex() float64 { return s.colorIndex }

// ColorTemperature returns the colour temperature in kelvin.
func (s *Star) ColorTemperature() int { return s.colorTemp }

// Asterism is an ordered list of stars drawn as connected segments.
type Asterism struct {
	stars []*Star
}

// NewAsterism returns an asterism through the given stars, in order.
func NewAsterism(stars []*Star) (*Asterism, error) {
	if len(stars) == 0 {
		return nil, fmt.Errorf("%w: empty asterism", numeric.ErrInvalidArgument)
	}
	for i, s := range stars {
		if s == nil {
			return nil, fmt.Errorf("asterism star %d: %w", i, ErrMissingValue)
		}
	}
	return &Asterism{stars: append([]*Star(nil), stars...)}, nil
}

// Stars returns the asterism stars in drawing order.
func (a *Asterism) Stars() []*Star {
	return append([]*Star(nil), a.stars...)
}

// Len returns the number of stars.
func (a *Asterism) Len() int { return len(a.stars) }
