// Package blackbody maps stellar colour temperatures to display colours.
package blackbody

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	MinKelvin = 1000
	MaxKelvin = 40000
	Step      = 100
)

// ErrOutOfRange is returned for temperatures outside the table.
var ErrOutOfRange = errors.New("temperature out of range")

// Table holds one colour per Step kelvin from MinKelvin to MaxKelvin.
type Table struct {
	colors []colorful.Color
}

// NewTable computes the table by integrating the Planck spectrum against
// the CIE 1931 colour matching functions. Colours are scaled so that the
// brightest sRGB channel is 1.
func NewTable() *Table {
	n := (MaxKelvin-MinKelvin)/Step + 1
	t := &Table{colors: make([]colorful.Color, n)}
	for i := range t.colors {
		t.colors[i] = radiatorColor(float64(MinKelvin + i*Step))
	}
	return t
}

// ColorFor returns the colour of a black body at kelvin, rounded to the
// nearest Step.
func (t *Table) ColorFor(kelvin float64) (colorful.Color, error) {
	if math.IsNaN(kelvin) || kelvin < MinKelvin {
		return colorful.Color{}, fmt.Errorf("%w: %.0f K", ErrOutOfRange, kelvin)
	}
	k := int(math.Round(kelvin/Step)) * Step
	if k > MaxKelvin {
		return colorful.Color{}, fmt.Errorf("%w: %.0f K", ErrOutOfRange, kelvin)
	}
	return t.colors[(k-MinKelvin)/Step], nil
}

// Hex is ColorFor formatted as "#rrggbb", falling back to white.
func (t *Table) Hex(kelvin float64) string {
	c, err := t.ColorFor(kelvin)
	if err != nil {
		return "#ffffff"
	}
	return c.Hex()
}

const (
	lambdaMin  = 380 // nm
	lambdaMax  = 780
	lambdaStep = 5
	c2         = 1.4387769e-2 // second radiation constant, m·K
)

func radiatorColor(kelvin float64) colorful.Color {
	var x, y, z float64
	for l := lambdaMin; l <= lambdaMax; l += lambdaStep {
		p := planck(float64(l), kelvin)
		cx, cy, cz := matching(float64(l))
		x += p * cx
		y += p * cy
		z += p * cz
	}
	sum := x + y + z
	r, g, b := colorful.XyzToLinearRgb(x/sum, y/sum, z/sum)
	m := math.Max(r, math.Max(g, b))
	return colorful.LinearRgb(math.Max(r/m, 0), math.Max(g/m, 0), math.Max(b/m, 0)).Clamped()
}

// planck returns the spectral radiance at lambda nm, up to a constant.
func planck(lambda, kelvin float64) float64 {
	l := lambda * 1e-9
	return 1 / (math.Pow(l, 5) * (math.Exp(c2/(l*kelvin)) - 1))
}

// matching is the multi-lobe Gaussian fit of the CIE 1931 2° observer by
// Wyman, Sloan and Shirley.
func matching(lambda float64) (x, y, z float64) {
	x = 1.056*lobe(lambda, 599.8, 37.9, 31.0) + 0.362*lobe(lambda, 442.0, 16.0, 26.7) - 0.065*lobe(lambda, 501.1, 20.4, 26.2)
	y = 0.821*lobe(lambda, 568.8, 46.9, 40.5) + 0.286*lobe(lambda, 530.9, 16.3, 31.1)
	z = 1.217*lobe(lambda, 437.0, 11.8, 36.0) + 0.681*lobe(lambda, 459.0, 26.0, 13.8)
	return x, y, z
}

func lobe(lambda, mu, sigmaLow, sigmaHigh float64) float64 {
	s := sigmaHigh
	if lambda < mu {
		s = sigmaLow
	}
	t := (lambda - mu) / s
	return math.Exp(-t * t / 2)
}
