package coords

import (
	"fmt"
	"math"

	"github.com/litescript/ls-sky/internal/numeric"
)

// StereographicProjection maps the celestial sphere onto the plane tangent
// to a centre direction. The centre maps to the origin; the only singular
// point is its antipode.
type StereographicProjection struct {
	_      doNotCompare
	center Horizontal
	lon0   float64
	cosPhi float64
	sinPhi float64
}

// NewStereographicProjection returns the projection centred on center.
func NewStereographicProjection(center Horizontal) StereographicProjection {
	return StereographicProjection{
		center: center,
		lon0:   center.Az(),
		cosPhi: math.Cos(center.Alt()),
		sinPhi: math.Sin(center.Alt()),
	}
}

// Center returns the direction projected onto the origin.
func (p StereographicProjection) Center() Horizontal {
	return p.center
}

// Apply projects h onto the plane.
func (p StereographicProjection) Apply(h Horizontal) Cartesian {
	dLon := h.Az() - p.lon0
	sinAlt, cosAlt := math.Sin(h.Alt()), math.Cos(h.Alt())
	cosDLon := math.Cos(dLon)

	d := 1 / (1 + sinAlt*p.sinPhi + cosAlt*p.cosPhi*cosDLon)
	return NewCartesian(
		d*cosAlt*math.Sin(dLon),
		d*(sinAlt*p.cosPhi-cosAlt*p.sinPhi*cosDLon),
	)
}

// InverseApply returns the direction projected onto c. The origin maps
// back to the centre.
func (p StereographicProjection) InverseApply(c Cartesian) Horizontal {
	x, y := c.X(), c.Y()
	if x == 0 && y == 0 {
		return p.center
	}

	// Angular distance c from the centre, with tan(c/2) = rho. Far points
	// use 1/rho so that rho*rho cannot overflow.
	rho := math.Hypot(x, y)
	var sinC, cosC float64
	if rho <= 1 {
		sinC, cosC = 2*rho/(1+rho*rho), (1-rho*rho)/(1+rho*rho)
	} else {
		u := 1 / rho
		sinC, cosC = 2*u/(1+u*u), (u*u-1)/(u*u+1)
	}
	ux, uy := x/rho, y/rho
	if math.IsInf(rho, 0) {
		// The antipode: sinC is 0 and the direction does not matter
		ux, uy = 0, 0
	}

	az := math.Atan2(ux*sinC, p.cosPhi*cosC-uy*p.sinPhi*sinC) + p.lon0
	sinAlt := cosC*p.sinPhi + uy*sinC*p.cosPhi
	alt := math.Asin(math.Max(-1, math.Min(1, sinAlt)))

	return MustHorizontal(numeric.NormalizePositive(az), alt)
}

// CircleCenterForParallel returns the centre of the circle that the
// parallel of constant altitude through h projects onto.
func (p StereographicProjection) CircleCenterForParallel(h Horizontal) Cartesian {
	return NewCartesian(0, p.cosPhi/(math.Sin(h.Alt())+p.sinPhi))
}

// CircleRadiusForParallel returns the radius of the circle that the
// parallel of constant altitude through h projects onto.
func (p StereographicProjection) CircleRadiusForParallel(h Horizontal) float64 {
	return math.Cos(h.Alt()) / (math.Sin(h.Alt()) + p.sinPhi)
}

// ApplyToAngle returns the projected diameter of a disc of angular
// diameter rad centred on the projection centre.
func (p StereographicProjection) ApplyToAngle(rad float64) float64 {
	return 2 * math.Tan(rad/4)
}

func (p StereographicProjection) String() string {
	return fmt.Sprintf("StereographicProjection centered at %s", p.center)
}
