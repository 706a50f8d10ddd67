package coords

import (
	"fmt"
	"math"
)

// Cartesian is a point on the projection plane.
type Cartesian struct {
	_ doNotCompare
	x float64
	y float64
}

// NewCartesian returns the point (x, y).
func NewCartesian(x, y float64) Cartesian {
	return Cartesian{x: x, y: y}
}

func (c Cartesian) X() float64 { return c.x }
func (c Cartesian) Y() float64 { return c.y }

// DistanceTo returns the Euclidean distance to o.
func (c Cartesian) DistanceTo(o Cartesian) float64 {
	return math.Hypot(c.x-o.x, c.y-o.y)
}

func (c Cartesian) String() string {
	return fmt.Sprintf("(x=%.4f, y=%.4f)", c.x, c.y)
}
