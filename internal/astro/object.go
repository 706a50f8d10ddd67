package astro

import (
	"errors"
	"fmt"

	"github.com/litescript/ls-sky/internal/coords"
	"github.com/litescript/ls-sky/internal/numeric"
)

// Errors returned by object construction and catalogue lookups.
var (
	ErrMissingValue    = errors.New("missing required value")
	ErrUnknownAsterism = errors.New("asterism not in catalogue")
	ErrUnknownStar     = errors.New("star not in catalogue")
)

// CelestialObject is anything that can be placed on the sky: the Sun, the
// Moon, a planet or a star.
type CelestialObject interface {
	Name() string
	EquatorialPos() coords.Equatorial
	// AngularSize is the apparent diameter in radians.
	AngularSize() float64
	// Magnitude is the apparent magnitude; lower is brighter.
	Magnitude() float64
	// Info is a short human-readable description.
	Info() string
}

// body holds the attributes shared by every celestial object.
type body struct {
	_           doNotCompare
	name        string
	pos         coords.Equatorial
	angularSize float64
	magnitude   float64
}

func newBody(name string, pos coords.Equatorial, angularSize, magnitude float64) (body, error) {
	if name == "" {
		return body{}, fmt.Errorf("celestial object: %w: name", ErrMissingValue)
	}
	if angularSize < 0 {
		return body{}, fmt.Errorf("%w: negative angular size %g for %s",
			numeric.ErrInvalidArgument, angularSize, name)
	}
	return body{name: name, pos: pos, angularSize: angularSize, magnitude: magnitude}, nil
}

func (b *body) Name() string                     { return b.name }
func (b *body) EquatorialPos() coords.Equatorial { return b.pos }
func (b *body) AngularSize() float64             { return b.angularSize }
func (b *body) Magnitude() float64               { return b.magnitude }
func (b *body) Info() string                     { return b.name }
func (b *body) String() string                   { return b.Info() }
