package astro

import (
	"fmt"
	"io"

	"github.com/litescript/ls-sky/internal/numeric"
)

// StarCatalogue is an immutable set of stars and asterisms. Every star of
// every asterism is part of the star list.
type StarCatalogue struct {
	stars     []*Star
	asterisms []*Asterism
	indices   map[*Asterism][]int
}

// NewStarCatalogue returns the catalogue of stars and asterisms. It fails
// if an asterism uses a star missing from stars.
func NewStarCatalogue(stars []*Star, asterisms []*Asterism) (*StarCatalogue, error) {
	index := make(map[*Star]int, len(stars))
	for i, s := range stars {
		if s == nil {
			return nil, fmt.Errorf("catalogue star %d: %w", i, ErrMissingValue)
		}
		if _, dup := index[s]; !dup {
			index[s] = i
		}
	}

	cat := &StarCatalogue{
		stars:     append([]*Star(nil), stars...),
		asterisms: make([]*Asterism, 0, len(asterisms)),
		indices:   make(map[*Asterism][]int, len(asterisms)),
	}
	for n, a := range asterisms {
		if a == nil {
			return nil, fmt.Errorf("catalogue asterism %d: %w", n, ErrMissingValue)
		}
		if _, dup := cat.indices[a]; dup {
			continue
		}
		idx := make([]int, len(a.stars))
		for j, s := range a.stars {
			i, ok := index[s]
			if !ok {
				return nil, fmt.Errorf("%w: asterism %d uses star %q missing from the catalogue",
					numeric.ErrInvalidArgument, n, s.Name())
			}
			idx[j] = i
		}
		cat.asterisms = append(cat.asterisms, a)
		cat.indices[a] = idx
	}
	return cat, nil
}

// Stars returns the catalogue stars. The slice must not be modified.
func (c *StarCatalogue) Stars() []*Star { return c.stars }

// Asterisms returns the catalogue asterisms in insertion order.
func (c *StarCatalogue) Asterisms() []*Asterism {
	return append([]*Asterism(nil), c.asterisms...)
}

// AsterismIndices returns the positions in Stars of the stars of a.
func (c *StarCatalogue) AsterismIndices(a *Asterism) ([]int, error) {
	idx, ok := c.indices[a]
	if !ok {
		return nil, ErrUnknownAsterism
	}
	return append([]int(nil), idx...), nil
}

// Loader adds the records read from r to b.
type Loader interface {
	Load(r io.Reader, b *Builder) error
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(r io.Reader, b *Builder) error

func (f LoaderFunc) Load(r io.Reader, b *Builder) error { return f(r, b) }

// Builder accumulates stars and asterisms before freezing them into a
// StarCatalogue.
type Builder struct {
	stars     []*Star
	asterisms []*Asterism
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddStar appends s.
func (b *Builder) AddStar(s *Star) *Builder {
	b.stars = append(b.stars, s)
	return b
}

// AddAsterism appends a.
func (b *Builder) AddAsterism(a *Asterism) *Builder {
	b.asterisms = append(b.asterisms, a)
	return b
}

// Stars returns a snapshot of the stars added so far.
func (b *Builder) Stars() []*Star {
	return append([]*Star(nil), b.stars...)
}

// Asterisms returns a snapshot of the asterisms added so far.
func (b *Builder) Asterisms() []*Asterism {
	return append([]*Asterism(nil), b.asterisms...)
}

// LoadFrom runs l over r, adding its records to b.
func (b *Builder) LoadFrom(r io.Reader, l Loader) error {
	return l.Load(r, b)
}

// Build freezes the builder content.
func (b *Builder) Build() (*StarCatalogue, error) {
	return NewStarCatalogue(b.stars, b.asterisms)
}
