package astro

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-sky/internal/coords"
)

type skyFixture struct {
	sky     *ObservedSky
	vega    *Star
	twin    *Star
	unnamed *Star
}

func newSkyFixture(t *testing.T) skyFixture {
	t.Helper()
	when := time.Date(2020, 4, 4, 0, 0, 0, 0, time.UTC)
	where := coords.MustGeographicDeg(30, 45)
	proj := coords.NewStereographicProjection(coords.MustHorizontalDeg(20, 22))

	vega := mustStar(t, 91262, "Vega", 279.2347, 38.7837)
	twin := mustStar(t, 91263, "Vega twin", 279.2347, 38.7837)
	deneb := mustStar(t, 102098, "Deneb", 310.3580, 45.2803)
	unnamed := mustStar(t, 0, "? Lyr", 284.7359, 32.6896)
	ast, err := NewAsterism([]*Star{vega, deneb})
	if err != nil {
		t.Fatal(err)
	}
	cat, err := NewBuilder().AddStar(vega).AddStar(twin).AddStar(deneb).AddStar(unnamed).AddAsterism(ast).Build()
	if err != nil {
		t.Fatal(err)
	}
	return skyFixture{
		sky:     NewObservedSky(when, where, proj, cat),
		vega:    vega,
		twin:    twin,
		unnamed: unnamed,
	}
}

func TestObservedSkyContents(t *testing.T) {
	f := newSkyFixture(t)
	sky := f.sky

	if n := len(sky.Planets()); n != 7 {
		t.Fatalf("Planets = %d, want 7", n)
	}
	if n := len(sky.PlanetPositions()); n != 14 {
		t.Errorf("PlanetPositions = %d values, want 14", n)
	}
	for _, p := range sky.Planets() {
		if p.Name() == "Earth" {
			t.Error("Earth listed among observed planets")
		}
	}
	if n := len(sky.StarPositions()); n != 2*len(sky.Stars()) {
		t.Errorf("StarPositions = %d values for %d stars", n, len(sky.Stars()))
	}

	pos, err := sky.StarPosition(91262)
	if err != nil {
		t.Fatal(err)
	}
	if pos.X() != sky.StarPositions()[0] || pos.Y() != sky.StarPositions()[1] {
		t.Errorf("StarPosition(Vega) = %v", pos)
	}
	if _, err := sky.StarPosition(0); !errors.Is(err, ErrUnknownStar) {
		t.Errorf("StarPosition(0) err = %v", err)
	}

	for _, a := range sky.Asterisms() {
		idx, err := sky.AsterismIndices(a)
		if err != nil {
			t.Fatal(err)
		}
		for i, s := range a.Stars() {
			if sky.Stars()[idx[i]] != s {
				t.Errorf("asterism index %d does not resolve to %s", i, s.Name())
			}
		}
	}
}

func TestObjectClosestToStar(t *testing.T) {
	f := newSkyFixture(t)
	sky := f.sky

	pos, err := sky.StarPosition(91262)
	if err != nil {
		t.Fatal(err)
	}
	obj, ok := sky.ObjectClosestTo(pos, 0.1)
	if !ok {
		t.Fatal("no object found at Vega's position")
	}
	// Vega and its twin coincide: the first one in catalogue order wins
	if obj != CelestialObject(f.vega) {
		t.Errorf("ObjectClosestTo = %s, want Vega", obj.Name())
	}

	if _, ok := sky.ObjectClosestTo(pos, 0); ok {
		t.Error("maxDistance 0 returned an object")
	}
	if _, ok := sky.ObjectClosestTo(coords.NewCartesian(100, 100), 0.1); ok {
		t.Error("far point returned an object")
	}
}

func TestObjectClosestToUnnamedStar(t *testing.T) {
	f := newSkyFixture(t)
	xy := f.sky.StarPositions()
	obj, ok := f.sky.ObjectClosestTo(coords.NewCartesian(xy[6]+1e-6, xy[7]), 0.01)
	if !ok || obj != CelestialObject(f.unnamed) {
		t.Errorf("ObjectClosestTo = %v, %v; want the star without Hipparcos number", obj, ok)
	}
}

func TestObjectClosestToSunMoonPlanets(t *testing.T) {
	f := newSkyFixture(t)
	sky := f.sky

	if obj, ok := sky.ObjectClosestTo(sky.SunPosition(), 1e-9); !ok || obj != CelestialObject(sky.Sun()) {
		t.Errorf("at the Sun: %v, %v", obj, ok)
	}
	if obj, ok := sky.ObjectClosestTo(sky.MoonPosition(), 1e-9); !ok || obj != CelestialObject(sky.Moon()) {
		t.Errorf("at the Moon: %v, %v", obj, ok)
	}
	xy := sky.PlanetPositions()
	for i, p := range sky.Planets() {
		obj, ok := sky.ObjectClosestTo(coords.NewCartesian(xy[2*i], xy[2*i+1]), 1e-9)
		if !ok || obj.Name() != p.Name() {
			t.Errorf("at %s: %v, %v", p.Name(), obj, ok)
		}
	}
}

func TestObjectClosestToStableUnderLargerRadius(t *testing.T) {
	f := newSkyFixture(t)
	pos, _ := f.sky.StarPosition(91262)
	first, _ := f.sky.ObjectClosestTo(pos, 0.01)
	for _, r := range []float64{0.05, 0.5, 5, 50} {
		obj, ok := f.sky.ObjectClosestTo(pos, r)
		if !ok || obj != first {
			t.Errorf("radius %v: %v, want %s", r, obj, first.Name())
		}
	}
}

func TestObservedSkyMatchesConversions(t *testing.T) {
	f := newSkyFixture(t)
	sky := f.sky
	conv := NewEquatorialToHorizontal(sky.When(), sky.Where())
	want := sky.Projection().Apply(conv.Apply(f.vega.EquatorialPos()))
	got, _ := sky.StarPosition(91262)
	if math.Abs(got.X()-want.X()) > 1e-12 || math.Abs(got.Y()-want.Y()) > 1e-12 {
		t.Errorf("Vega at %v, want %v", got, want)
	}

	sunHor := conv.Apply(sky.Sun().EquatorialPos())
	back := sky.Projection().InverseApply(sky.SunPosition())
	if angleDiff(back.Az(), sunHor.Az()) > 1e-6 || math.Abs(back.Alt()-sunHor.Alt()) > 1e-6 {
		t.Errorf("Sun projected back to %v, want %v", back, sunHor)
	}
}

func TestObjectClosestToTieBetweenKinds(t *testing.T) {
	when := time.Date(2020, 4, 4, 0, 0, 0, 0, time.UTC)
	where := coords.MustGeographicDeg(30, 45)
	proj := coords.NewStereographicProjection(coords.MustHorizontalDeg(20, 22))
	days, conv := J2010.DaysUntil(when), NewEclipticToEquatorial(when)

	jupiter, ok := Jupiter.At(days, conv)
	if !ok {
		t.Fatal("Jupiter has no position")
	}
	atJupiter, _ := NewStar(1, "AtJupiter", jupiter.EquatorialPos(), 0, 0)
	atSun, _ := NewStar(2, "AtSun", SunAt(days, conv).EquatorialPos(), 0, 0)
	atMoon, _ := NewStar(3, "AtMoon", MoonAt(days, conv).EquatorialPos(), 0, 0)
	cat, err := NewBuilder().AddStar(atJupiter).AddStar(atSun).AddStar(atMoon).Build()
	if err != nil {
		t.Fatal(err)
	}
	sky := NewObservedSky(when, where, proj, cat)

	planetAt := func(name string) coords.Cartesian {
		for i, p := range sky.Planets() {
			if p.Name() == name {
				return coords.NewCartesian(sky.PlanetPositions()[2*i], sky.PlanetPositions()[2*i+1])
			}
		}
		t.Fatalf("%s not observed", name)
		return coords.Cartesian{}
	}

	// Planets are scanned first, then stars, then the Sun, then the Moon;
	// a coincident object scanned later never replaces an earlier one.
	tests := []struct {
		name string
		at   coords.Cartesian
		want string
	}{
		{"planet over star", planetAt("Jupiter"), "Jupiter"},
		{"star over Sun", sky.SunPosition(), "AtSun"},
		{"star over Moon", sky.MoonPosition(), "AtMoon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, ok := sky.ObjectClosestTo(tt.at, 0.1)
			if !ok {
				t.Fatal("nothing found")
			}
			if obj.Name() != tt.want {
				t.Errorf("ObjectClosestTo = %s, want %s", obj.Name(), tt.want)
			}
		})
	}
}
