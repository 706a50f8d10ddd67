package coords

import (
	"errors"
	"math"
	"testing"

	"github.com/litescript/ls-sky/internal/numeric"
)

func TestAccessorsRoundTrip(t *testing.T) {
	lons := []float64{0, 0.1, math.Pi, numeric.Tau - 1e-9}
	lats := []float64{-math.Pi / 2, -0.3, 0, 1.2, math.Pi / 2}
	for _, lon := range lons {
		for _, lat := range lats {
			ecl := MustEcliptic(lon, lat)
			if ecl.Lon() != lon || ecl.Lat() != lat {
				t.Errorf("Ecliptic(%v, %v) = %v", lon, lat, ecl)
			}
			if math.Abs(ecl.LonDeg()-numeric.ToDeg(lon)) > 1e-9 {
				t.Errorf("LonDeg = %v", ecl.LonDeg())
			}
			eq := MustEquatorial(lon, lat)
			if eq.RA() != lon || eq.Dec() != lat {
				t.Errorf("Equatorial(%v, %v) = %v", lon, lat, eq)
			}
			if math.Abs(eq.RAHr()-numeric.ToHr(lon)) > 1e-12 {
				t.Errorf("RAHr = %v", eq.RAHr())
			}
			hor := MustHorizontal(lon, lat)
			if hor.Az() != lon || hor.Alt() != lat {
				t.Errorf("Horizontal(%v, %v) = %v", lon, lat, hor)
			}
		}
	}
}

func TestConstructionOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ecliptic lon 2π", func() error { _, err := NewEcliptic(numeric.Tau, 0); return err }()},
		{"ecliptic lon negative", func() error { _, err := NewEcliptic(-0.1, 0); return err }()},
		{"equatorial dec above pole", func() error { _, err := NewEquatorial(0, 1.6); return err }()},
		{"horizontal alt below nadir", func() error { _, err := NewHorizontal(0, -1.6); return err }()},
		{"geographic lon 180", func() error { _, err := GeographicFromDeg(180, 0); return err }()},
		{"geographic lat 91", func() error { _, err := GeographicFromDeg(0, 91); return err }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, numeric.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", tt.err)
			}
		})
	}
}

func TestGeographicValidity(t *testing.T) {
	tests := []struct {
		deg      float64
		validLon bool
		validLat bool
	}{
		{-180, true, false},
		{-90, true, true},
		{0, true, true},
		{90, true, true},
		{179.999999, true, false},
		{180, false, false},
		{-180.1, false, false},
	}
	for _, tt := range tests {
		if got := IsValidLonDeg(tt.deg); got != tt.validLon {
			t.Errorf("IsValidLonDeg(%v) = %v, want %v", tt.deg, got, tt.validLon)
		}
		if got := IsValidLatDeg(tt.deg); got != tt.validLat {
			t.Errorf("IsValidLatDeg(%v) = %v, want %v", tt.deg, got, tt.validLat)
		}
	}

	geo := MustGeographicDeg(-64, 47)
	if math.Abs(geo.LonDeg()+64) > 1e-9 || math.Abs(geo.LatDeg()-47) > 1e-9 {
		t.Errorf("geographic degrees = %v", geo)
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"ecliptic", MustEcliptic(numeric.OfDeg(15), numeric.OfDeg(7.2)).String(), "(λ=15.0000°, β=7.2000°)"},
		{"equatorial", MustEquatorial(numeric.OfHr(1), numeric.OfDeg(7.2)).String(), "(ra=1.0000h, dec=7.2000°)"},
		{"horizontal", MustHorizontalDeg(350, 7.2).String(), "(az=350.0000°, alt=7.2000°)"},
		{"geographic", MustGeographicDeg(6.57, 7.2).String(), "(lon=6.5700°, lat=7.2000°)"},
		{"cartesian", NewCartesian(1, -0.5).String(), "(x=1.0000, y=-0.5000)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestAzOctantName(t *testing.T) {
	tests := []struct {
		azDeg float64
		want  string
	}{
		{0, "n"},
		{22.4, "n"},
		{45, "ne"},
		{90, "e"},
		{135, "se"},
		{180, "s"},
		{225, "sw"},
		{270, "w"},
		{315, "nw"},
		{337.6, "n"},
	}
	for _, tt := range tests {
		got := MustHorizontalDeg(tt.azDeg, 10).AzOctantName("n", "e", "s", "w")
		if got != tt.want {
			t.Errorf("AzOctantName(%v°) = %q, want %q", tt.azDeg, got, tt.want)
		}
	}
}

func TestAngularDistance(t *testing.T) {
	zenith := MustHorizontalDeg(0, 90)
	tests := []struct {
		name string
		a, b Horizontal
		want float64
	}{
		{"same point", zenith, zenith, 0},
		{"zenith to horizon", zenith, MustHorizontalDeg(0, 0), math.Pi / 2},
		{"zenith to nadir", zenith, MustHorizontalDeg(0, -90), math.Pi},
		{"zenith to 45", zenith, MustHorizontalDeg(120, 45), math.Pi / 4},
		{"known value", MustHorizontalDeg(6.5682, 46.5183), MustHorizontalDeg(8.5476, 47.3763), 0.027935461189288496},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.AngularDistanceTo(tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStereographicKnownValues(t *testing.T) {
	p := NewStereographicProjection(MustHorizontalDeg(45, 45))

	if got := p.Apply(MustHorizontalDeg(45, 30)); math.Abs(got.X()) > 1e-12 || math.Abs(got.Y()+0.13165249758739583) > 1e-7 {
		t.Errorf("Apply = %v", got)
	}
	if got := p.InverseApply(NewCartesian(10, 0)).Az(); math.Abs(got-3.648704634091) > 1e-7 {
		t.Errorf("InverseApply az = %v", got)
	}
	if got := p.CircleCenterForParallel(MustHorizontalDeg(0, 27)).Y(); math.Abs(got-0.6089987400) > 1e-7 {
		t.Errorf("CircleCenterForParallel y = %v", got)
	}
	if got := p.CircleRadiusForParallel(MustHorizontalDeg(0, 27)); math.Abs(got-0.7673831803) > 1e-7 {
		t.Errorf("CircleRadiusForParallel = %v", got)
	}
	if got := p.ApplyToAngle(numeric.OfDeg(0.5)); math.Abs(got-0.00436333005) > 1e-7 {
		t.Errorf("ApplyToAngle = %v", got)
	}
}

func TestStereographicCenter(t *testing.T) {
	center := MustHorizontalDeg(34.4, 53.011101)
	p := NewStereographicProjection(center)
	got := p.Apply(center)
	if got.X() != 0 || got.Y() != 0 {
		t.Errorf("Apply(center) = %v, want origin", got)
	}
	back := p.InverseApply(NewCartesian(0, 0))
	if back.Az() != center.Az() || back.Alt() != center.Alt() {
		t.Errorf("InverseApply(origin) = %v, want %v", back, center)
	}
}

func TestStereographicInverseFarPoints(t *testing.T) {
	tests := []struct {
		name   string
		center Horizontal
		c      Cartesian
	}{
		{"huge diagonal", MustHorizontalDeg(45, 45), NewCartesian(1e200, 1e200)},
		{"huge x", MustHorizontalDeg(45, 45), NewCartesian(1e300, 0)},
		{"huge negative y", MustHorizontalDeg(180, 15), NewCartesian(0, -1e250)},
		{"infinite", MustHorizontalDeg(270, -20), NewCartesian(math.Inf(1), 3)},
		{"zenith centre", MustHorizontalDeg(0, 90), NewCartesian(-1e200, 1e200)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewStereographicProjection(tt.center)
			got := p.InverseApply(tt.c)
			antipode := MustHorizontal(numeric.NormalizePositive(tt.center.Az()+math.Pi), -tt.center.Alt())
			if d := got.AngularDistanceTo(antipode); math.IsNaN(d) || d > 1e-6 {
				t.Errorf("InverseApply(%v) = %v, %v from the antipode", tt.c, got, d)
			}
		})
	}
}

func TestStereographicRoundTrip(t *testing.T) {
	centers := []Horizontal{
		MustHorizontalDeg(180, 15),
		MustHorizontalDeg(0, 90),
		MustHorizontalDeg(270, -20),
	}
	for _, center := range centers {
		p := NewStereographicProjection(center)
		for az := 5.0; az < 360; az += 25 {
			for alt := -60.0; alt <= 80; alt += 20 {
				h := MustHorizontalDeg(az, alt)
				if h.AngularDistanceTo(center) > numeric.OfDeg(170) {
					continue
				}
				back := p.InverseApply(p.Apply(h))
				dAz := math.Abs(back.Az() - h.Az())
				dAz = math.Min(dAz, numeric.Tau-dAz)
				if dAz > 1e-6 || math.Abs(back.Alt()-h.Alt()) > 1e-6 {
					t.Errorf("center %v: round trip of %v gave %v", center, h, back)
				}
			}
		}
	}
}

func TestCartesianDistance(t *testing.T) {
	a := NewCartesian(1, 1)
	b := NewCartesian(4, 5)
	if got := a.DistanceTo(b); got != 5 {
		t.Errorf("DistanceTo = %v, want 5", got)
	}
}
