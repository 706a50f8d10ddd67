package astro

import (
	"math"
	"testing"

	"github.com/litescript/ls-sky/internal/numeric"
)

func TestVec3(t *testing.T) {
	tests := []struct {
		name    string
		v       Vec3
		wantR   float64
		wantLon float64 // degrees
		wantLat float64 // degrees
	}{
		{"zero", Vec3{0, 0, 0}, 0, 0, 0},
		{"unit x", Vec3{1, 0, 0}, 1, 0, 0},
		{"unit y", Vec3{0, 1, 0}, 1, 90, 0},
		{"minus y", Vec3{0, -1, 0}, 1, 270, 0},
		{"3-4-5", Vec3{-3, -4, 0}, 5, 233.1301, 0},
		{"north pole", Vec3{0, 0, 2}, 2, 0, 90},
		{"3D", Vec3{1, 2, 2}, 3, 63.4349, 41.8103},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Norm(); math.Abs(got-tt.wantR) > 1e-10 {
				t.Errorf("Norm() = %v, want %v", got, tt.wantR)
			}
			if got := numeric.ToDeg(tt.v.EclipticLon()); math.Abs(got-tt.wantLon) > 1e-3 {
				t.Errorf("EclipticLon() = %v°, want %v°", got, tt.wantLon)
			}
			if got := numeric.ToDeg(tt.v.EclipticLat()); math.Abs(got-tt.wantLat) > 1e-3 {
				t.Errorf("EclipticLat() = %v°, want %v°", got, tt.wantLat)
			}
		})
	}
}

func TestProjectEclipticTopDown(t *testing.T) {
	cfg := DefaultProjectionConfig()

	tests := []struct {
		name      string
		v         Vec3
		wantAngle float64 // degrees
		wantR     float64 // true distance
	}{
		{"1 AU along +X", Vec3{1, 0, 0}, 0, 1},
		{"1 AU along +Y", Vec3{0, 1, 0}, 90, 1},
		{"1 AU along -X", Vec3{-1, 0, 0}, 180, 1},
		{"1 AU along -Y", Vec3{0, -1, 0}, -90, 1},
		{"5 AU at 45 degrees", Vec3{5 / math.Sqrt2, 5 / math.Sqrt2, 0}, 45, 5},
		{"10 AU with Z offset", Vec3{10, 0, 2}, 0, math.Sqrt(104)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectEclipticTopDown(tt.v, cfg)

			gotAngle := numeric.ToDeg(math.Atan2(got.Y, got.X))
			diff := math.Abs(gotAngle - tt.wantAngle)
			if diff > 180 {
				diff = 360 - diff
			}
			if diff > 0.1 {
				t.Errorf("angle = %.2f°, want %.2f°", gotAngle, tt.wantAngle)
			}
			if math.Abs(got.R-tt.wantR) > 0.01 {
				t.Errorf("R = %.4f, want %.4f", got.R, tt.wantR)
			}
			if got.Z != tt.v.Z {
				t.Errorf("Z = %v, want %v", got.Z, tt.v.Z)
			}
		})
	}
}

func TestScaleModes(t *testing.T) {
	tests := []struct {
		mode ScaleMode
		rAU  float64
		want float64
	}{
		{ScaleLogR, 0, 0},
		{ScaleLogR, 9, 1},
		{ScaleLogR, 99, 2},
		{ScaleInner, 1, 1},
		{ScaleInner, 5, 5},
		{ScaleInner, 30, 5},
		{ScaleOuter, 2.5, 0.25},
		{ScaleOuter, 5, 0.5},
		{ScaleOuter, 45, 1},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			cfg := ProjectionConfig{Scale: 2, Mode: tt.mode}
			got := ProjectEclipticTopDown(Vec3{tt.rAU, 0, 0}, cfg)
			if math.Abs(got.X-2*tt.want) > 1e-10 || math.Abs(got.Y) > 1e-10 {
				t.Errorf("r=%v AU projected to (%v, %v), want (%v, 0)", tt.rAU, got.X, got.Y, 2*tt.want)
			}
		})
	}
}

func TestScaleRadiusMonotonic(t *testing.T) {
	for _, mode := range []ScaleMode{ScaleLogR, ScaleInner, ScaleOuter} {
		prev := -1.0
		for r := 0.0; r <= 40; r += 0.25 {
			got := scaleRadius(r, mode)
			if got < prev {
				t.Errorf("%s: scaleRadius(%v) = %v decreased from %v", mode, r, got, prev)
			}
			prev = got
		}
	}
}

func TestSolarSystemEarthOppositeSun(t *testing.T) {
	for _, days := range []float64{-3000, 0, 1234.5, 5000} {
		var earth Vec3
		for _, s := range SolarSystem(days) {
			if s.Model == Earth {
				earth = s.Pos
			}
		}
		sun := SunAt(days, NewEclipticToEquatorial(J2010.Time()))
		want := numeric.NormalizePositive(sun.EclipticPos().Lon() + math.Pi)
		if d := angleDiff(earth.EclipticLon(), want); d > 0.01 {
			t.Errorf("day %v: Earth at %.4f rad, Sun opposite at %.4f rad", days, earth.EclipticLon(), want)
		}
		if math.Abs(earth.Norm()-1) > 0.02 {
			t.Errorf("day %v: Earth at %.4f AU", days, earth.Norm())
		}
	}
}

func TestSolarSystemOrder(t *testing.T) {
	samples := SolarSystem(0)
	if len(samples) != len(AllPlanetModels) {
		t.Fatalf("len = %d", len(samples))
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].Pos.Norm() <= samples[i-1].Pos.Norm()*0.9 {
			t.Errorf("%s at %.2f AU inside %s at %.2f AU", samples[i].Model.Name(), samples[i].Pos.Norm(),
				samples[i-1].Model.Name(), samples[i-1].Pos.Norm())
		}
	}
}

func TestOrbitPath(t *testing.T) {
	path := OrbitPath(Mars, 0, 36)
	if len(path) != 36 {
		t.Fatalf("len = %d", len(path))
	}
	if path[0] != Mars.Heliocentric(0) {
		t.Errorf("path starts at %v, want %v", path[0], Mars.Heliocentric(0))
	}
	var swept float64
	for i := 1; i < len(path); i++ {
		step := numeric.NormalizePositive(path[i].EclipticLon() - path[i-1].EclipticLon())
		swept += step
	}
	// 35 of 36 steps around one orbit
	if math.Abs(swept-numeric.Tau*35/36) > 0.2 {
		t.Errorf("path sweeps %.3f rad", swept)
	}
	if n := len(OrbitPath(Venus, 0, 0)); n != 2 {
		t.Errorf("OrbitPath(n=0) len = %d, want 2", n)
	}
}
