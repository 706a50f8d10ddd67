package loader

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/litescript/ls-sky/internal/astro"
	"github.com/litescript/ls-sky/internal/numeric"
)

func loadTestStars(t *testing.T) *astro.Builder {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", "hyg_small.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	b := astro.NewBuilder()
	if err := b.LoadFrom(f, HYG); err != nil {
		t.Fatalf("HYG load: %v", err)
	}
	return b
}

func TestHYG(t *testing.T) {
	stars := loadTestStars(t).Stars()
	if len(stars) != 5 {
		t.Fatalf("loaded %d stars, want 5", len(stars))
	}

	tests := []struct {
		idx    int
		name   string
		hip    int
		mag    float64
		ci     float64
		raDeg  float64
		decDeg float64
	}{
		{0, "Sol", 0, -26.7, 0.656, 0, 0},
		{1, "Betelgeuse", 27989, 0.45, 1.5, 88.7929, 7.4071},
		{2, "Rigel", 24436, 0.18, -0.03, 78.6345, -8.2016},
		{3, "Del Ori", 25930, 2.25, -0.175, 83.0017, -0.2991},
		{4, "? Ori", 0, 6.5, 0, 15, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := stars[tt.idx]
			if s.Name() != tt.name || s.HIP() != tt.hip {
				t.Errorf("star = %q hip %d, want %q hip %d", s.Name(), s.HIP(), tt.name, tt.hip)
			}
			if math.Abs(s.Magnitude()-tt.mag) > 1e-9 || math.Abs(s.ColorIndex()-tt.ci) > 1e-9 {
				t.Errorf("mag %v ci %v, want %v %v", s.Magnitude(), s.ColorIndex(), tt.mag, tt.ci)
			}
			eq := s.EquatorialPos()
			if math.Abs(eq.RADeg()-tt.raDeg) > 1e-3 || math.Abs(eq.DecDeg()-tt.decDeg) > 1e-3 {
				t.Errorf("position %v, want ra %v° dec %v°", eq, tt.raDeg, tt.decDeg)
			}
		})
	}
}

func TestHYGErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"missing decrad column", "hip,proper,rarad\n1,a,0.1\n", ErrMissingColumn},
		{"declination out of range", "hip,proper,rarad,decrad\n1,a,0.1,2\n", numeric.ErrInvalidArgument},
		{"colour index out of range", "hip,proper,ci,rarad,decrad\n1,a,9,0.1,0.1\n", numeric.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := astro.NewBuilder().LoadFrom(strings.NewReader(tt.input), HYG)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	err := astro.NewBuilder().LoadFrom(strings.NewReader("hip,rarad,decrad\nx,0.1,0.1\n"), HYG)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("bad hip: err = %v", err)
	}
	if err := astro.NewBuilder().LoadFrom(strings.NewReader(""), HYG); err == nil {
		t.Error("empty input accepted")
	}
}

func TestAsterisms(t *testing.T) {
	b := loadTestStars(t)
	f, err := os.Open(filepath.Join("testdata", "asterisms.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := b.LoadFrom(f, Asterisms); err != nil {
		t.Fatal(err)
	}
	asterisms := b.Asterisms()
	// the line naming HIP 123456 is skipped
	if len(asterisms) != 3 {
		t.Fatalf("loaded %d asterisms, want 3", len(asterisms))
	}
	wantLens := []int{2, 3, 1}
	for i, a := range asterisms {
		if a.Len() != wantLens[i] {
			t.Errorf("asterism %d has %d stars, want %d", i, a.Len(), wantLens[i])
		}
	}
	if got := asterisms[0].Stars()[1].Name(); got != "Rigel" {
		t.Errorf("asterism 0 star 1 = %s, want Rigel", got)
	}

	cat, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	idx, err := cat.AsterismIndices(asterisms[1])
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{3, 1, 3}; idx[0] != want[0] || idx[1] != want[1] || idx[2] != want[2] {
		t.Errorf("indices = %v, want %v", idx, want)
	}
}

func TestAsterismsFirstStarWins(t *testing.T) {
	b := astro.NewBuilder()
	input := "hip,proper,rarad,decrad\n7,first,0.1,0.1\n7,second,0.2,0.2\n"
	if err := b.LoadFrom(strings.NewReader(input), HYG); err != nil {
		t.Fatal(err)
	}
	if err := b.LoadFrom(strings.NewReader("7\n"), Asterisms); err != nil {
		t.Fatal(err)
	}
	if got := b.Asterisms()[0].Stars()[0].Name(); got != "first" {
		t.Errorf("asterism star = %s, want first", got)
	}

	if err := b.LoadFrom(strings.NewReader("7,x\n"), Asterisms); err == nil {
		t.Error("malformed Hipparcos number accepted")
	}
}

func TestDefault(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if n := len(cat.Stars()); n < 150 {
		t.Errorf("built-in catalogue has %d stars", n)
	}
	if n := len(cat.Asterisms()); n != 9 {
		t.Errorf("built-in catalogue has %d asterisms, want 9", n)
	}

	var sirius *astro.Star
	for _, s := range cat.Stars() {
		if s.Name() == "Sirius" {
			sirius = s
		}
	}
	if sirius == nil || sirius.HIP() != 32349 || sirius.Magnitude() != -1.46 {
		t.Fatalf("Sirius = %v", sirius)
	}
}

func TestFromFiles(t *testing.T) {
	cat, err := FromFiles(filepath.Join("testdata", "hyg_small.csv"), filepath.Join("testdata", "asterisms.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cat.Stars()) != 5 || len(cat.Asterisms()) != 3 {
		t.Errorf("catalogue has %d stars, %d asterisms", len(cat.Stars()), len(cat.Asterisms()))
	}

	// built-in asterisms are skipped when their stars are absent
	cat, err = FromFiles(filepath.Join("testdata", "hyg_small.csv"), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(cat.Asterisms()) != 0 {
		t.Errorf("catalogue has %d asterisms, want 0", len(cat.Asterisms()))
	}

	if _, err := FromFiles(filepath.Join("testdata", "missing.csv"), ""); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v", err)
	}
}
