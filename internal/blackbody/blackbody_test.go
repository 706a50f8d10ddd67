package blackbody

import (
	"errors"
	"math"
	"testing"
)

func TestColorFor(t *testing.T) {
	tab := NewTable()
	tests := []struct {
		kelvin  float64
		r, g, b float64
	}{
		{1000, 1.0, 0.185, 0.0},
		{3800, 1.0, 0.814, 0.610},
		{5800, 1.0, 0.946, 0.920},
		{10500, 0.789, 0.842, 1.0},
		{40000, 0.622, 0.722, 1.0},
	}
	for _, tt := range tests {
		c, err := tab.ColorFor(tt.kelvin)
		if err != nil {
			t.Fatalf("ColorFor(%v): %v", tt.kelvin, err)
		}
		if math.Abs(c.R-tt.r) > 0.01 || math.Abs(c.G-tt.g) > 0.01 || math.Abs(c.B-tt.b) > 0.01 {
			t.Errorf("ColorFor(%v) = %v, want (%v, %v, %v)", tt.kelvin, c, tt.r, tt.g, tt.b)
		}
	}
}

func TestColorForRounding(t *testing.T) {
	tab := NewTable()
	tests := []struct {
		kelvin, same float64
	}{
		{1049, 1000},
		{1050, 1100},
		{3793, 3800},
		{40049, 40000},
	}
	for _, tt := range tests {
		got, err := tab.ColorFor(tt.kelvin)
		if err != nil {
			t.Fatalf("ColorFor(%v): %v", tt.kelvin, err)
		}
		want, _ := tab.ColorFor(tt.same)
		if got != want {
			t.Errorf("ColorFor(%v) = %v, want ColorFor(%v) = %v", tt.kelvin, got, tt.same, want)
		}
	}
}

func TestColorForOutOfRange(t *testing.T) {
	tab := NewTable()
	for _, k := range []float64{0, 999.9, 40050, 1e6, math.NaN()} {
		if _, err := tab.ColorFor(k); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("ColorFor(%v) err = %v", k, err)
		}
	}
	if got := tab.Hex(500); got != "#ffffff" {
		t.Errorf("Hex(500) = %s", got)
	}
}

func TestTableIsMonotonic(t *testing.T) {
	tab := NewTable()
	prev := math.Inf(1)
	for k := MinKelvin; k <= MaxKelvin; k += Step {
		c, _ := tab.ColorFor(float64(k))
		if ratio := c.R / c.B; ratio > prev+1e-9 {
			t.Errorf("red/blue ratio grows at %d K", k)
		}
		prev = c.R / c.B
		if c.R < 0 || c.G < 0 || c.B < 0 || c.R > 1 || c.G > 1 || c.B > 1 {
			t.Errorf("%d K: %v not clamped", k, c)
		}
	}
}
