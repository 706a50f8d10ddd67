package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-sky/internal/astro"
	"github.com/litescript/ls-sky/internal/coords"
	"github.com/litescript/ls-sky/internal/numeric"
)

// The trace covers one day from the observed instant.
const (
	traceWidth = 48
	traceSpan  = 24 * time.Hour
	traceStep  = 10 * time.Minute
)

// traceBlocks are the Unicode block characters for the trace (0 = lowest, 7 = highest).
var traceBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Trace colours: dark blue at the horizon, blue, cyan at the zenith.
var (
	traceLow  = colorful.Color{R: 0x1b / 255.0, G: 0x2b / 255.0, B: 0x4b / 255.0}
	traceMid  = colorful.Color{R: 0x34 / 255.0, G: 0x78 / 255.0, B: 0xc0 / 255.0}
	traceHigh = colorful.Color{R: 0x8b / 255.0, G: 0xe9 / 255.0, B: 0xff / 255.0}
)

// positionFunc returns the track of obj on the celestial sphere. Stars do
// not move.
func positionFunc(obj astro.CelestialObject) astro.PositionFunc {
	switch o := obj.(type) {
	case *astro.Sun:
		return astro.SunPositionFunc
	case *astro.Moon:
		return astro.MoonPositionFunc
	case *astro.Planet:
		for _, m := range astro.AllPlanetModels {
			if m.Name() == o.Name() {
				return m.PositionFunc()
			}
		}
	}
	return astro.FixedPosition(obj.EquatorialPos())
}

// renderAltitudeTrace renders the altitude of obj over the next day as a
// sparkline followed by its rise, transit and set.
func renderAltitudeTrace(obj astro.CelestialObject, when time.Time, where coords.Geographic) string {
	samples := astro.SampleTrack(positionFunc(obj), when, traceSpan, traceStep)

	alts := make([]float64, len(samples))
	for i, s := range samples {
		alts[i] = astro.NewEquatorialToHorizontal(s.Time, where).Apply(s.Pos).AltDeg()
	}

	var sb strings.Builder
	for _, alt := range resampleAltitudes(alts, traceWidth) {
		t := numeric.MustClosed(0, 1).Clip(alt / 90)
		block := traceBlocks[min(int(t*7), 7)]
		color := lipgloss.Color(traceColor(t).Hex())
		sb.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(block)))
	}

	if summary := describeWindow(where, samples); summary != "" {
		sb.WriteString("  ")
		sb.WriteString(summary)
	}
	return sb.String()
}

// traceColor interpolates the trace gradient for t in [0, 1].
func traceColor(t float64) colorful.Color {
	if t < 0.5 {
		return traceLow.BlendRgb(traceMid, t*2)
	}
	return traceMid.BlendRgb(traceHigh, (t-0.5)*2)
}

// describeWindow formats the rise-transit-set cycle found in samples.
func describeWindow(where coords.Geographic, samples []astro.EquatorialAt) string {
	w, err := astro.RiseSet(where, samples)
	switch {
	case err != nil || !w.Valid:
		return ""
	case w.NeverVisible:
		return "does not rise"
	case w.AlwaysVisible:
		peak, alt := astro.MaxAltitude(where, samples)
		return fmt.Sprintf("circumpolar, max %.0f° at %s", numeric.ToDeg(alt), peak.UTC().Format("15:04"))
	}

	var parts []string
	if !w.Rise.IsZero() {
		parts = append(parts, "rise "+w.Rise.UTC().Format("15:04"))
	}
	parts = append(parts, fmt.Sprintf("transit %s (%.0f°)", w.Transit.UTC().Format("15:04"), numeric.ToDeg(w.MaxAltitude)))
	if !w.Set.IsZero() {
		parts = append(parts, "set "+w.Set.UTC().Format("15:04"))
	}
	return strings.Join(parts, "  ")
}

// resampleAltitudes averages values into width buckets.
func resampleAltitudes(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}

	result := make([]float64, width)
	perBucket := float64(len(values)) / float64(width)

	for i := 0; i < width; i++ {
		// Every bucket holds at least one value
		startIdx := min(int(float64(i)*perBucket), len(values)-1)
		endIdx := max(min(int(float64(i+1)*perBucket), len(values)), startIdx+1)

		sum := 0.0
		for _, v := range values[startIdx:endIdx] {
			sum += v
		}
		result[i] = sum / float64(endIdx-startIdx)
	}
	return result
}
