// Package report writes the observed sky as text tables and JSON for the
// headless modes.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/litescript/ls-sky/internal/astro"
	"github.com/litescript/ls-sky/internal/coords"
	"github.com/litescript/ls-sky/internal/numeric"
	"github.com/litescript/ls-sky/internal/state"
)

const (
	// Rise and set are searched over one day from the observed instant
	trackSpan = 24 * time.Hour
	trackStep = 10 * time.Minute
)

// BodyRow is one object of the summary.
type BodyRow struct {
	Name           string     `json:"name"`
	RAHours        float64    `json:"ra_hours"`
	DecDeg         float64    `json:"dec_deg"`
	AzDeg          float64    `json:"az_deg"`
	AltDeg         float64    `json:"alt_deg"`
	Octant         string     `json:"octant"`
	Tier           string     `json:"tier"`
	Magnitude      float64    `json:"magnitude"`
	AngularSizeDeg float64    `json:"angular_size_deg"`
	Rise           *time.Time `json:"rise,omitempty"`
	Transit        *time.Time `json:"transit,omitempty"`
	Set            *time.Time `json:"set,omitempty"`
	MaxAltDeg      *float64   `json:"max_alt_deg,omitempty"`
	Circumpolar    bool       `json:"circumpolar,omitempty"`
	NeverRises     bool       `json:"never_rises,omitempty"`

	eq coords.Equatorial
}

// SkyExport is the JSON-serializable representation of an observed sky.
type SkyExport struct {
	Timestamp time.Time     `json:"timestamp"`
	LonDeg    float64       `json:"lon_deg"`
	LatDeg    float64       `json:"lat_deg"`
	Bodies    []BodyRow     `json:"bodies"`
	Stars     []BodyRow     `json:"stars"`
	Events    []state.Event `json:"events,omitempty"`
}

// Bodies returns the Sun, the Moon and the planets of sky with their
// horizontal position and their next rise, transit and set.
func Bodies(sky *astro.ObservedSky) []BodyRow {
	when, where := sky.When(), sky.Where()
	conv := astro.NewEquatorialToHorizontal(when, where)

	rows := []BodyRow{
		bodyRow(sky.Sun(), conv),
		bodyRow(sky.Moon(), conv),
	}
	withWindow(&rows[0], where, astro.SampleTrack(astro.SunPositionFunc, when, trackSpan, trackStep))
	withWindow(&rows[1], where, astro.SampleTrack(astro.MoonPositionFunc, when, trackSpan, trackStep))

	for _, p := range sky.Planets() {
		row := bodyRow(p, conv)
		if model := modelFor(p.Name()); model != nil {
			withWindow(&row, where, astro.SampleTrack(model.PositionFunc(), when, trackSpan, trackStep))
		}
		rows = append(rows, row)
	}
	return rows
}

// BrightStars returns the n brightest stars of sky above the horizon,
// brightest first.
func BrightStars(sky *astro.ObservedSky, n int) []BodyRow {
	conv := astro.NewEquatorialToHorizontal(sky.When(), sky.Where())

	var rows []BodyRow
	for _, s := range sky.Stars() {
		row := bodyRow(s, conv)
		if row.AltDeg > 0 {
			rows = append(rows, row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Magnitude < rows[j].Magnitude })
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// ExportSky converts an observed sky to an exportable format. A nil sky
// exports only the events.
func ExportSky(sky *astro.ObservedSky, stars int, events []state.Event) *SkyExport {
	if sky == nil {
		return &SkyExport{Events: events}
	}
	return &SkyExport{
		Timestamp: sky.When(),
		LonDeg:    sky.Where().LonDeg(),
		LatDeg:    sky.Where().LatDeg(),
		Bodies:    Bodies(sky),
		Stars:     BrightStars(sky, stars),
		Events:    events,
	}
}

// WriteJSON writes the export as JSON to the given writer.
func (s *SkyExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func bodyRow(obj astro.CelestialObject, conv *astro.EquatorialToHorizontalConversion) BodyRow {
	eq := obj.EquatorialPos()
	hor := conv.Apply(eq)
	return BodyRow{
		Name:           obj.Name(),
		RAHours:        eq.RAHr(),
		DecDeg:         eq.DecDeg(),
		AzDeg:          hor.AzDeg(),
		AltDeg:         hor.AltDeg(),
		Octant:         hor.AzOctantName("N", "E", "S", "W"),
		Tier:           astro.GetAltitudeTier(hor.Alt()).String(),
		Magnitude:      obj.Magnitude(),
		AngularSizeDeg: numeric.ToDeg(obj.AngularSize()),
		eq:             eq,
	}
}

func withWindow(row *BodyRow, where coords.Geographic, samples []astro.EquatorialAt) {
	w, err := astro.RiseSet(where, samples)
	if err != nil || !w.Valid {
		return
	}
	row.Circumpolar = w.AlwaysVisible
	row.NeverRises = w.NeverVisible
	if w.NeverVisible {
		return
	}
	maxAlt := numeric.ToDeg(w.MaxAltitude)
	row.MaxAltDeg = &maxAlt
	row.Rise = timePtr(w.Rise)
	row.Transit = timePtr(w.Transit)
	row.Set = timePtr(w.Set)
}

func modelFor(name string) *astro.PlanetModel {
	for _, m := range astro.AllPlanetModels {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

var tierColors = map[astro.AltitudeTier]lipgloss.Color{
	astro.AltitudeNone:   "240",
	astro.AltitudeLow:    "208",
	astro.AltitudeMedium: "220",
	astro.AltitudeHigh:   "46",
}

// TierColor is the display colour of an altitude tier.
func TierColor(tier astro.AltitudeTier) lipgloss.Color {
	return tierColors[tier]
}

// altCell formats an altitude in degrees, coloured by its tier when the
// output supports colour.
func altCell(altDeg float64) string {
	tier := astro.GetAltitudeTier(numeric.OfDeg(altDeg))
	return lipgloss.NewStyle().Foreground(TierColor(tier)).Render(fmt.Sprintf("%5.1f°", altDeg))
}

// WriteSummaryTable writes a text table of rows to the given writer.
func WriteSummaryTable(w io.Writer, title string, rows []BodyRow, when time.Time, where coords.Geographic) {
	fmt.Fprintf(w, "%s @ %s from %s\n", title, when.UTC().Format(time.RFC3339), where)
	fmt.Fprintln(w, strings.Repeat("─", 100))

	if len(rows) == 0 {
		fmt.Fprintln(w, "Nothing to show")
		return
	}

	fmt.Fprintf(w, "%-14s %-14s %-14s %7s %6s %-3s %6s  %-5s %-5s %-5s\n",
		"Object", "RA", "Dec", "Az", "Alt", "", "Mag", "Rise", "Trans", "Set")
	fmt.Fprintln(w, strings.Repeat("─", 100))

	for _, r := range rows {
		fmt.Fprintf(w, "%-14s %-14s %-14s %6.1f° %s %-3s %6.2f  %-5s %-5s %-5s\n",
			truncateStr(r.Name, 14),
			fmt.Sprintf("%.0s", sexa.FmtRA(unit.RA(r.eq.RA()))),
			fmt.Sprintf("%.0s", sexa.FmtAngle(unit.Angle(r.eq.Dec()))),
			r.AzDeg,
			altCell(r.AltDeg),
			r.Octant,
			r.Magnitude,
			clock(r.Rise, r),
			clock(r.Transit, r),
			clock(r.Set, r),
		)
	}

	fmt.Fprintf(w, "\nTotal: %d objects\n", len(rows))
}

// clock formats an event time as UTC hours and minutes.
func clock(t *time.Time, r BodyRow) string {
	switch {
	case t != nil:
		return t.UTC().Format("15:04")
	case r.Circumpolar:
		return "up"
	case r.NeverRises:
		return "down"
	default:
		return "-"
	}
}

// WriteEvents writes the last n horizon crossings.
func WriteEvents(w io.Writer, events []state.Event, n int) {
	fmt.Fprintln(w, "Horizon events")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	if len(events) == 0 {
		fmt.Fprintln(w, "No events")
		return
	}
	if len(events) > n {
		events = events[len(events)-n:]
	}
	for _, e := range events {
		fmt.Fprintf(w, "%s  %-4s  %s\n", e.Timestamp.UTC().Format("2006-01-02 15:04"), e.Type, e.Body)
	}
}

func truncateStr(s string, maxLen int) string {
	if len([]rune(s)) <= maxLen {
		return s
	}
	r := []rune(s)
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-2]) + ".."
}
