package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/litescript/ls-sky/internal/astro"
	"github.com/litescript/ls-sky/internal/blackbody"
	"github.com/litescript/ls-sky/internal/coords"
	"github.com/litescript/ls-sky/internal/numeric"
	"github.com/litescript/ls-sky/internal/report"
	"github.com/litescript/ls-sky/internal/state"
)

const (
	// Terminal cells are about twice as tall as they are wide
	cellAspect = 0.5

	// Cursor pick radius, in cells
	pickRadiusCells = 10.0

	// Star glyphs by magnitude
	glyphStarBright  = '✶' // mag < 1.5
	glyphStarMedium  = '✸' // mag 1.5-3.0
	glyphStarDim     = '•' // mag 3.0-4.0
	glyphStarVeryDim = '·' // mag > 4.0

	glyphPlanet   = '●'
	glyphSun      = '☉'
	glyphMoon     = '☾'
	glyphHorizon  = '·'
	glyphAsterism = '∙'
	glyphCursor   = '+'

	colorPlanet   = "#d9d4c7"
	colorSun      = "#ffd24a"
	colorMoon     = "#e8e8f0"
	colorHorizon  = "#b03a2e"
	colorOctant   = "#e07a5f"
	colorAsterism = "#2f4b7c"
	colorCursor   = "229" // bright gold
	colorLabel    = "250"
	colorEmpty    = "236"
)

// LabelMode controls which objects get a name label.
type LabelMode int

const (
	LabelNone    LabelMode = iota // No labels
	LabelFocused                  // Only the object under the cursor
	LabelAll                      // Sun, Moon, planets and bright named stars
)

// labelMagnitude is the faintest star labelled in LabelAll mode.
const labelMagnitude = 1.0

// SkyViewModel renders the observed sky through its stereographic
// projection, with a cursor that picks the closest object.
type SkyViewModel struct {
	width  int
	height int

	snapshot state.Snapshot

	// Cursor cell, relative to the canvas
	cursorCol int
	cursorRow int
	cursorSet bool

	labelMode LabelMode

	colors *blackbody.Table
}

// NewSkyViewModel creates a new sky view model drawing stars with the
// colours of the given table.
func NewSkyViewModel(colors *blackbody.Table) SkyViewModel {
	return SkyViewModel{labelMode: LabelFocused, colors: colors}
}

// SetSize updates the viewport size.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	if !m.cursorSet {
		w, h := m.canvasSize()
		m.cursorCol, m.cursorRow = w/2, h/2
	}
	return m
}

// UpdateData updates with a new state snapshot.
func (m SkyViewModel) UpdateData(snapshot state.Snapshot) SkyViewModel {
	m.snapshot = snapshot
	return m
}

// MoveCursor places the cursor on a canvas cell.
func (m SkyViewModel) MoveCursor(col, row int) SkyViewModel {
	w, h := m.canvasSize()
	m.cursorCol = clampInt(col, 0, w-1)
	m.cursorRow = clampInt(row, 0, h-1)
	m.cursorSet = true
	return m
}

// Update handles input messages.
func (m SkyViewModel) Update(msg tea.Msg) (SkyViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "h":
			m = m.MoveCursor(m.cursorCol-1, m.cursorRow)
		case "l":
			m = m.MoveCursor(m.cursorCol+1, m.cursorRow)
		case "k":
			m = m.MoveCursor(m.cursorCol, m.cursorRow-1)
		case "j":
			m = m.MoveCursor(m.cursorCol, m.cursorRow+1)
		case "H":
			m = m.MoveCursor(m.cursorCol-8, m.cursorRow)
		case "L":
			m = m.MoveCursor(m.cursorCol+8, m.cursorRow)
		case "K":
			m = m.MoveCursor(m.cursorCol, m.cursorRow-4)
		case "J":
			m = m.MoveCursor(m.cursorCol, m.cursorRow+4)
		case "c":
			w, h := m.canvasSize()
			m = m.MoveCursor(w/2, h/2)
		case "b":
			m.labelMode = (m.labelMode + 1) % 3
		}
	case tea.MouseMsg:
		// Rows are relative to the top of the view
		m = m.MoveCursor(msg.X, msg.Y-1)
	}
	return m, nil
}

// canvasSize returns the drawable area: one header line, three status lines.
func (m SkyViewModel) canvasSize() (int, int) {
	return max(m.width, 1), max(m.height-4, 1)
}

// skyCanvas maps the projection plane onto terminal cells.
type skyCanvas struct {
	width  int
	height int
	scale  float64 // cells per plane unit, horizontally
	cx, cy float64
}

func newSkyCanvas(width, height int, proj coords.StereographicProjection, fovDeg float64) skyCanvas {
	return skyCanvas{
		width:  width,
		height: height,
		scale:  float64(width) / proj.ApplyToAngle(numeric.OfDeg(fovDeg)),
		cx:     float64(width) / 2,
		cy:     float64(height) / 2,
	}
}

// cell returns the cell containing p; ok is false outside the canvas.
func (c skyCanvas) cell(p coords.Cartesian) (col, row int, ok bool) {
	x := math.Floor(c.cx + p.X()*c.scale)
	y := math.Floor(c.cy - p.Y()*c.scale*cellAspect)
	if x < 0 || x >= float64(c.width) || y < 0 || y >= float64(c.height) {
		return 0, 0, false
	}
	return int(x), int(y), true
}

// point returns the plane position of the centre of a cell.
func (c skyCanvas) point(col, row int) coords.Cartesian {
	return coords.NewCartesian(
		(float64(col)+0.5-c.cx)/c.scale,
		(c.cy-float64(row)-0.5)/(c.scale*cellAspect),
	)
}

// View renders the sky view.
func (m SkyViewModel) View() string {
	sky := m.snapshot.Sky
	if sky == nil {
		return "  No sky computed yet"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSkyCanvas())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m SkyViewModel) canvas() skyCanvas {
	w, h := m.canvasSize()
	return newSkyCanvas(w, h, m.snapshot.Sky.Projection(), m.snapshot.View.FOVDeg)
}

func (m SkyViewModel) renderHeader() string {
	v := m.snapshot.View
	title := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	center := v.Center
	info := fmt.Sprintf("%s UTC · %s · view %s %.0f° alt %.0f° · FOV %.0f°",
		v.When.UTC().Format("2006-01-02 15:04:05"),
		formatWhere(v.Where),
		center.AzOctantName("N", "E", "S", "W"), center.AzDeg(), center.AltDeg(),
		v.FOVDeg)
	return "  " + title.Render("SKY") + "  " + dim.Render(info)
}

// drawing is a rune canvas with one foreground colour per cell.
type drawing struct {
	runes  [][]rune
	colors [][]lipgloss.Color
}

func newDrawing(width, height int) drawing {
	d := drawing{
		runes:  make([][]rune, height),
		colors: make([][]lipgloss.Color, height),
	}
	for y := 0; y < height; y++ {
		d.runes[y] = make([]rune, width)
		d.colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			d.runes[y][x] = ' '
			d.colors[y][x] = colorEmpty
		}
	}
	return d
}

func (d drawing) set(col, row int, r rune, color lipgloss.Color) {
	if row < 0 || row >= len(d.runes) || col < 0 || col >= len(d.runes[row]) {
		return
	}
	d.runes[row][col] = r
	d.colors[row][col] = color
}

func (d drawing) empty(col, row int) bool {
	if row < 0 || row >= len(d.runes) || col < 0 || col >= len(d.runes[row]) {
		return false
	}
	return d.runes[row][col] == ' '
}

// disc fills the cells whose centre is within diameter/2 of p. An object
// smaller than a cell takes the cell containing p.
func (d drawing) disc(c skyCanvas, p coords.Cartesian, diameter float64, r rune, color lipgloss.Color) {
	if col, row, ok := c.cell(p); ok {
		d.set(col, row, r, color)
	}

	radius := diameter / 2
	rx := radius * c.scale
	if rx < 1 {
		return
	}
	ry := rx * cellAspect
	x := c.cx + p.X()*c.scale
	y := c.cy - p.Y()*c.scale*cellAspect
	for row := int(math.Floor(y - ry)); row <= int(math.Floor(y+ry)); row++ {
		for col := int(math.Floor(x - rx)); col <= int(math.Floor(x+rx)); col++ {
			if c.point(col, row).DistanceTo(p) <= radius {
				d.set(col, row, r, color)
			}
		}
	}
}

// magnitudeDiameter is the drawn diameter of a star or planet in plane
// units, from 0.95 (magnitude -2 and brighter) down to 0.1 (magnitude 5 and
// fainter) times the image of a 0.5° disc.
func magnitudeDiameter(mag float64, proj coords.StereographicProjection) float64 {
	m := numeric.MustClosed(-2, 5).Clip(mag)
	return (99 - 17*m) / 140 * proj.ApplyToAngle(numeric.OfDeg(0.5))
}

func (d drawing) text(col, row int, s string, color lipgloss.Color) {
	for i, r := range []rune(s) {
		d.set(col+i, row, r, color)
	}
}

func (d drawing) String() string {
	var b strings.Builder
	for y := range d.runes {
		for x := range d.runes[y] {
			style := lipgloss.NewStyle().Foreground(d.colors[y][x])
			b.WriteString(style.Render(string(d.runes[y][x])))
		}
		if y < len(d.runes)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderSkyCanvas draws, back to front: the horizon and its octant labels,
// asterisms, stars, planets, the Moon, the Sun, labels and the cursor.
func (m SkyViewModel) renderSkyCanvas() string {
	sky := m.snapshot.Sky
	c := m.canvas()
	d := newDrawing(c.width, c.height)

	proj := sky.Projection()
	m.drawHorizon(d, c, proj)

	if m.snapshot.View.Asterisms {
		m.drawAsterisms(d, c, sky)
	}

	stars := sky.Stars()
	pos := sky.StarPositions()
	for i, s := range stars {
		p := coords.NewCartesian(pos[2*i], pos[2*i+1])
		diameter := magnitudeDiameter(s.Magnitude(), proj)
		if _, _, ok := c.cell(p); !ok && diameter*c.scale < 2 {
			continue
		}
		d.disc(c, p, diameter, starGlyph(s.Magnitude()), starColor(m.colors, s))
	}

	planets := sky.Planets()
	ppos := sky.PlanetPositions()
	for i, pl := range planets {
		p := coords.NewCartesian(ppos[2*i], ppos[2*i+1])
		d.disc(c, p, magnitudeDiameter(pl.Magnitude(), proj), glyphPlanet, colorPlanet)
	}
	d.disc(c, sky.MoonPosition(), proj.ApplyToAngle(sky.Moon().AngularSize()), glyphMoon, colorMoon)
	d.disc(c, sky.SunPosition(), proj.ApplyToAngle(sky.Sun().AngularSize()), glyphSun, colorSun)

	m.drawLabels(d, c, sky)

	if d.empty(m.cursorCol, m.cursorRow) {
		d.set(m.cursorCol, m.cursorRow, glyphCursor, colorCursor)
	} else if m.cursorRow >= 0 && m.cursorRow < c.height && m.cursorCol >= 0 && m.cursorCol < c.width {
		d.colors[m.cursorRow][m.cursorCol] = colorCursor
	}

	return d.String()
}

// drawHorizon traces the projected 0° parallel and writes the octant names
// just below it.
func (m SkyViewModel) drawHorizon(d drawing, c skyCanvas, proj coords.StereographicProjection) {
	horizon := coords.MustHorizontal(0, 0)
	center := proj.CircleCenterForParallel(horizon)
	radius := proj.CircleRadiusForParallel(horizon)

	// One sample per horizontal cell of circumference, bounded
	n := int(math.Min(numeric.Tau*radius*c.scale*2, 20000))
	n = max(n, 64)
	for i := 0; i < n; i++ {
		theta := numeric.Tau * float64(i) / float64(n)
		p := coords.NewCartesian(
			center.X()+radius*math.Cos(theta),
			center.Y()+radius*math.Sin(theta),
		)
		if col, row, ok := c.cell(p); ok {
			d.set(col, row, glyphHorizon, colorHorizon)
		}
	}

	for az := 0.0; az < 360; az += 45 {
		h := coords.MustHorizontalDeg(az, -0.5)
		name := h.AzOctantName("N", "E", "S", "W")
		col, row, ok := c.cell(proj.Apply(h))
		if !ok {
			continue
		}
		d.text(col-len(name)/2, row+1, name, colorOctant)
	}
}

// drawAsterisms joins consecutive asterism stars with dotted lines. A
// segment is drawn when at least one of its ends is on the canvas.
func (m SkyViewModel) drawAsterisms(d drawing, c skyCanvas, sky *astro.ObservedSky) {
	pos := sky.StarPositions()
	for _, a := range sky.Asterisms() {
		idx, err := sky.AsterismIndices(a)
		if err != nil {
			continue
		}
		for k := 1; k < len(idx); k++ {
			p0 := coords.NewCartesian(pos[2*idx[k-1]], pos[2*idx[k-1]+1])
			p1 := coords.NewCartesian(pos[2*idx[k]], pos[2*idx[k]+1])
			_, _, in0 := c.cell(p0)
			_, _, in1 := c.cell(p1)
			if !in0 && !in1 {
				continue
			}
			drawSegment(d, c, p0, p1)
		}
	}
}

func drawSegment(d drawing, c skyCanvas, p0, p1 coords.Cartesian) {
	dx := (p1.X() - p0.X()) * c.scale
	dy := (p1.Y() - p0.Y()) * c.scale * cellAspect
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	// Leave the end cells to the stars
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		p := coords.NewCartesian(lerp(p0.X(), p1.X(), t), lerp(p0.Y(), p1.Y(), t))
		if col, row, ok := c.cell(p); ok && d.empty(col, row) {
			d.set(col, row, glyphAsterism, colorAsterism)
		}
	}
}

// drawLabels names objects to the right of their glyph according to the
// label mode.
func (m SkyViewModel) drawLabels(d drawing, c skyCanvas, sky *astro.ObservedSky) {
	label := func(obj astro.CelestialObject, p coords.Cartesian, color lipgloss.Color) {
		if col, row, ok := c.cell(p); ok {
			d.text(col+2, row, obj.Name(), color)
		}
	}

	switch m.labelMode {
	case LabelFocused:
		if obj, p, ok := m.Picked(); ok {
			label(obj, p, colorCursor)
		}
	case LabelAll:
		stars := sky.Stars()
		pos := sky.StarPositions()
		for i, s := range stars {
			if s.Magnitude() < labelMagnitude && !strings.HasPrefix(s.Name(), "?") {
				label(s, coords.NewCartesian(pos[2*i], pos[2*i+1]), colorLabel)
			}
		}
		planets := sky.Planets()
		ppos := sky.PlanetPositions()
		for i, p := range planets {
			label(p, coords.NewCartesian(ppos[2*i], ppos[2*i+1]), colorPlanet)
		}
		label(sky.Moon(), sky.MoonPosition(), colorMoon)
		label(sky.Sun(), sky.SunPosition(), colorSun)
	}
}

// Cursor returns the horizontal coordinates under the cursor.
func (m SkyViewModel) Cursor() (coords.Horizontal, bool) {
	if m.snapshot.Sky == nil {
		return coords.Horizontal{}, false
	}
	p := m.canvas().point(m.cursorCol, m.cursorRow)
	return m.snapshot.Sky.Projection().InverseApply(p), true
}

// Picked returns the object closest to the cursor within the pick radius,
// and its plane position.
func (m SkyViewModel) Picked() (astro.CelestialObject, coords.Cartesian, bool) {
	sky := m.snapshot.Sky
	if sky == nil {
		return nil, coords.Cartesian{}, false
	}
	c := m.canvas()
	obj, ok := sky.ObjectClosestTo(c.point(m.cursorCol, m.cursorRow), pickRadiusCells/c.scale)
	if !ok {
		return nil, coords.Cartesian{}, false
	}
	return obj, objectPosition(sky, obj), true
}

// objectPosition finds the plane position of an object of sky.
func objectPosition(sky *astro.ObservedSky, obj astro.CelestialObject) coords.Cartesian {
	switch o := obj.(type) {
	case *astro.Sun:
		return sky.SunPosition()
	case *astro.Moon:
		return sky.MoonPosition()
	case *astro.Planet:
		pos := sky.PlanetPositions()
		for i, p := range sky.Planets() {
			if p == o {
				return coords.NewCartesian(pos[2*i], pos[2*i+1])
			}
		}
	case *astro.Star:
		pos := sky.StarPositions()
		for i, s := range sky.Stars() {
			if s == o {
				return coords.NewCartesian(pos[2*i], pos[2*i+1])
			}
		}
	}
	// Only reachable for objects of another sky
	return sky.Projection().Apply(sky.Projection().Center())
}

func (m SkyViewModel) renderStatus() string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(colorCursor))

	var cursor string
	if h, ok := m.Cursor(); ok {
		cursor = fmt.Sprintf("cursor az %5.1f° (%s)  alt %+5.1f°",
			h.AzDeg(), h.AzOctantName("N", "E", "S", "W"), h.AltDeg())
	}

	var picked, trace string
	if obj, _, ok := m.Picked(); ok {
		picked = accent.Render(describeObject(obj)) + "  " + altitudeBadge(obj, m.snapshot.View.When, m.snapshot.View.Where)
		trace = "  " + dim.Render("next 24h ") + renderAltitudeTrace(obj, m.snapshot.View.When, m.snapshot.View.Where)
	} else {
		picked = dim.Render("nothing under cursor")
	}

	line1 := "  " + dim.Render(cursor) + "   " + picked

	var events []string
	evs := m.snapshot.Events
	for i := max(0, len(evs)-3); i < len(evs); i++ {
		e := evs[i]
		events = append(events, fmt.Sprintf("%s %s %s", e.Timestamp.UTC().Format("15:04"), e.Body, e.Type))
	}
	line2 := fmt.Sprintf("  computed in %s", m.snapshot.ComputeTime.Round(time.Microsecond))
	if len(events) > 0 {
		line2 += " · " + strings.Join(events, " · ")
	}
	return line1 + "\n" + trace + "\n" + dim.Render(line2)
}

// altitudeBadge shows the current altitude of obj in the colour of its
// tier.
func altitudeBadge(obj astro.CelestialObject, when time.Time, where coords.Geographic) string {
	alt := astro.NewEquatorialToHorizontal(when, where).Apply(obj.EquatorialPos()).Alt()
	tier := astro.GetAltitudeTier(alt)
	style := lipgloss.NewStyle().Foreground(report.TierColor(tier))
	return style.Render(fmt.Sprintf("alt %+.1f° %s", numeric.ToDeg(alt), tier))
}

// describeObject formats an object with its equatorial position in
// sexagesimal notation.
func describeObject(obj astro.CelestialObject) string {
	eq := obj.EquatorialPos()
	s := fmt.Sprintf("%s  RA %v  Dec %v  mag %.2f",
		obj.Info(),
		sexa.FmtRA(unit.RA(eq.RA())),
		sexa.FmtAngle(unit.Angle(eq.Dec())),
		obj.Magnitude())
	if star, ok := obj.(*astro.Star); ok {
		s += fmt.Sprintf("  %d K", star.ColorTemperature())
	}
	return s
}

// starGlyph returns the glyph of a star based on its magnitude.
// Brighter stars (lower magnitude) get more prominent symbols.
func starGlyph(mag float64) rune {
	switch {
	case mag < 1.5:
		return glyphStarBright
	case mag < 3.0:
		return glyphStarMedium
	case mag < 4.0:
		return glyphStarDim
	default:
		return glyphStarVeryDim
	}
}

// starColor returns the blackbody colour of the star, darkened for faint
// magnitudes.
func starColor(colors *blackbody.Table, s *astro.Star) lipgloss.Color {
	col, err := colors.ColorFor(float64(s.ColorTemperature()))
	if err != nil {
		col = colorful.Color{R: 1, G: 1, B: 1}
	}
	fade := numeric.MustClosed(0, 0.6).Clip((s.Magnitude() - 1) / 10)
	return lipgloss.Color(col.BlendRgb(colorful.Color{}, fade).Clamped().Hex())
}

func formatWhere(g coords.Geographic) string {
	ew, ns := "E", "N"
	if g.LonDeg() < 0 {
		ew = "W"
	}
	if g.LatDeg() < 0 {
		ns = "S"
	}
	return fmt.Sprintf("%.2f°%s %.2f°%s", math.Abs(g.LonDeg()), ew, math.Abs(g.LatDeg()), ns)
}

// lerp linear interpolation
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Init returns nil cmd
func (m SkyViewModel) Init() tea.Cmd {
	return nil
}
