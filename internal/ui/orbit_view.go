package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-sky/internal/astro"
	"github.com/litescript/ls-sky/internal/numeric"
	"github.com/litescript/ls-sky/internal/state"
)

// orbitSamples is the number of points traced per orbit.
const orbitSamples = 180

const (
	focusSun    = -1
	defaultZoom = 3 // 1x
	panStep     = 0.1
	hudLines    = 3

	glyphOrbit    = '·'
	glyphEarth    = '⊕'
	glyphInner    = '•'
	glyphGiant    = '○'
	glyphFocus    = '●'
	glyphFocusBig = '◉'

	colorOrbit = "240"
	colorInner = "39"
	colorGiant = "208"
	colorEarth = "46"
	colorFocus = "229"
	colorName  = "249"
)

var zoomLevels = []float64{0.25, 0.5, 0.75, 1.0, 1.5, 2.0, 3.0, 5.0, 10.0}

var (
	hudTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	hudKey   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	hudValue = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// OrbitViewModel shows the planets on their orbits, seen from the north
// ecliptic pole with the Sun at the origin.
type OrbitViewModel struct {
	width, height int

	bodies []astro.OrbitSample
	orbits [][]astro.Vec3 // parallel to bodies

	focusIdx   int // index in bodies, or focusSun
	zoomIdx    int
	panX, panY float64 // display units
	scaleMode  astro.ScaleMode
	labelMode  LabelMode
	follow     bool // recentre on the focused body after every change
	showOrbits bool
}

// NewOrbitViewModel returns an orbit view centred on the Sun.
func NewOrbitViewModel() OrbitViewModel {
	return OrbitViewModel{
		focusIdx:   focusSun,
		zoomIdx:    defaultZoom,
		scaleMode:  astro.ScaleLogR,
		labelMode:  LabelAll,
		follow:     true,
		showOrbits: true,
	}
}

func (m OrbitViewModel) scale() float64 {
	return zoomLevels[clampInt(m.zoomIdx, 0, len(zoomLevels)-1)]
}

func (m OrbitViewModel) projection() astro.ProjectionConfig {
	return astro.ProjectionConfig{Scale: m.scale(), Mode: m.scaleMode}
}

func (m OrbitViewModel) SetSize(width, height int) OrbitViewModel {
	m.width, m.height = width, height
	return m
}

// UpdateData moves the planets to the observed instant of snapshot.
func (m OrbitViewModel) UpdateData(snapshot state.Snapshot) OrbitViewModel {
	days := astro.J2010.DaysUntil(snapshot.View.When)
	m.bodies = astro.SolarSystem(days)
	if m.orbits == nil {
		// Orbit shapes do not depend on the date
		m.orbits = make([][]astro.Vec3, len(m.bodies))
		for i, b := range m.bodies {
			m.orbits[i] = astro.OrbitPath(b.Model, days, orbitSamples)
		}
	}
	if m.follow {
		m.recentre()
	}
	return m
}

type orbitAction func(*OrbitViewModel)

var orbitKeys = map[string]orbitAction{
	"j":     func(m *OrbitViewModel) { m.cycleFocus(-1) },
	"[":     func(m *OrbitViewModel) { m.cycleFocus(-1) },
	"k":     func(m *OrbitViewModel) { m.cycleFocus(1) },
	"]":     func(m *OrbitViewModel) { m.cycleFocus(1) },
	"up":    func(m *OrbitViewModel) { m.pan(0, -1) },
	"down":  func(m *OrbitViewModel) { m.pan(0, 1) },
	"left":  func(m *OrbitViewModel) { m.pan(-1, 0) },
	"right": func(m *OrbitViewModel) { m.pan(1, 0) },
	"c": func(m *OrbitViewModel) {
		m.panX, m.panY = 0, 0
		m.follow = false
	},
	"f": func(m *OrbitViewModel) { m.follow = true },
	"+": func(m *OrbitViewModel) { m.zoomIdx = min(m.zoomIdx+1, len(zoomLevels)-1) },
	"=": func(m *OrbitViewModel) { m.zoomIdx = min(m.zoomIdx+1, len(zoomLevels)-1) },
	"-": func(m *OrbitViewModel) { m.zoomIdx = max(m.zoomIdx-1, 0) },
	"0": func(m *OrbitViewModel) { m.zoomIdx = defaultZoom },
	"z": func(m *OrbitViewModel) { m.scaleMode = (m.scaleMode + 1) % 3 },
	"b": func(m *OrbitViewModel) { m.labelMode = (m.labelMode + 1) % 3 },
	"t": func(m *OrbitViewModel) { m.showOrbits = !m.showOrbits },
	"r": func(m *OrbitViewModel) {
		m.zoomIdx = defaultZoom
		m.focusIdx = focusSun
		m.follow = true
	},
}

// Update applies key presses to the view.
func (m OrbitViewModel) Update(msg tea.Msg) (OrbitViewModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if act, ok := orbitKeys[key.String()]; ok {
		act(&m)
		if m.follow {
			m.recentre()
		}
	}
	return m, nil
}

// cycleFocus steps the focus through the Sun and the planets.
func (m *OrbitViewModel) cycleFocus(step int) {
	if len(m.bodies) == 0 {
		return
	}
	n := len(m.bodies) + 1
	m.focusIdx = (m.focusIdx+1+step+n)%n - 1
	m.follow = true
}

func (m *OrbitViewModel) pan(dx, dy float64) {
	m.panX += dx * panStep / m.scale()
	m.panY += dy * panStep / m.scale()
	m.follow = false
}

func (m *OrbitViewModel) recentre() {
	body, ok := m.FocusedBody()
	if !ok {
		m.panX, m.panY = 0, 0
		return
	}
	p := astro.ProjectEclipticTopDown(body.Pos, m.projection())
	m.panX, m.panY = -p.X, -p.Y
}

// FocusedBody returns the focused planet; ok is false when the Sun has
// the focus.
func (m OrbitViewModel) FocusedBody() (astro.OrbitSample, bool) {
	if m.focusIdx < 0 || m.focusIdx >= len(m.bodies) {
		return astro.OrbitSample{}, false
	}
	return m.bodies[m.focusIdx], true
}

// SetFocusByName focuses and centres the named planet, or the Sun.
// Unknown names leave the view unchanged.
func (m *OrbitViewModel) SetFocusByName(name string) {
	idx, found := focusSun, strings.EqualFold(name, "Sun")
	for i, b := range m.bodies {
		if !found && strings.EqualFold(b.Model.Name(), name) {
			idx, found = i, true
		}
	}
	if !found {
		return
	}
	m.focusIdx = idx
	m.follow = true
	m.recentre()
}

func (m OrbitViewModel) View() string {
	if m.width < 40 || m.height < 10 {
		return "Terminal too small for solar system view"
	}
	if m.bodies == nil {
		return "  No positions computed yet"
	}
	return m.renderOrbits() + "\n" + m.renderHUD()
}

// orbitFrame maps projected display units onto canvas cells.
type orbitFrame struct {
	width, height int
	cx, cy        float64
	unit          float64 // cells per display unit
}

func (m OrbitViewModel) frame() orbitFrame {
	w, h := m.width, max(m.height-hudLines, 5)
	// log10(30 AU + 1) is about 1.5 display units
	unit := math.Min(float64(w)/2, float64(h)) * 0.9 / 1.5
	return orbitFrame{
		width:  w,
		height: h,
		cx:     float64(w)/2 + m.panX*unit,
		cy:     float64(h)/2 - m.panY*unit*cellAspect,
		unit:   unit,
	}
}

func (f orbitFrame) cell(p astro.ProjectedPoint) (col, row int, ok bool) {
	col = int(math.Round(f.cx + p.X*f.unit))
	row = int(math.Round(f.cy - p.Y*f.unit*cellAspect))
	return col, row, col >= 0 && col < f.width && row >= 0 && row < f.height
}

// renderOrbits draws the orbit traces, the planets, the Sun and the
// names.
func (m OrbitViewModel) renderOrbits() string {
	f := m.frame()
	cfg := m.projection()
	d := newDrawing(f.width, f.height)

	if m.showOrbits {
		for _, path := range m.orbits {
			for _, v := range path {
				if col, row, ok := f.cell(astro.ProjectEclipticTopDown(v, cfg)); ok {
					d.set(col, row, glyphOrbit, colorOrbit)
				}
			}
		}
	}

	type placed struct {
		col, row int
		name     string
		focused  bool
	}
	var names []placed
	for i, b := range m.bodies {
		col, row, ok := f.cell(astro.ProjectEclipticTopDown(b.Pos, cfg))
		if !ok {
			continue
		}
		focused := i == m.focusIdx
		d.set(col, row, bodyGlyph(b.Model, focused), bodyColor(b.Model, focused))
		names = append(names, placed{col, row, b.Model.Name(), focused})
	}
	if col, row, ok := f.cell(astro.ProjectedPoint{}); ok {
		d.set(col, row, glyphSun, colorSun)
		names = append(names, placed{col, row, "Sun", m.focusIdx == focusSun})
	}

	for _, n := range names {
		if m.labelMode == LabelNone || (m.labelMode == LabelFocused && !n.focused) {
			continue
		}
		text, color := n.name, lipgloss.Color(colorName)
		if n.focused {
			text, color = "◄ "+n.name, colorFocus
		}
		for i, r := range []rune(text) {
			col := n.col + 2 + i
			if col >= f.width {
				break
			}
			if d.empty(col, n.row)|| d.runes[n.row][col] == glyphOrbit {
				d.set(col, n.row, r, color)
			}
		}
	}
	return d.String()
}

func bodyGlyph(model *astro.PlanetModel, focused bool) rune {
	switch {
	case model == astro.Earth:
		return glyphEarth
	case isGiant(model) && focused:
		return glyphFocusBig
	case isGiant(model):
		return glyphGiant
	case focused:
		return glyphFocus
	default:
		return glyphInner
	}
}

func bodyColor(model *astro.PlanetModel, focused bool) lipgloss.Color {
	switch {
	case focused:
		return colorFocus
	case model == astro.Earth:
		return colorEarth
	case isGiant(model):
		return colorGiant
	default:
		return colorInner
	}
}

func isGiant(model *astro.PlanetModel) bool {
	return model.Side() == astro.Superior && model != astro.Mars
}

func hudField(key, value string) string {
	return hudKey.Render(key+" ") + hudValue.Render(value)
}

func (m OrbitViewModel) renderHUD() string {
	var title, position string
	if body, ok := m.FocusedBody(); ok {
		fields := []string{
			hudTitle.Render("◆ " + body.Model.Name()),
			hudField("Sun dist:", fmt.Sprintf("%.3f AU", body.Pos.Norm())),
		}
		if earth, ok := m.earth(); ok && body.Model != astro.Earth {
			fields = append(fields, hudField("Earth dist:", fmt.Sprintf("%.3f AU", body.Pos.Sub(earth.Pos).Norm())))
		}
		title = strings.Join(fields, "  ")
		position = hudField("Ecl Lon:", fmt.Sprintf("%.1f°", numeric.ToDeg(body.Pos.EclipticLon()))) + "  " +
			hudField("Ecl Lat:", fmt.Sprintf("%+.2f°", numeric.ToDeg(body.Pos.EclipticLat())))
	} else {
		title = hudTitle.Render("☉ Sun") + "  " + hudKey.Render("(center of solar system)")
		position = hudKey.Render("heliocentric ecliptic, north up")
	}

	labels := map[LabelMode]string{LabelNone: "off", LabelFocused: "focus", LabelAll: "all"}
	orbits := "off"
	if m.showOrbits {
		orbits = "on"
	}
	settings := strings.Join([]string{
		hudField("Mode:", m.scaleMode.String()),
		hudField("Zoom:", fmt.Sprintf("%.2gx", m.scale())),
		hudField("Labels:", labels[m.labelMode]),
		hudField("Orbits:", orbits),
	}, "  ")

	return title + "\n" + position + "\n" + settings
}

func (m OrbitViewModel) earth() (astro.OrbitSample, bool) {
	for _, b := range m.bodies {
		if b.Model == astro.Earth {
			return b, true
		}
	}
	return astro.OrbitSample{}, false
}
