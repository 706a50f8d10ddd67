// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-sky/internal/blackbody"
	"github.com/litescript/ls-sky/internal/state"
	"github.com/litescript/ls-sky/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewSky ViewMode = iota
	ViewOrbit
)

const viewCount = 2

// zoomStepDeg is the field of view change of one zoom key press.
const zoomStepDeg = 10.0

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state    *state.Manager
	animator *state.Animator
	accIdx   int // Index into state.Accelerators
	now      func() time.Time

	// UI state
	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	statusMsg string
	animTick  int // Animation tick for spinner and shimmer effects

	// Sub-models
	skyView     SkyViewModel
	orbitView   OrbitViewModel

	snapshot state.Snapshot
}

// New creates a new root UI model. Stars are coloured from colors. The
// named accelerator drives the animation; unknown names fall back to the
// first one.
func New(stateMgr *state.Manager, colors *blackbody.Table, accelerator string) Model {
	accIdx := 0
	for i, a := range state.Accelerators {
		if a.Name == accelerator {
			accIdx = i
		}
	}

	m := Model{
		state:       stateMgr,
		animator:    state.NewAnimator(state.Accelerators[accIdx].Accelerator),
		accIdx:      accIdx,
		now:         time.Now,
		viewMode:    ViewSky,
		skyView:     NewSkyViewModel(colors),
		orbitView:   NewOrbitViewModel(),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		animTickCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "s":
			m.viewMode = ViewSky
		case "2", "o":
			m.viewMode = ViewOrbit
		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount

		case " ":
			m.toggleAnimation()
		case ">", ".":
			m.cycleAccelerator(1)
		case "<", ",":
			m.cycleAccelerator(-1)
		case "n":
			m.animator.Stop()
			m.state.SetWhen(m.now())
			m.statusMsg = "Observation time set to now"
			m.refresh()

		default:
			if m.viewMode == ViewSky && m.handleSkyKey(msg.String()) {
				m.refresh()
				break
			}
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.MouseMsg:
		if m.viewMode != ViewSky {
			break
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.state.Zoom(-zoomStepDeg)
			m.refresh()
		case tea.MouseButtonWheelDown:
			m.state.Zoom(zoomStepDeg)
			m.refresh()
		default:
			msg.Y -= m.contentTop()
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo takes ~11 lines, footer ~2 lines
		contentHeight := msg.Height - m.contentTop() - 2
		m.skyView = m.skyView.SetSize(msg.Width, contentHeight)
		m.orbitView = m.orbitView.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m.refresh()

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++
		if t, ok := m.animator.Tick(m.now()); ok {
			m.state.SetWhen(t)
			m.refresh()
		}

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

// handleSkyKey applies the viewing keys of the sky view to the state
// manager. It reports whether the key was consumed.
func (m *Model) handleSkyKey(key string) bool {
	switch key {
	case "left":
		m.state.Pan(-1)
	case "right":
		m.state.Pan(1)
	case "up":
		m.state.Tilt(1)
	case "down":
		m.state.Tilt(-1)
	case "+", "=":
		m.state.Zoom(-zoomStepDeg)
	case "-":
		m.state.Zoom(zoomStepDeg)
	case "a":
		m.state.ToggleAsterisms()
	default:
		return false
	}
	return true
}

func (m *Model) toggleAnimation() {
	if m.animator.Running() {
		m.animator.Stop()
		m.statusMsg = "Animation paused"
		return
	}
	m.animator.Start(m.now(), m.state.Snapshot().View.When)
	m.statusMsg = "Animation running at " + state.Accelerators[m.accIdx].Name
}

func (m *Model) cycleAccelerator(delta int) {
	n := len(state.Accelerators)
	m.accIdx = ((m.accIdx+delta)%n + n) % n
	acc := state.Accelerators[m.accIdx]
	m.animator.SetAccelerator(acc.Accelerator, m.now(), m.state.Snapshot().View.When)
	m.statusMsg = "Accelerator " + acc.Name
}

// refresh pulls a fresh snapshot and pushes it to the sub-models.
func (m *Model) refresh() {
	m.snapshot = m.state.Snapshot()
	m.skyView = m.skyView.UpdateData(m.snapshot)
	m.orbitView = m.orbitView.UpdateData(m.snapshot)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewSky:
		m.skyView, cmd = m.skyView.Update(msg)
	case ViewOrbit:
		m.orbitView, cmd = m.orbitView.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewSky:
		content = m.skyView.View()
	case ViewOrbit:
		content = m.orbitView.View()
	}

	return m.renderFrame(content)
}

func (m Model) renderFrame(content string) string {
	return strings.Join([]string{m.renderHeader(), content, m.renderFooter()}, "\n")
}

// contentTop returns the screen row where the active view starts.
func (m Model) contentTop() int {
	return strings.Count(m.renderHeader(), "\n") + 1
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderTabs()
}

var logo = []string{
	`  ██╗     ███████╗      ███████╗██╗  ██╗██╗   ██╗`,
	`  ██║     ██╔════╝      ██╔════╝██║ ██╔╝╚██╗ ██╔╝`,
	`  ██║     ███████╗█████╗███████╗█████╔╝  ╚████╔╝ `,
	`  ██║     ╚════██║╚════╝╚════██║██╔═██╗   ╚██╔╝  `,
	`  ███████╗███████║      ███████║██║  ██╗   ██║   `,
	`  ╚══════╝╚══════╝      ╚══════╝╚═╝  ╚═╝   ╚═╝   `,
}

// renderLogo draws the banner with a truecolor gradient, followed by the
// tagline and version.
func (m Model) renderLogo() string {
	lines := []string{""}
	for row, line := range logo {
		runes := []rune(line)
		cells := make([]string, len(runes))
		for col, r := range runes {
			hex := gradientColor(col, row, len(runes), len(logo))
			cells[col] = lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(string(r))
		}
		lines = append(lines, strings.Join(cells, ""))
	}
	lines = append(lines,
		footerDim.Render("  Sky Engine · Stereographic Night Sky"),
		footerDim.Render(fmt.Sprintf("  (c) 2025 litescript.net | v%s", version.Version)),
		"", "")
	return strings.Join(lines, "\n")
}

// Logo gradient stops: blue, purple, magenta, pink
var gradientStops = []colorful.Color{
	{R: 59.0 / 255, G: 130.0 / 255, B: 246.0 / 255},
	{R: 139.0 / 255, G: 92.0 / 255, B: 246.0 / 255},
	{R: 217.0 / 255, G: 70.0 / 255, B: 239.0 / 255},
	{R: 236.0 / 255, G: 72.0 / 255, B: 153.0 / 255},
}

// gradientColor returns a hex color for a position in the logo gradient:
// horizontal across the stops, darker toward the bottom.
func gradientColor(col, row, width, height int) string {
	x := float64(col) / float64(max(width, 1)) * float64(len(gradientStops)-1)
	i := min(int(x), len(gradientStops)-2)
	c := gradientStops[i].BlendRgb(gradientStops[i+1], x-float64(i))

	// Vertical fade: brighter at top, darker toward bottom
	fade := float64(row) / float64(max(height, 1)) * 0.5
	return c.BlendRgb(colorful.Color{}, fade).Clamped().Hex()
}

var tabActive = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)

func (m Model) renderTabs() string {
	tabs := []string{"[1] Sky", "[2] Orbit"}
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			tabs[i] = tabActive.Render("▶ " + tab)
		} else {
			tabs[i] = footerDim.Render("  " + tab)
		}
	}
	return "  " + strings.Join(tabs, "  ")
}

var (
	footerDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	footerAccent = lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))
)

var viewHelp = map[ViewMode]string{
	ViewSky:   "←→: pan | ↑↓: tilt | +/-: zoom | hjkl/mouse: cursor | a: asterisms | b: labels",
	ViewOrbit: "j/k: focus | +/-: zoom | arrows: pan | f: find | b: labels | z: mode | t: orbits",
}

const timeHelp = " | space: play | </>: speed | n: now"

// Braille spinner shown while the clock runs
var spinner = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

func (m Model) renderFooter() string {
	acc := state.Accelerators[m.accIdx].Name
	clock := footerAccent.Render("■") + footerDim.Render(" paused ("+acc+")")
	if m.animator.Running() {
		clock = footerAccent.Render(string(spinner[m.animTick%len(spinner)])) + " " + m.shimmer("running "+acc)
	}

	lines := []string{"  " + clock + "  " + footerDim.Render("|") + "  " + footerDim.Render(viewHelp[m.viewMode]+timeHelp)}
	if m.statusMsg != "" {
		lines = append(lines, "  "+footerDim.Render(m.statusMsg))
	}
	return strings.Join(lines, "\n")
}

const (
	refreshInterval = 500 * time.Millisecond
	animInterval    = 80 * time.Millisecond
)

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func animTickCmd() tea.Cmd {
	return tea.Tick(animInterval, func(t time.Time) tea.Msg { return AnimTickMsg(t) })
}

// Shimmer colours, from resting text to the crest of the sweep
var (
	shimmerBase  = colorful.Color{R: 80.0 / 255, G: 70.0 / 255, B: 120.0 / 255}
	shimmerCrest = colorful.Color{R: 180.0 / 255, G: 160.0 / 255, B: 220.0 / 255}
)

// shimmer renders text with a highlight sweeping across it, one rune per
// animation tick.
func (m Model) shimmer(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	const halfWidth = 5
	crest := m.animTick%(len(runes)+2*halfWidth) - halfWidth

	var b strings.Builder
	for i, r := range runes {
		t := math.Max(0, 1-math.Abs(float64(i-crest))/halfWidth)
		c := shimmerBase.BlendLab(shimmerCrest, t).Clamped()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return b.String()
}
