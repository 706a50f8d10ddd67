// Package state provides thread-safe management of the viewing parameters
// and the sky observed with them.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-sky/internal/astro"
	"github.com/litescript/ls-sky/internal/coords"
	"github.com/litescript/ls-sky/internal/numeric"
)

const (
	PanStepDeg  = 10.0
	TiltStepDeg = 5.0

	defaultMaxEvents = 50
)

var (
	centerAlt = numeric.MustClosed(numeric.OfDeg(5), numeric.OfDeg(90))
	fovRange  = numeric.MustClosed(30, 150)
)

// View is the set of viewing parameters.
type View struct {
	Where     coords.Geographic
	When      time.Time
	Center    coords.Horizontal
	FOVDeg    float64
	Asterisms bool
}

// Config sizes the manager's event log.
type Config struct {
	MaxEvents int
}

func DefaultConfig() Config {
	return Config{MaxEvents: defaultMaxEvents}
}

// Manager owns the viewing parameters and the sky computed from them.
// Every change of instant, place or centre recomputes the sky.
type Manager struct {
	mu sync.RWMutex

	cat  *astro.StarCatalogue
	view View

	sky         *astro.ObservedSky
	computeTime time.Duration

	watch  horizonWatch
	events *eventLog
}

// NewManager creates a manager and computes the initial sky. The centre
// altitude and field of view are clipped to their ranges.
func NewManager(cfg Config, cat *astro.StarCatalogue, view View) *Manager {
	if cfg.MaxEvents <= 0 {
		cfg.MaxEvents = defaultMaxEvents
	}
	view.Center = clipCenter(view.Center.Az(), view.Center.Alt())
	view.FOVDeg = fovRange.Clip(view.FOVDeg)

	m := &Manager{
		cat:    cat,
		view:   view,
		watch:  make(horizonWatch),
		events: newEventLog(cfg.MaxEvents),
	}
	m.observe()
	return m
}

func clipCenter(az, alt float64) coords.Horizontal {
	return coords.MustHorizontal(numeric.NormalizePositive(az), centerAlt.Clip(alt))
}

// observe computes the sky of the current view and logs its horizon
// crossings. The write lock must be held.
func (m *Manager) observe() {
	start := time.Now()
	proj := coords.NewStereographicProjection(m.view.Center)
	m.sky = astro.NewObservedSky(m.view.When, m.view.Where, proj, m.cat)
	m.computeTime = time.Since(start)
	for _, e := range m.watch.observe(m.sky) {
		m.events.add(e)
	}
}

// change edits the view under the write lock. Edits that move the sky set
// resky.
func (m *Manager) change(resky bool, edit func(v *View)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	edit(&m.view)
	if resky {
		m.observe()
	}
}

// SetWhen changes the observed instant.
func (m *Manager) SetWhen(t time.Time) {
	m.change(true, func(v *View) { v.When = t })
}

// SetWhere moves the observer.
func (m *Manager) SetWhere(g coords.Geographic) {
	m.change(true, func(v *View) { v.Where = g })
}

// Pan turns the view by steps of PanStepDeg in azimuth; positive is east.
func (m *Manager) Pan(steps int) {
	m.change(true, func(v *View) {
		v.Center = clipCenter(v.Center.Az()+numeric.OfDeg(float64(steps)*PanStepDeg), v.Center.Alt())
	})
}

// Tilt raises the view by steps of TiltStepDeg, keeping the centre
// between 5° and 90° of altitude.
func (m *Manager) Tilt(steps int) {
	m.change(true, func(v *View) {
		v.Center = clipCenter(v.Center.Az(), v.Center.Alt()+numeric.OfDeg(float64(steps)*TiltStepDeg))
	})
}

// Zoom changes the field of view by deltaDeg, within [30°, 150°].
func (m *Manager) Zoom(deltaDeg float64) {
	m.change(false, func(v *View) { v.FOVDeg = fovRange.Clip(v.FOVDeg + deltaDeg) })
}

func (m *Manager) ToggleAsterisms() {
	m.change(false, func(v *View) { v.Asterisms = !v.Asterisms })
}

// Snapshot is a consistent copy of the manager's state. The sky is
// immutable and shared.
type Snapshot struct {
	View        View
	Sky         *astro.ObservedSky
	ComputeTime time.Duration
	Events      []Event
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		View:        m.view,
		Sky:         m.sky,
		ComputeTime: m.computeTime,
		Events:      m.events.ordered(),
	}
}

// RecentEvents returns up to n of the latest horizon crossings, oldest
// first.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := m.events.ordered()
	return all[len(all)-min(max(n, 0), len(all)):]
}
