package state

import (
	"sync"
	"time"
)

// Accelerator maps the real time elapsed since an animation started to
// the observed instant.
type Accelerator interface {
	Adjust(start time.Time, elapsed time.Duration) time.Time
}

// AcceleratorFunc adapts a function to the Accelerator interface.
type AcceleratorFunc func(start time.Time, elapsed time.Duration) time.Time

func (f AcceleratorFunc) Adjust(start time.Time, elapsed time.Duration) time.Time {
	return f(start, elapsed)
}

// Continuous advances observed time factor times faster than real time.
func Continuous(factor int) Accelerator {
	return AcceleratorFunc(func(start time.Time, elapsed time.Duration) time.Time {
		return start.Add(time.Duration(factor) * elapsed)
	})
}

// Discrete advances observed time by step, freq times per real second.
func Discrete(freq float64, step time.Duration) Accelerator {
	return AcceleratorFunc(func(start time.Time, elapsed time.Duration) time.Time {
		n := int64(freq * elapsed.Seconds())
		return start.Add(time.Duration(n) * step)
	})
}

// SiderealDay is the length of a sidereal day, rounded to the second.
const SiderealDay = 23*time.Hour + 56*time.Minute + 4*time.Second

// NamedAccelerator pairs an accelerator with its display name.
type NamedAccelerator struct {
	Name string
	Accelerator
}

// Accelerators lists the selectable accelerators.
var Accelerators = []NamedAccelerator{
	{"1x", Continuous(1)},
	{"30x", Continuous(30)},
	{"300x", Continuous(300)},
	{"3000x", Continuous(3000)},
	{"day", Discrete(60, 24*time.Hour)},
	{"sidereal", Discrete(60, SiderealDay)},
}

// AcceleratorByName returns the accelerator called name.
func AcceleratorByName(name string) (NamedAccelerator, bool) {
	for _, a := range Accelerators {
		if a.Name == name {
			return a, true
		}
	}
	return NamedAccelerator{}, false
}

// Animator drives the observed instant from wall-clock time.
type Animator struct {
	mu        sync.Mutex
	acc       Accelerator
	running   bool
	wallStart time.Time
	obsStart  time.Time
}

// NewAnimator returns a stopped animator.
func NewAnimator(acc Accelerator) *Animator {
	return &Animator{acc: acc}
}

// Start begins animating from observed at wall-clock time now.
func (a *Animator) Start(now, observed time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.running = true
	a.wallStart = now
	a.obsStart = observed
}

// Stop freezes the observed instant.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.running = false
}

// Running reports whether the animator is started.
func (a *Animator) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// SetAccelerator switches accelerator. A running animation continues from
// observed, so the instant does not jump.
func (a *Animator) SetAccelerator(acc Accelerator, now, observed time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acc = acc
	a.wallStart = now
	a.obsStart = observed
}

// Tick returns the observed instant at wall-clock time now. ok is false
// when the animator is stopped.
func (a *Animator) Tick(now time.Time) (observed time.Time, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.running {
		return time.Time{}, false
	}
	return a.acc.Adjust(a.obsStart, now.Sub(a.wallStart)), true
}
