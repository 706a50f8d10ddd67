package state

import (
	"slices"
	"time"

	"github.com/litescript/ls-sky/internal/astro"
)

// EventType represents the kind of horizon crossing.
type EventType string

const (
	EventRise EventType = "RISE"
	EventSet  EventType = "SET"
)

// Event records a body crossing the horizon between two computed skies.
type Event struct {
	Type EventType `json:"type"`
	// Timestamp is the observed instant of the sky where the crossing was
	// first seen, not wall-clock time.
	Timestamp time.Time `json:"timestamp"`
	Body      string    `json:"body"`
}

// eventLog keeps the latest events up to a fixed capacity.
type eventLog struct {
	buf  []Event
	next int // slot overwritten next once buf is full
}

func newEventLog(capacity int) *eventLog {
	return &eventLog{buf: make([]Event, 0, capacity)}
}

func (l *eventLog) add(e Event) {
	if len(l.buf) < cap(l.buf) {
		l.buf = append(l.buf, e)
		return
	}
	l.buf[l.next] = e
	l.next = (l.next + 1) % len(l.buf)
}

// ordered returns a copy of the events, oldest first.
func (l *eventLog) ordered() []Event {
	if len(l.buf) == 0 {
		return nil
	}
	return slices.Concat(l.buf[l.next:], l.buf[:l.next])
}

// horizonWatch remembers which bodies were above the horizon in the last
// sky it saw.
type horizonWatch map[string]bool

// observe reports the crossings of the Sun, the Moon and the planets since
// the previous call. The first sky only seeds the watch.
func (w horizonWatch) observe(sky *astro.ObservedSky) []Event {
	conv := astro.NewEquatorialToHorizontal(sky.When(), sky.Where())
	bodies := []astro.CelestialObject{sky.Sun(), sky.Moon()}
	for _, p := range sky.Planets() {
		bodies = append(bodies, p)
	}

	seeding := len(w) == 0
	var events []Event
	for _, b := range bodies {
		up := conv.Apply(b.EquatorialPos()).Alt() > astro.MinAltitude
		was, known := w[b.Name()]
		w[b.Name()] = up
		if seeding || !known || up == was {
			continue
		}
		e := Event{Type: EventSet, Timestamp: sky.When(), Body: b.Name()}
		if up {
			e.Type = EventRise
		}
		events = append(events, e)
	}
	return events
}
