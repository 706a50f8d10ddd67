package astro

import "time"

const (
	millisPerDay   = 1000 * 60 * 60 * 24
	daysPerCentury = 36525
	millisPerHour  = 1000 * 60 * 60
)

// Epoch is a fixed reference instant.
type Epoch struct {
	name string
	at   time.Time
}

var (
	// J2000 is 2000-01-01T12:00Z.
	J2000 = Epoch{name: "J2000", at: time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)}
	// J2010 is 2009-12-31T00:00Z, the reference of the orbital models.
	J2010 = Epoch{name: "J2010", at: time.Date(2009, time.December, 31, 0, 0, 0, 0, time.UTC)}
)

// Time returns the epoch instant.
func (e Epoch) Time() time.Time { return e.at }

func (e Epoch) String() string { return e.name }

// DaysUntil returns the signed number of days from the epoch to t, with
// millisecond resolution.
func (e Epoch) DaysUntil(t time.Time) float64 {
	// UnixMilli differences stay exact for dates a time.Duration cannot span
	return float64(t.UnixMilli()-e.at.UnixMilli()) / millisPerDay
}

// JulianCenturiesUntil returns DaysUntil in Julian centuries.
func (e Epoch) JulianCenturiesUntil(t time.Time) float64 {
	return e.DaysUntil(t) / daysPerCentury
}
