package workwindow

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

var ErrInvalidTimeOfDay = errors.New("invalid time of day, expected HH:MM")

// TimeOfDay is a wall-clock minute in [0, 1440).
type TimeOfDay int

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	// POS periods sometimes carry seconds ("10:00:00")
	mm, _, _ = strings.Cut(mm, ":")
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Window is a daily interval. End <= Start means the interval wraps midnight.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

func Parse(start, end string) (Window, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: s, End: e}, nil
}

// Wraps reports whether the window crosses midnight. Equal bounds wrap and
// therefore cover the whole day.
func (w Window) Wraps() bool {
	return w.End <= w.Start
}

// ContainsMinute checks a minute-of-day against the window; both ends are inclusive.
func (w Window) ContainsMinute(minute int) bool {
	minute = ((minute % minutesPerDay) + minutesPerDay) % minutesPerDay
	m := TimeOfDay(minute)
	if w.Wraps() {
		return m >= w.Start || m <= w.End
	}
	return m >= w.Start && m <= w.End
}

// Contains evaluates now in its own location.
func (w Window) Contains(now time.Time) bool {
	return w.ContainsMinute(now.Hour()*60 + now.Minute())
}

// IsOpen parses the bounds and reports whether now falls inside them.
func IsOpen(now time.Time, start, end string) (bool, error) {
	w, err := Parse(start, end)
	if err != nil {
		return false, err
	}
	return w.Contains(now), nil
}
