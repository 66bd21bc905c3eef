package model

import "time"

// FetchWindow bounds all history queries for a run. It is derived once from
// the configured timespan and never changes afterwards.
type FetchWindow struct {
	Start time.Time
	End   time.Time
}

// NewFetchWindow returns the window ending at now and spanning timespan.
func NewFetchWindow(now time.Time, timespan time.Duration) FetchWindow {
	return FetchWindow{Start: now.Add(-timespan), End: now}
}

// Timespan returns the window length.
func (w FetchWindow) Timespan() time.Duration {
	return w.End.Sub(w.Start)
}

// Contains reports whether t lies within [Start, End].
func (w FetchWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
