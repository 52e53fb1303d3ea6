// ABOUTME: Monday-anchored week window resolution for the weekly recap.
// ABOUTME: The calendar used is the location of the reference time.
package recap

import "time"

// DaysInWeek is the number of day buckets in a recap.
const DaysInWeek = 7

// Window is a Monday-to-Sunday calendar week. Start is the first instant of
// Monday and End the first instant of Sunday, both in the reference time's
// location; that is 00:00 unless a clock change skips midnight.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// WeekOf returns the week containing ref. Only the calendar date of ref in
// ref.Location() matters; Sunday belongs to the week that began six days
// earlier.
func WeekOf(ref time.Time) Window {
	loc := ref.Location()
	y, m, d := ref.Date()
	offset := (int(ref.Weekday()) + 6) % DaysInWeek // Monday=0 ... Sunday=6
	w := Window{Start: startOfDay(y, m, d-offset, loc)}
	w.End = w.Day(DaysInWeek - 1)
	return w
}

// Day returns the first instant of the i-th day of the window (0 = Monday).
func (w Window) Day(i int) time.Time {
	y, m, d := w.Start.Date()
	return startOfDay(y, m, d+i, w.Start.Location())
}

// Until returns the exclusive upper bound: the start of next week's Monday.
func (w Window) Until() time.Time {
	return w.Day(DaysInWeek)
}

// RangeEnd is the last instant inside the window, for inclusive range queries.
func (w Window) RangeEnd() time.Time {
	return w.Until().Add(-time.Nanosecond)
}

// Contains reports whether t falls on one of the window's seven days.
func (w Window) Contains(t time.Time) bool {
	_, ok := w.offset(t)
	return ok
}

// offset returns the day index of t within the window using calendar dates
// in the window's location, so DST transitions do not shift buckets.
func (w Window) offset(t time.Time) (int, bool) {
	loc := w.Start.Location()
	ty, tm, td := t.In(loc).Date()
	sy, sm, sd := w.Start.Date()
	day := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	start := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	diff := int(day.Sub(start) / (24 * time.Hour))
	if day.Before(start) || diff >= DaysInWeek {
		return 0, false
	}
	return diff, true
}

// startOfDay returns the first instant of the calendar date y-m-d in loc.
// Usually that is 00:00; where a clock change skips midnight, the day starts
// when the new offset takes effect. Out-of-range days normalize as in time.Date.
func startOfDay(y int, m time.Month, d int, loc *time.Location) time.Time {
	ty, tm, td := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Date()
	t := time.Date(ty, tm, td, 0, 0, 0, 0, loc)
	if onDate(t, ty, tm, td) {
		return t
	}
	if _, end := t.ZoneBounds(); !end.IsZero() && onDate(end, ty, tm, td) {
		return end
	}
	for i := 0; i < 24*60 && !onDate(t, ty, tm, td); i++ {
		t = t.Add(time.Minute)
	}
	return t
}

func onDate(t time.Time, y int, m time.Month, d int) bool {
	ty, tm, td := t.Date()
	return ty == y && tm == m && td == d
}
