// ABOUTME: TimeOfDay buckets used for themes, advice, and mood entries.
// ABOUTME: Morning 6-12h, afternoon 12-17h, evening 17-21h, night otherwise.
package models

import "time"

// TimeOfDay is a coarse part of the day.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// AllTimesOfDay lists the buckets in chronological order.
var AllTimesOfDay = []TimeOfDay{Morning, Afternoon, Evening, Night}

// TimeOfDayAt returns the bucket for the wall-clock hour of t.
func TimeOfDayAt(t time.Time) TimeOfDay {
	h := t.Hour()
	switch {
	case h >= 6 && h < 12:
		return Morning
	case h >= 12 && h < 17:
		return Afternoon
	case h >= 17 && h < 21:
		return Evening
	default:
		return Night
	}
}

// IsValidTimeOfDay checks if s names a TimeOfDay.
func IsValidTimeOfDay(s string) bool {
	for _, t := range AllTimesOfDay {
		if string(t) == s {
			return true
		}
	}
	return false
}
