// ABOUTME: Weekly mood recap: per-day height and color plus weekly statistics.
// ABOUTME: Pure computation over an in-memory record list; never fails.
package recap

import (
	"math"
	"time"

	"github.com/harperreed/mood/internal/models"
)

// Height bounds for a day bar.
const (
	MinHeight = 20
	MaxHeight = 100
)

// Record is a mood tagged with the instant it was logged.
type Record struct {
	Mood models.Mood
	At   time.Time
}

// DayMetric describes one bar of the weekly chart.
type DayMetric struct {
	Date   time.Time    `json:"date"`
	Count  int          `json:"count"`
	Height int          `json:"height"`
	Color  models.Color `json:"color"`
}

// WeeklyStats aggregates the whole week.
type WeeklyStats struct {
	DominantMood    models.Mood `json:"dominantMood"`
	TotalEntries    int         `json:"totalEntries"`
	ActiveDays      int         `json:"activeDays"`
	HasPositivePeak bool        `json:"hasPositivePeak"`
}

// Rating is the qualitative label for the week: "great" when an excited or
// happy mood was logged, "good" otherwise.
func (s WeeklyStats) Rating() string {
	if s.HasPositivePeak {
		return "great"
	}
	return "good"
}

// Recap is the result of Compute.
type Recap struct {
	Window Window                `json:"window"`
	Days   [DaysInWeek]DayMetric `json:"days"`
	Stats  WeeklyStats           `json:"stats"`
}

// FromEntries converts stored mood entries into recap records.
func FromEntries(entries []*models.MoodEntry) []Record {
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, Record{Mood: e.Mood, At: e.RecordedAt})
	}
	return records
}

// Compute builds the recap for the week containing ref. Records are
// bucketed by calendar date in ref's location; records outside the week are
// ignored. Within a day the input order decides which record is last.
func Compute(records []Record, ref time.Time) Recap {
	w := WeekOf(ref)

	var buckets [DaysInWeek][]models.Mood
	counts := make(map[models.Mood]int)
	var order []models.Mood
	stats := WeeklyStats{DominantMood: models.DefaultMood}

	for _, r := range records {
		i, ok := w.offset(r.At)
		if !ok {
			continue
		}
		m := r.Mood.Normalize()
		buckets[i] = append(buckets[i], m)

		if _, seen := counts[m]; !seen {
			order = append(order, m)
		}
		counts[m]++
		stats.TotalEntries++
		if m.IsPositive() {
			stats.HasPositivePeak = true
		}
	}

	best := 0
	for _, m := range order {
		if counts[m] > best {
			best = counts[m]
			stats.DominantMood = m
		}
	}

	rc := Recap{Window: w, Stats: stats}
	for i, moods := range buckets {
		rc.Days[i] = dayMetric(w.Day(i), moods)
		if len(moods) > 0 {
			rc.Stats.ActiveDays++
		}
	}
	return rc
}

func dayMetric(date time.Time, moods []models.Mood) DayMetric {
	dm := DayMetric{Date: date, Count: len(moods), Height: MinHeight, Color: models.ColorNeutral}
	if len(moods) == 0 {
		return dm
	}

	sum := 0
	for _, m := range moods {
		sum += m.Score()
	}
	h := int(math.Round(float64(sum) / float64(len(moods))))
	dm.Height = min(max(h, MinHeight), MaxHeight)
	dm.Color = moods[len(moods)-1].Color()
	return dm
}
