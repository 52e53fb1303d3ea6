// ABOUTME: CLI command for logging a mood.
// ABOUTME: Supports custom timestamps, notes, and attaching current weather.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/mood/internal/models"
	"github.com/spf13/cobra"
)

var (
	logAt      string
	logNote    string
	logWeather bool
)

var logCmd = &cobra.Command{
	Use:     "log <mood>",
	Aliases: []string{"add", "a"},
	Short:   "Log how you feel",
	Long: `Log a mood entry. The time of day (morning, afternoon, evening, night)
is derived from the timestamp in your configured timezone.

MOODS:

  excited, happy, calm, sad, anxious, energetic

Examples:
  mood log happy
  mood log calm --note "quiet evening"
  mood log sad --at "2025-06-10 22:00"
  mood log energetic --weather          # attach current weather`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, ok := models.ParseMood(args[0])
		if !ok {
			return fmt.Errorf("unknown mood: %s\nValid moods: %s", args[0], moodNames())
		}

		recordedAt := now()
		if logAt != "" {
			t, err := parseTime(logAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", logAt)
			}
			recordedAt = t
		}

		e := models.NewMoodEntry(m).WithUser(userID).WithRecordedAt(recordedAt)
		if logNote != "" {
			e.WithNote(logNote)
		}
		if logWeather {
			w := newWeatherClient().Current(cmd.Context(), preferredCity())
			e.WithWeather(&w)
		}

		if err := repo.CreateMoodEntry(e); err != nil {
			return fmt.Errorf("failed to log mood: %w", err)
		}

		color.Green("✓ Logged %s %s", e.Emoji, e.Mood)
		fmt.Printf("  %s %s %s\n",
			color.New(color.Faint).Sprint(e.ID.String()[:8]),
			e.RecordedAt.Format("2006-01-02 15:04"),
			e.TimeOfDay)
		if e.Weather != nil {
			fmt.Printf("  %d°C %s in %s\n", e.Weather.Temperature, e.Weather.Description, e.Weather.City)
		}

		return nil
	},
}

func moodNames() string {
	names := make([]string, len(models.AllMoods))
	for i, m := range models.AllMoods {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// parseTime reads a user-supplied timestamp. Forms without an offset are
// taken in the configured timezone.
func parseTime(s string) (time.Time, error) {
	zone := loc
	if zone == nil {
		zone = time.Local
	}
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, zone); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(zone), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func init() {
	logCmd.Flags().StringVar(&logAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	logCmd.Flags().StringVar(&logNote, "note", "", "note for the entry")
	logCmd.Flags().BoolVar(&logWeather, "weather", false, "attach the current weather")
	rootCmd.AddCommand(logCmd)
}
