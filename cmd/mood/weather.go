// ABOUTME: CLI command for current weather and mood suggestions.
// ABOUTME: Uses the OpenWeatherMap client with the preferred city as default.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/mood/internal/models"
	"github.com/harperreed/mood/internal/theme"
	"github.com/spf13/cobra"
)

var weatherCmd = &cobra.Command{
	Use:   "weather [city]",
	Short: "Show current weather and a suggestion",
	Long: `Show the current weather for a city (your preferred location by default)
together with advice and music suited to the time of day.

Without weather.api_key in the config (or OPENWEATHER_API_KEY) a sample
reading is shown.

EXAMPLES:

  mood weather
  mood weather Lyon`,
	RunE: func(cmd *cobra.Command, args []string) error {
		city := strings.TrimSpace(strings.Join(args, " "))
		if city == "" {
			city = preferredCity()
		}

		w := newWeatherClient().Current(cmd.Context(), city)
		tod := models.TimeOfDayAt(now())

		fmt.Printf("%s %s: %d°C, %s\n", theme.WeatherIcon(w.Condition), w.City, w.Temperature, w.Description)
		fmt.Printf("  humidity %d%%, wind %d km/h\n", w.Humidity, w.WindSpeed)
		if w.Source != models.WeatherSourceLive {
			color.New(color.Faint).Printf("  (%s data)\n", w.Source)
		}

		fmt.Println()
		color.Cyan("%s", theme.Advice(tod, w.Condition))
		for _, t := range theme.Music(tod) {
			fmt.Printf("  ♪ %s %s\n", t.Title, color.New(color.Faint).Sprintf("(%s)", t.Description))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(weatherCmd)
}
