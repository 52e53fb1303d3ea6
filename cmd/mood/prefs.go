// ABOUTME: CLI commands for user preferences.
// ABOUTME: Shows and partially updates weather location, theme, notifications, and language.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/mood/internal/models"
	"github.com/harperreed/mood/internal/theme"
	"github.com/spf13/cobra"
)

var (
	prefsLocation      string
	prefsTheme         string
	prefsLanguage      string
	prefsNotifications bool
)

var prefsCmd = &cobra.Command{
	Use:     "prefs",
	Aliases: []string{"preferences"},
	Short:   "Show or change preferences",
	Long: `Show or change your preferences.

EXAMPLES:

  mood prefs show
  mood prefs set --location Lyon --language en
  mood prefs set --theme evening
  mood prefs set --notifications=false`,
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := repo.GetPreferences(userID)
		if err != nil {
			return fmt.Errorf("failed to load preferences: %w", err)
		}
		printPrefs(p)
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch models.PreferencesPatch
		flags := cmd.Flags()
		if flags.Changed("location") {
			patch.WeatherLocation = &prefsLocation
		}
		if flags.Changed("theme") {
			if prefsTheme != theme.Auto && !models.IsValidTimeOfDay(prefsTheme) {
				return fmt.Errorf("invalid theme: %s (use auto, morning, afternoon, evening, or night)", prefsTheme)
			}
			patch.Theme = &prefsTheme
		}
		if flags.Changed("language") {
			patch.Language = &prefsLanguage
		}
		if flags.Changed("notifications") {
			patch.Notifications = &prefsNotifications
		}
		if patch == (models.PreferencesPatch{}) {
			return fmt.Errorf("nothing to update: pass --location, --theme, --language, or --notifications")
		}

		p, err := repo.UpdatePreferences(userID, patch)
		if err != nil {
			return fmt.Errorf("failed to update preferences: %w", err)
		}

		color.Green("✓ Preferences updated")
		printPrefs(p)
		return nil
	},
}

func printPrefs(p *models.Preferences) {
	fmt.Printf("  %s %s\n", padRight("location", 14), p.WeatherLocation)
	fmt.Printf("  %s %s\n", padRight("theme", 14), p.Theme)
	fmt.Printf("  %s %t\n", padRight("notifications", 14), p.Notifications)
	fmt.Printf("  %s %s\n", padRight("language", 14), p.Language)
}

func init() {
	prefsSetCmd.Flags().StringVar(&prefsLocation, "location", "", "weather city")
	prefsSetCmd.Flags().StringVar(&prefsTheme, "theme", "", "auto or a time of day")
	prefsSetCmd.Flags().StringVar(&prefsLanguage, "language", "", "label language (fr or en)")
	prefsSetCmd.Flags().BoolVar(&prefsNotifications, "notifications", true, "enable notifications")

	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetCmd)
	rootCmd.AddCommand(prefsCmd)
}
