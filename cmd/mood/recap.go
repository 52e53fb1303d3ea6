// ABOUTME: CLI command for the weekly mood recap.
// ABOUTME: Renders a Monday-to-Sunday bar chart colored by the day's last mood.
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/mood/internal/models"
	"github.com/harperreed/mood/internal/recap"
	"github.com/spf13/cobra"
)

// barWidth is the number of cells a full-height bar occupies.
const barWidth = 40

var (
	recapDate string
	recapJSON bool
)

var chartColors = map[models.Color]color.Attribute{
	models.ColorYellow:  color.FgYellow,
	models.ColorGreen:   color.FgGreen,
	models.ColorPurple:  color.FgMagenta,
	models.ColorBlue:    color.FgBlue,
	models.ColorRed:     color.FgRed,
	models.ColorGray:    color.FgHiBlack,
	models.ColorNeutral: color.FgWhite,
}

var recapCmd = &cobra.Command{
	Use:     "recap",
	Aliases: []string{"week"},
	Short:   "Show the weekly mood recap",
	Long: `Show a chart of the week (Monday to Sunday) containing today or --date.

Each bar's length is the average intensity of the day's moods and its color
is the mood logged last that day. Days without entries show a short gray bar.

EXAMPLES:

  mood recap                      # This week
  mood recap --date 2025-06-01    # The week containing June 1st
  mood recap --json               # Machine-readable output`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := dayOrToday(recapDate)
		if err != nil {
			return err
		}

		rc, err := recap.Weekly(repo, userID, ref)
		if err != nil {
			return fmt.Errorf("failed to compute recap: %w", err)
		}

		if recapJSON {
			out, err := json.MarshalIndent(struct {
				recap.Recap
				Rating string `json:"rating"`
			}{rc, rc.Stats.Rating()}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		printRecap(rc)
		return nil
	},
}

func printRecap(rc recap.Recap) {
	faint := color.New(color.Faint)
	fmt.Printf("Week of %s to %s\n\n",
		rc.Window.Start.Format("Jan 2"),
		rc.Window.End.Format("Jan 2, 2006"))

	for _, d := range rc.Days {
		cells := d.Height * barWidth / recap.MaxHeight
		bar := color.New(chartColors[d.Color]).Sprint(strings.Repeat("█", cells))
		count := ""
		if d.Count > 0 {
			count = faint.Sprintf(" %d", d.Count)
		}
		fmt.Printf("%s %s%s\n", faint.Sprint(d.Date.Format("Mon 01-02")), bar, count)
	}

	s := rc.Stats
	fmt.Println()
	if s.TotalEntries == 0 {
		fmt.Println("No moods logged this week.")
		return
	}
	fmt.Printf("Dominant mood: %s %s\n", s.DominantMood.Emoji(), s.DominantMood)
	fmt.Printf("Entries: %d over %d active day(s)\n", s.TotalEntries, s.ActiveDays)
	if s.Rating() == "great" {
		color.Green("A great week!")
	} else {
		fmt.Println("A good week.")
	}
}

func init() {
	recapCmd.Flags().StringVar(&recapDate, "date", "", "any day of the week to show (YYYY-MM-DD)")
	recapCmd.Flags().BoolVar(&recapJSON, "json", false, "print the recap as JSON")
	rootCmd.AddCommand(recapCmd)
}
