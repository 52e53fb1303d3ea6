// ABOUTME: CLI commands for journal entries.
// ABOUTME: Supports add, list, and delete operations.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/mood/internal/models"
	"github.com/harperreed/mood/internal/storage"
	"github.com/spf13/cobra"
)

var (
	journalMood    string
	journalAt      string
	journalWeather bool
	journalLimit   int
)

var journalCmd = &cobra.Command{
	Use:     "journal",
	Aliases: []string{"j"},
	Short:   "Manage journal entries",
	Long: `Write and read journal entries. Each entry is tagged with a mood
(happy when none is given).

EXAMPLES:

  mood journal add "Finished the book" --mood calm
  mood journal list -n 5
  mood journal delete abc123`,
}

var journalAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a journal entry",
	Long: `Add a journal entry. All arguments are joined into the entry text.

Examples:
  mood journal add "Long walk by the river"
  mood journal add Rough day at work --mood sad
  mood journal add "Sunny run" --weather`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content := strings.TrimSpace(strings.Join(args, " "))
		if content == "" {
			return fmt.Errorf("journal text cannot be empty")
		}

		m := models.DefaultMood
		if journalMood != "" {
			parsed, ok := models.ParseMood(journalMood)
			if !ok {
				return fmt.Errorf("unknown mood: %s\nValid moods: %s", journalMood, moodNames())
			}
			m = parsed
		}

		j := models.NewJournalEntry(content, m).WithUser(userID).WithRecordedAt(now())
		if journalAt != "" {
			t, err := parseTime(journalAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", journalAt)
			}
			j.WithRecordedAt(t)
		}
		if journalWeather {
			w := newWeatherClient().Current(cmd.Context(), preferredCity())
			j.WithWeather(&w)
		}

		if err := repo.CreateJournalEntry(j); err != nil {
			return fmt.Errorf("failed to add journal entry: %w", err)
		}

		color.Green("✓ Added journal entry %s", j.Mood.Emoji())
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(j.ID.String()[:8]),
			truncate(j.Content, 50))

		return nil
	},
}

var journalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List journal entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := repo.ListJournalEntries(userID, journalLimit)
		if err != nil {
			return fmt.Errorf("failed to list journal entries: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No journal entries found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, j := range entries {
			fmt.Printf("%s %s %s %s\n",
				faint.Sprint(j.ID.String()[:8]),
				faint.Sprint(j.RecordedAt.In(loc).Format("2006-01-02 15:04")),
				j.Mood.Emoji(),
				truncate(j.Content, 60))
		}

		return nil
	},
}

var journalDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a journal entry",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		j, err := repo.GetJournalEntry(args[0])
		if err != nil {
			return fmt.Errorf("journal entry %s: %w", args[0], err)
		}
		if err := repo.DeleteJournalEntry(j.ID.String()); err != nil {
			return fmt.Errorf("failed to delete journal entry: %w", err)
		}

		color.Yellow("✗ Deleted journal entry")
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(j.ID.String()[:8]),
			truncate(j.Content, 50))
		return nil
	},
}

func init() {
	journalAddCmd.Flags().StringVarP(&journalMood, "mood", "m", "", "mood for the entry (default happy)")
	journalAddCmd.Flags().StringVar(&journalAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	journalAddCmd.Flags().BoolVar(&journalWeather, "weather", false, "attach the current weather")
	journalListCmd.Flags().IntVarP(&journalLimit, "limit", "n", storage.DefaultJournalLimit, "max number of results")

	journalCmd.AddCommand(journalAddCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalDeleteCmd)
	rootCmd.AddCommand(journalCmd)
}
