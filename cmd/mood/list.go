// ABOUTME: CLI command for listing mood entries.
// ABOUTME: Supports limiting results and showing every user.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	listLimit int
	listAll   bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List mood entries",
	Long: `List recent mood entries, newest first.

OUTPUT FORMAT:

  Each line shows: ID  TIMESTAMP  EMOJI MOOD  TIME OF DAY  (NOTE)

  The ID is an 8-character prefix you can use with delete commands.

EXAMPLES:

  mood list              # Show last 20 entries
  mood list -n 50        # Show last 50 entries
  mood list --all        # Include entries of every user`,
	RunE: func(cmd *cobra.Command, args []string) error {
		owner := userID
		if listAll {
			owner = 0
		}

		entries, err := repo.ListMoodEntries(owner, listLimit)
		if err != nil {
			return fmt.Errorf("failed to list moods: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No moods found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, e := range entries {
			note := ""
			if e.Note != nil && *e.Note != "" {
				note = faint.Sprintf(" (%s)", truncate(*e.Note, 30))
			}
			fmt.Printf("%s %s %s %s %s%s\n",
				faint.Sprint(e.ID.String()[:8]),
				faint.Sprint(e.RecordedAt.In(loc).Format("2006-01-02 15:04")),
				e.Emoji,
				padRight(string(e.Mood), 10),
				padRight(string(e.TimeOfDay), 10),
				note)
		}

		return nil
	},
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results")
	listCmd.Flags().BoolVar(&listAll, "all", false, "list entries of every user")
	rootCmd.AddCommand(listCmd)
}
