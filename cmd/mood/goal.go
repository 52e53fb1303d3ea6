// ABOUTME: CLI commands for daily goals.
// ABOUTME: Supports add, list, progress, and delete operations.
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/mood/internal/models"
	"github.com/spf13/cobra"
)

var (
	goalDescription string
	goalTarget      int
	goalDate        string
	goalListDate    string
	goalDone        bool
	goalUndone      bool
)

var goalCmd = &cobra.Command{
	Use:     "goal",
	Aliases: []string{"g"},
	Short:   "Manage daily goals",
	Long: `Set goals for a day and track progress toward them.

A goal is completed once its progress reaches the target (100 by default),
unless you mark it explicitly with --done or --undone.

EXAMPLES:

  mood goal add "Drink water" --target 8
  mood goal list
  mood goal list --date 2025-06-10
  mood goal progress abc123 4
  mood goal progress abc123 2 --done`,
}

var goalAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a daily goal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.TrimSpace(strings.Join(args, " "))
		if title == "" {
			return fmt.Errorf("goal title cannot be empty")
		}
		if goalTarget < 0 {
			return fmt.Errorf("target must be positive")
		}

		day, err := dayOrToday(goalDate)
		if err != nil {
			return err
		}

		g := models.NewDailyGoal(title).WithUser(userID).WithTarget(goalTarget).WithDate(day)
		if goalDescription != "" {
			g.WithDescription(goalDescription)
		}

		if err := repo.CreateGoal(g); err != nil {
			return fmt.Errorf("failed to add goal: %w", err)
		}

		color.Green("✓ Added goal %s", g.Title)
		fmt.Printf("  %s target %d on %s\n",
			color.New(color.Faint).Sprint(g.ID.String()[:8]),
			g.Target,
			g.Date.Format("2006-01-02"))

		return nil
	},
}

var goalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List goals for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := dayOrToday(goalListDate)
		if err != nil {
			return err
		}

		goals, err := repo.ListGoals(userID, day)
		if err != nil {
			return fmt.Errorf("failed to list goals: %w", err)
		}

		if len(goals) == 0 {
			fmt.Printf("No goals for %s.\n", day.Format("2006-01-02"))
			return nil
		}

		faint := color.New(color.Faint)
		for _, g := range goals {
			mark := "○"
			if g.Completed {
				mark = color.GreenString("✓")
			}
			fmt.Printf("%s %s %s %s\n",
				faint.Sprint(g.ID.String()[:8]),
				mark,
				padRight(truncate(g.Title, 30), 30),
				progressBar(g, 20))
		}

		return nil
	},
}

var goalProgressCmd = &cobra.Command{
	Use:   "progress <id> <value>",
	Short: "Set progress on a goal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		progress, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid progress: %s", args[1])
		}
		if goalDone && goalUndone {
			return fmt.Errorf("--done and --undone are mutually exclusive")
		}

		var completed *bool
		if goalDone || goalUndone {
			v := goalDone
			completed = &v
		}

		g, err := repo.UpdateGoalProgress(args[0], progress, completed)
		if err != nil {
			return fmt.Errorf("failed to update goal: %w", err)
		}

		if g.Completed {
			color.Green("✓ %s completed", g.Title)
		} else {
			color.Green("✓ Updated %s", g.Title)
		}
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(g.ID.String()[:8]),
			progressBar(g, 20))

		return nil
	},
}

var goalDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a goal",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := repo.GetGoal(args[0])
		if err != nil {
			return fmt.Errorf("goal %s: %w", args[0], err)
		}
		if err := repo.DeleteGoal(g.ID.String()); err != nil {
			return fmt.Errorf("failed to delete goal: %w", err)
		}

		color.Yellow("✗ Deleted goal %s", g.Title)
		return nil
	},
}

// progressBar renders "[#####.....] 4/8" for g.
func progressBar(g *models.DailyGoal, width int) string {
	filled := g.Percent() * width / 100
	return fmt.Sprintf("[%s%s] %d/%d",
		strings.Repeat("#", filled),
		strings.Repeat(".", width-filled),
		g.Progress, g.Target)
}

// dayOrToday parses a YYYY-MM-DD flag value, defaulting to today.
func dayOrToday(raw string) (time.Time, error) {
	if raw == "" {
		return now(), nil
	}
	t, err := parseTime(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", raw)
	}
	return t, nil
}

func init() {
	goalAddCmd.Flags().StringVarP(&goalDescription, "description", "d", "", "goal description")
	goalAddCmd.Flags().IntVarP(&goalTarget, "target", "t", models.DefaultGoalTarget, "target value")
	goalAddCmd.Flags().StringVar(&goalDate, "date", "", "day of the goal (YYYY-MM-DD, default today)")
	goalListCmd.Flags().StringVar(&goalListDate, "date", "", "day to list (YYYY-MM-DD, default today)")
	goalProgressCmd.Flags().BoolVar(&goalDone, "done", false, "mark completed regardless of target")
	goalProgressCmd.Flags().BoolVar(&goalUndone, "undone", false, "mark not completed regardless of target")

	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalProgressCmd)
	goalCmd.AddCommand(goalDeleteCmd)
	rootCmd.AddCommand(goalCmd)
}
