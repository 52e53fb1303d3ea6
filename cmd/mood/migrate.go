// ABOUTME: CLI command for migrating data between storage backends.
// ABOUTME: Copies every record from one backend (sqlite, postgres, charm) to another.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/mood/internal/config"
	"github.com/harperreed/mood/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateToDir  string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate data between storage backends",
	Long: `Copy all mood data from one storage backend to another.

Backends are "sqlite", "postgres" (needs postgres_dsn in the config), and
"charm". Records keep their IDs. The destination must be empty unless
--force is given.

USAGE:

  mood migrate --from charm --to sqlite --dry-run   # Preview
  mood migrate --from charm --to sqlite             # Perform the migration
  mood migrate --from sqlite --to postgres
  mood migrate --from sqlite --to sqlite --to-dir ~/mood-copy

AFTER MIGRATION:

  Set "backend" in ~/.config/mood/config.json to the new backend.`,
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == migrateTo && migrateToDir == "" {
			return fmt.Errorf("source and destination are both %q", migrateFrom)
		}

		srcCfg := *cfg
		srcCfg.Backend = migrateFrom
		src, err := srcCfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("open source %s: %w", migrateFrom, err)
		}
		defer func() { _ = src.Close() }()

		if migrateDryRun {
			data, err := src.GetAllData()
			if err != nil {
				return fmt.Errorf("read source data: %w", err)
			}
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Printf("Would migrate from %s to %s:\n", migrateFrom, migrateTo)
			printCounts(os.Stdout, storage.Summarize(data))
			return nil
		}

		dstCfg := *cfg
		dstCfg.Backend = migrateTo
		if migrateToDir != "" {
			dstCfg.DataDir = migrateToDir
		}
		if migrateToDir != "" && dstCfg.GetBackend() == config.BackendSQLite && !migrateForce {
			nonEmpty, err := storage.IsDirNonEmpty(dstCfg.GetDataDir())
			if err != nil {
				return err
			}
			if nonEmpty {
				return fmt.Errorf("destination directory %s is not empty (use --force to merge)", dstCfg.GetDataDir())
			}
		}

		dst, err := dstCfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("open destination %s: %w", migrateTo, err)
		}
		defer func() { _ = dst.Close() }()

		if !migrateForce {
			existing, err := dst.GetAllData()
			if err != nil {
				return fmt.Errorf("read destination data: %w", err)
			}
			if len(existing.MoodEntries)+len(existing.JournalEntries)+len(existing.Goals) > 0 {
				return fmt.Errorf("destination %s already has data (use --force to merge)", migrateTo)
			}
		}

		summary, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated from %s to %s", migrateFrom, migrateTo)
		printCounts(os.Stdout, summary)
		return nil
	},
}

func printCounts(out io.Writer, s *storage.MigrateSummary) {
	fmt.Fprintf(out, "  Mood entries: %d\n", s.MoodEntries)
	fmt.Fprintf(out, "  Journal entries: %d\n", s.JournalEntries)
	fmt.Fprintf(out, "  Goals: %d\n", s.Goals)
	fmt.Fprintf(out, "  Preferences: %d\n", s.Preferences)
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", config.BackendCharm, "source backend")
	migrateCmd.Flags().StringVar(&migrateTo, "to", config.BackendSQLite, "destination backend")
	migrateCmd.Flags().StringVar(&migrateToDir, "to-dir", "", "data directory for a sqlite destination")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "migrate even if the destination has data")
	rootCmd.AddCommand(migrateCmd)
}
