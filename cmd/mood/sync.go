// ABOUTME: CLI commands for syncing the mood log through Charm Cloud.
// ABOUTME: Links devices, reports what the synced log holds, and repairs or resets the local copy.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harperreed/mood/internal/charm"
	"github.com/harperreed/mood/internal/recap"
	"github.com/harperreed/mood/internal/storage"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Sync your mood log across devices",
	Long: `Sync mood entries, journal, goals, and preferences through Charm Cloud.

Sync applies to the "charm" backend. Set "backend": "charm" in
~/.config/mood/config.json (or MOOD_BACKEND=charm) to keep the mood log in
Charm KV. Records are encrypted with your SSH key before upload.

  mood sync link      link this device (run it on every device)
  mood sync status    show what the synced log holds, including this week
  mood sync repair    checkpoint, integrity-check, and vacuum the local copy
  mood sync reset     drop the local copy and pull it back from the cloud
  mood sync wipe      delete the mood log everywhere

Every mood, journal entry, and goal update syncs right after it is written.`,
}

var syncLinkCmd = &cobra.Command{
	Use:         "link",
	Short:       "Link this device to Charm",
	Long:        `Link this device to your Charm account, then pull the mood log once.`,
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharmCLI("link"); err != nil {
			return fmt.Errorf("link device: %w\n\nInstall the charm CLI with: go install github.com/charmbracelet/charm@latest", err)
		}
		color.Green("\n✓ Device linked; moods logged here now reach your other devices")

		client, err := charm.InitClient(cfg.CharmHost)
		if err != nil {
			color.Yellow("⚠ Initial pull skipped: %v", err)
			return nil
		}
		defer func() { _ = client.Close() }()

		if err := client.Sync(); err != nil {
			color.Yellow("⚠ Initial pull failed: %v", err)
			return nil
		}
		data, err := client.GetAllData()
		if err != nil {
			color.Yellow("⚠ Could not read the synced log: %v", err)
			return nil
		}
		color.Green("✓ Mood log pulled")
		printCounts(os.Stdout, storage.Summarize(data))
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:         "unlink",
	Short:       "Disconnect this device from Charm",
	Long:        `Disconnect this device from Charm. The local mood log stays on disk.`,
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharmCLI("unlink"); err != nil {
			return fmt.Errorf("unlink device: %w", err)
		}
		color.Green("✓ Device unlinked; local moods are kept")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:         "status",
	Short:       "Show the account and what the synced mood log holds",
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := charm.InitClient(cfg.CharmHost)
		if err != nil {
			color.Yellow("Charm client not initialized: %v", err)
			fmt.Println("\nRun 'mood sync link' to connect to Charm.")
			return nil
		}
		defer func() { _ = client.Close() }()

		id, err := client.ID()
		if err != nil {
			color.Yellow("Not linked to Charm")
			fmt.Println("\nRun 'mood sync link' to connect to Charm.")
			return nil
		}

		data, err := client.GetAllData()
		if err != nil {
			return fmt.Errorf("read synced log: %w", err)
		}
		week, err := recap.Weekly(client, userID, now())
		if err != nil {
			return err
		}

		fmt.Println("Charm ID:", id)
		fmt.Println("Server:", charmHost())
		fmt.Println("Backend:", cfg.GetBackend())
		fmt.Println()
		color.Green("✓ Connected to Charm")
		writeSyncStatus(os.Stdout, data, week)
		if client.IsReadOnly() {
			color.Yellow("  Read-only: another process (MCP server?) holds the mood database")
		}
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete the mood log from the cloud and this device",
	Long: `Delete every mood entry, journal entry, goal, and preference from
Charm Cloud backups and from this device. This cannot be undone; run
'mood export json' first to keep a copy.`,
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("This PERMANENTLY DELETES the mood log in the cloud and on this device.")
		ok, err := confirm(os.Stdin, os.Stdout, "Type 'wipe' to confirm: ", "wipe")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Canceled.")
			return nil
		}

		result, err := kv.Wipe(charm.DBName)
		if err != nil {
			return fmt.Errorf("wipe mood log: %w", err)
		}
		color.Green("✓ Mood log wiped")
		fmt.Printf("  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Printf("  Local files deleted: %d\n", result.LocalFilesDeleted)
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair the local mood database",
	Long: `Checkpoint the WAL, drop a stale SHM file, check integrity, and vacuum
the local copy of the mood log. Use it after "database is locked" errors.
--force attempts recovery even when the integrity check fails.`,
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		fmt.Printf("Repairing %s database...\n", charm.DBName)
		result, err := kv.Repair(charm.DBName, force)
		steps := []struct {
			done bool
			msg  string
		}{
			{result.WalCheckpointed, "WAL checkpointed"},
			{result.ShmRemoved, "SHM file removed"},
			{result.IntegrityOK, "integrity check passed"},
			{result.Vacuumed, "database vacuumed"},
		}
		for _, s := range steps {
			if s.done {
				color.Green("  ✓ %s", s.msg)
			} else {
				color.Red("  ✗ %s", s.msg)
			}
		}

		if err != nil {
			if !force {
				color.Yellow("\nRun with --force to attempt recovery.")
			}
			return fmt.Errorf("repair mood database: %w", err)
		}
		color.Green("\n✓ Mood database repaired")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the local mood log with the cloud copy",
	Long: `Delete the local copy of the mood log and restore it from Charm Cloud.
Entries logged on this device that never synced are lost.`,
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("This DELETES the local mood log and restores it from the cloud.")
		ok, err := confirm(os.Stdin, os.Stdout, "Continue? [y/N]: ", "y", "yes")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Canceled.")
			return nil
		}

		if err := kv.Reset(charm.DBName); err != nil {
			return fmt.Errorf("reset mood log: %w", err)
		}
		color.Green("✓ Local mood log restored from cloud")
		return nil
	},
}

// runCharmCLI runs a charm subcommand against the configured server.
func runCharmCLI(action string) error {
	c := exec.Command("charm", action)
	c.Env = append(os.Environ(), "CHARM_HOST="+charmHost())
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// confirm reads one line from in and reports whether it matches one of
// accept, ignoring case and surrounding space.
func confirm(in io.Reader, out io.Writer, prompt string, accept ...string) (bool, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	for _, a := range accept {
		if answer == a {
			return true, nil
		}
	}
	return false, nil
}

// writeSyncStatus prints record counts plus a one-line summary of the week.
func writeSyncStatus(out io.Writer, data *storage.ExportData, week recap.Recap) {
	printCounts(out, storage.Summarize(data))

	if data != nil && len(data.MoodEntries) > 0 {
		last := data.MoodEntries[0]
		for _, e := range data.MoodEntries[1:] {
			if e.RecordedAt.After(last.RecordedAt) {
				last = e
			}
		}
		fmt.Fprintf(out, "  Last mood: %s %s at %s\n",
			last.Mood.Emoji(), last.Mood, last.RecordedAt.In(week.Window.Start.Location()).Format("2006-01-02 15:04"))
	}

	if week.Stats.TotalEntries == 0 {
		fmt.Fprintln(out, "  This week: no moods logged")
		return
	}
	fmt.Fprintf(out, "  This week: %d entries over %d active day(s), mostly %s %s\n",
		week.Stats.TotalEntries, week.Stats.ActiveDays, week.Stats.DominantMood.Emoji(), week.Stats.DominantMood)
}

func charmHost() string {
	if cfg != nil && cfg.CharmHost != "" {
		return cfg.CharmHost
	}
	return charm.DefaultHost
}

func init() {
	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncUnlinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncRepairCmd)
	syncCmd.AddCommand(syncResetCmd)
	syncCmd.AddCommand(syncWipeCmd)

	syncRepairCmd.Flags().Bool("force", false, "Attempt recovery even if integrity checks fail")

	rootCmd.AddCommand(syncCmd)
}
