// ABOUTME: Root Cobra command for mood CLI.
// ABOUTME: Loads config and manages the storage lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"time"

	"github.com/harperreed/mood/internal/config"
	"github.com/harperreed/mood/internal/logging"
	"github.com/harperreed/mood/internal/storage"
	"github.com/harperreed/mood/internal/weather"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// skipStorage marks commands that must not open the configured backend.
const skipStorage = "skip-storage"

var (
	cfg    *config.Config
	repo   storage.Repository
	loc    *time.Location
	userID int64
	logger *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "mood",
	Short: "Personal mood tracker",
	Long: `Mood is a CLI tool for tracking how you feel, day by day.

WHAT IT TRACKS:

  Moods      excited, happy, calm, sad, anxious, energetic (with optional note and weather)
  Journal    free-form entries tagged with a mood
  Goals      daily goals with progress toward a target
  Recap      a Monday-to-Sunday chart of your week

QUICK START:

  $ mood log happy                       # Log how you feel right now
  $ mood log calm --note "long walk"     # Log with a note
  $ mood log sad --at "2025-06-10 22:00"
  $ mood list                            # See recent moods
  $ mood recap                           # This week's chart

JOURNAL AND GOALS:

  $ mood journal add "Finished the book" --mood happy
  $ mood goal add "Drink water" --target 8
  $ mood goal progress abc123 4

SERVER:

  $ mood serve                # HTTP API on :8080 (config: listen_addr)
  $ mood mcp                  # MCP server over stdio

  {
    "mcpServers": {
      "mood": { "command": "mood", "args": ["mcp"] }
    }
  }

CONFIGURATION:

  ~/.config/mood/config.json selects the backend ("sqlite", "postgres",
  or "charm"), the timezone, and the weather API key. Environment
  variables MOOD_BACKEND, MOOD_TIMEZONE and OPENWEATHER_API_KEY override it.

DATA STORAGE:

  SQLite data lives at ~/.local/share/mood/mood.db by default.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		loc, err = cfg.Location()
		if err != nil {
			return err
		}
		userID = cfg.GetUserID()
		logger, err = logging.New(cfg.Log.Level, cfg.Log.File)
		if err != nil {
			return err
		}

		if cmd.Annotations[skipStorage] != "" {
			return nil
		}
		repo, err = cfg.OpenStorage()
		if err != nil {
			repo = nil
			return fmt.Errorf("failed to open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logger != nil {
			_ = logger.Sync()
		}
		if repo != nil {
			err := repo.Close()
			repo = nil
			return err
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// now returns the current time in the configured zone.
func now() time.Time {
	if loc == nil {
		return time.Now()
	}
	return time.Now().In(loc)
}

// newWeatherClient builds a weather client from the loaded config.
func newWeatherClient() *weather.Client {
	return weather.New(weather.Options{
		APIKey:      cfg.Weather.APIKey,
		BaseURL:     cfg.Weather.BaseURL,
		DefaultCity: cfg.GetWeatherCity(),
		Logger:      logger,
	})
}

// preferredCity returns the user's preferred weather city, falling back
// to the configured default.
func preferredCity() string {
	if repo != nil {
		if p, err := repo.GetPreferences(userID); err == nil && p.WeatherLocation != "" {
			return p.WeatherLocation
		}
	}
	return cfg.GetWeatherCity()
}
