// ABOUTME: CLI command for starting the HTTP API server.
// ABOUTME: Serves the mood REST API with metrics until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/mood/internal/api"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the mood HTTP API.

ROUTES:

  GET    /status                      Health check
  GET    /metrics                     Prometheus metrics
  GET    /api/mood-entries            List mood entries
  GET    /api/mood-entries/range      Entries between startDate and endDate
  POST   /api/mood-entries            Log a mood
  DELETE /api/mood-entries/:id        Delete a mood entry
  GET    /api/journal-entries         List journal entries
  POST   /api/journal-entries         Add a journal entry
  GET    /api/daily-goals             Goals for a day
  POST   /api/daily-goals             Add a goal
  PATCH  /api/daily-goals/:id         Update goal progress
  GET    /api/preferences             Preferences
  PATCH  /api/preferences
  GET    /api/weather                 Current weather
  GET    /api/recap/weekly            Weekly recap
  GET    /api/theme                   Theme palette
  GET    /api/suggestions             Advice and music

The listen address comes from --addr, listen_addr in the config, or
MOOD_LISTEN_ADDR (default :8080).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.GetListenAddr()
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		server, err := api.New(api.Options{
			Repo:          repo,
			Weather:       newWeatherClient(),
			Logger:        logger,
			Registry:      reg,
			Location:      loc,
			DefaultUserID: userID,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}
