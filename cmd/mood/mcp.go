// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/mood/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to log and read your moods through
a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "mood": {
        "command": "mood",
        "args": ["mcp"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  log_mood        Log a mood (optionally with current weather)
  list_moods      List recent mood entries
  delete_mood     Delete a mood entry by ID
  add_journal     Add a journal entry
  list_journal    List journal entries
  add_goal        Add a daily goal
  update_goal     Set progress on a goal
  list_goals      List goals for a day
  weekly_recap    Weekly recap for any date
  get_weather     Current weather for a city

AVAILABLE RESOURCES:

  mood://recent         Recent mood entries
  mood://today          Today's moods and goals
  mood://recap/week     This week's recap`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, mcp.Options{
			Weather:  newWeatherClient(),
			Location: loc,
			UserID:   userID,
			Logger:   logger,
		})
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
