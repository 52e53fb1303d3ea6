// ABOUTME: MCP tool implementations for the mood log.
// ABOUTME: Moods, journal, goals, weekly recap, and weather lookups.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/mood/internal/models"
	"github.com/harperreed/mood/internal/recap"
	"github.com/harperreed/mood/internal/storage"
	"github.com/harperreed/mood/internal/theme"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_mood",
		Description: "Log the current mood (excited, happy, calm, sad, anxious, energetic)",
	}, s.handleLogMood)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_moods",
		Description: "List recent mood entries, newest first",
	}, s.handleListMoods)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_mood",
		Description: "Delete a mood entry by ID or ID prefix",
	}, s.handleDeleteMood)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_journal",
		Description: "Write a journal entry tagged with a mood",
	}, s.handleAddJournal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_journal",
		Description: "List recent journal entries, newest first",
	}, s.handleListJournal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_goal",
		Description: "Create a daily goal",
	}, s.handleAddGoal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_goal",
		Description: "Set progress on a daily goal; it completes when progress reaches the target",
	}, s.handleUpdateGoal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_goals",
		Description: "List the daily goals of a day (default today)",
	}, s.handleListGoals)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "weekly_recap",
		Description: "Weekly mood recap: per-day bar height and color, dominant mood, active days",
	}, s.handleWeeklyRecap)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_weather",
		Description: "Current weather with advice for the time of day",
	}, s.handleGetWeather)
}

// Tool input/output types

type logMoodInput struct {
	Mood        string `json:"mood" jsonschema:"one of excited, happy, calm, sad, anxious, energetic"`
	Note        string `json:"note,omitempty" jsonschema:"optional note"`
	RecordedAt  string `json:"recorded_at,omitempty" jsonschema:"timestamp (ISO 8601), defaults to now"`
	WithWeather bool   `json:"with_weather,omitempty" jsonschema:"attach the current weather to the entry"`
}

type moodOutput struct {
	ID        string `json:"id"`
	Mood      string `json:"mood"`
	Emoji     string `json:"emoji"`
	TimeOfDay string `json:"time_of_day"`
	Message   string `json:"message"`
}

type listInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"max results"`
}

type idInput struct {
	ID string `json:"id" jsonschema:"ID or unique ID prefix"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type addJournalInput struct {
	Content string `json:"content" jsonschema:"journal text"`
	Mood    string `json:"mood,omitempty" jsonschema:"mood tag, defaults to happy"`
}

type addGoalInput struct {
	Title       string `json:"title" jsonschema:"what to achieve today"`
	Description string `json:"description,omitempty" jsonschema:"optional details"`
	Target      int    `json:"target,omitempty" jsonschema:"target progress, defaults to 100"`
	Date        string `json:"date,omitempty" jsonschema:"day of the goal (YYYY-MM-DD), defaults to today"`
}

type goalOutput struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Progress  int    `json:"progress"`
	Target    int    `json:"target"`
	Completed bool   `json:"completed"`
	Message   string `json:"message"`
}

type updateGoalInput struct {
	ID        string `json:"id" jsonschema:"goal ID or unique ID prefix"`
	Progress  int    `json:"progress" jsonschema:"new progress value"`
	Completed *bool  `json:"completed,omitempty" jsonschema:"override completion; derived from the target when omitted"`
}

type dateInput struct {
	Date string `json:"date,omitempty" jsonschema:"a day (YYYY-MM-DD) or timestamp, defaults to today"`
}

type weatherInput struct {
	City string `json:"city,omitempty" jsonschema:"city name, defaults to the preferred location"`
}

type weatherOutput struct {
	Weather   models.Weather   `json:"weather"`
	Icon      string           `json:"icon"`
	TimeOfDay models.TimeOfDay `json:"time_of_day"`
	Advice    string           `json:"advice"`
}

// parseTimestamp accepts RFC 3339, "2006-01-02 15:04", and "2006-01-02".
func parseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
}

func (s *Server) dayOrToday(raw string) (time.Time, error) {
	if raw == "" {
		return s.today(), nil
	}
	return parseTimestamp(raw, s.loc)
}

// Tool handlers

func (s *Server) handleLogMood(ctx context.Context, req *mcp.CallToolRequest, input logMoodInput) (*mcp.CallToolResult, moodOutput, error) {
	mood, ok := models.ParseMood(input.Mood)
	if !ok {
		return nil, moodOutput{}, fmt.Errorf("unknown mood: %s", input.Mood)
	}

	at := s.today()
	if input.RecordedAt != "" {
		t, err := parseTimestamp(input.RecordedAt, s.loc)
		if err != nil {
			return nil, moodOutput{}, err
		}
		at = t
	}

	e := models.NewMoodEntry(mood).WithUser(s.userID).WithRecordedAt(at)
	if input.Note != "" {
		e.WithNote(input.Note)
	}
	if input.WithWeather && s.weather != nil {
		city := s.preferredCity()
		w := s.weather.Current(ctx, city)
		e.WithWeather(&w)
	}

	if err := s.repo.CreateMoodEntry(e); err != nil {
		return nil, moodOutput{}, fmt.Errorf("failed to log mood: %w", err)
	}

	short := e.ID.String()[:8]
	return nil, moodOutput{
		ID:        short,
		Mood:      string(mood),
		Emoji:     e.Emoji,
		TimeOfDay: string(e.TimeOfDay),
		Message:   fmt.Sprintf("Logged %s %s (ID: %s)", e.Emoji, mood, short),
	}, nil
}

func (s *Server) handleListMoods(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = storage.DefaultMoodLimit
	}

	entries, err := s.repo.ListMoodEntries(s.userID, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list moods: %w", err)
	}

	if len(entries) == 0 {
		return nil, map[string]any{"message": "No mood entries found."}, nil
	}

	return nil, entries, nil
}

func (s *Server) handleDeleteMood(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteMoodEntry(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete mood entry: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted mood entry: %s", input.ID),
	}, nil
}

func (s *Server) handleAddJournal(ctx context.Context, req *mcp.CallToolRequest, input addJournalInput) (*mcp.CallToolResult, simpleOutput, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, simpleOutput{}, errors.New("content is required")
	}
	mood := models.DefaultMood
	if input.Mood != "" {
		m, ok := models.ParseMood(input.Mood)
		if !ok {
			return nil, simpleOutput{}, fmt.Errorf("unknown mood: %s", input.Mood)
		}
		mood = m
	}

	j := models.NewJournalEntry(input.Content, mood).WithUser(s.userID).WithRecordedAt(s.today())
	if err := s.repo.CreateJournalEntry(j); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to add journal entry: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Added journal entry (ID: %s)", j.ID.String()[:8]),
	}, nil
}

func (s *Server) handleListJournal(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = storage.DefaultJournalLimit
	}

	entries, err := s.repo.ListJournalEntries(s.userID, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list journal: %w", err)
	}

	if len(entries) == 0 {
		return nil, map[string]any{"message": "No journal entries found."}, nil
	}

	return nil, entries, nil
}

func (s *Server) handleAddGoal(ctx context.Context, req *mcp.CallToolRequest, input addGoalInput) (*mcp.CallToolResult, goalOutput, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, goalOutput{}, errors.New("title is required")
	}
	day, err := s.dayOrToday(input.Date)
	if err != nil {
		return nil, goalOutput{}, err
	}

	g := models.NewDailyGoal(input.Title).WithUser(s.userID).WithTarget(input.Target).WithDate(day)
	if input.Description != "" {
		g.WithDescription(input.Description)
	}
	if err := s.repo.CreateGoal(g); err != nil {
		return nil, goalOutput{}, fmt.Errorf("failed to add goal: %w", err)
	}

	return nil, goalToOutput(g, fmt.Sprintf("Added goal %q (ID: %s)", g.Title, g.ID.String()[:8])), nil
}

func (s *Server) handleUpdateGoal(ctx context.Context, req *mcp.CallToolRequest, input updateGoalInput) (*mcp.CallToolResult, goalOutput, error) {
	g, err := s.repo.UpdateGoalProgress(input.ID, input.Progress, input.Completed)
	if err != nil {
		return nil, goalOutput{}, fmt.Errorf("failed to update goal: %w", err)
	}

	msg := fmt.Sprintf("%s: %d/%d", g.Title, g.Progress, g.Target)
	if g.Completed {
		msg += " ✓ completed"
	}
	return nil, goalToOutput(g, msg), nil
}

func goalToOutput(g *models.DailyGoal, msg string) goalOutput {
	return goalOutput{
		ID:        g.ID.String()[:8],
		Title:     g.Title,
		Progress:  g.Progress,
		Target:    g.Target,
		Completed: g.Completed,
		Message:   msg,
	}
}

func (s *Server) handleListGoals(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, any, error) {
	day, err := s.dayOrToday(input.Date)
	if err != nil {
		return nil, nil, err
	}

	goals, err := s.repo.ListGoals(s.userID, day)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list goals: %w", err)
	}

	if len(goals) == 0 {
		return nil, map[string]any{"message": "No goals for " + day.Format("2006-01-02") + "."}, nil
	}

	return nil, goals, nil
}

func (s *Server) handleWeeklyRecap(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, any, error) {
	ref, err := s.dayOrToday(input.Date)
	if err != nil {
		return nil, nil, err
	}

	rc, err := recap.Weekly(s.repo, s.userID, ref)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute recap: %w", err)
	}

	return nil, recapSummary(rc), nil
}

// recapSummary flattens a recap into a map with readable day labels.
func recapSummary(rc recap.Recap) map[string]any {
	days := make([]map[string]any, 0, len(rc.Days))
	for _, d := range rc.Days {
		days = append(days, map[string]any{
			"date":   d.Date.Format("2006-01-02"),
			"day":    d.Date.Weekday().String()[:3],
			"count":  d.Count,
			"height": d.Height,
			"color":  d.Color,
		})
	}
	return map[string]any{
		"week_start":        rc.Window.Start.Format("2006-01-02"),
		"week_end":          rc.Window.End.Format("2006-01-02"),
		"days":              days,
		"dominant_mood":     rc.Stats.DominantMood,
		"dominant_emoji":    rc.Stats.DominantMood.Emoji(),
		"total_entries":     rc.Stats.TotalEntries,
		"active_days":       rc.Stats.ActiveDays,
		"has_positive_peak": rc.Stats.HasPositivePeak,
		"rating":            rc.Stats.Rating(),
	}
}

func (s *Server) handleGetWeather(ctx context.Context, req *mcp.CallToolRequest, input weatherInput) (*mcp.CallToolResult, weatherOutput, error) {
	if s.weather == nil {
		return nil, weatherOutput{}, errors.New("weather is not configured")
	}
	city := input.City
	if city == "" {
		city = s.preferredCity()
	}

	w := s.weather.Current(ctx, city)
	tod := models.TimeOfDayAt(s.today())
	return nil, weatherOutput{
		Weather:   w,
		Icon:      theme.WeatherIcon(w.Condition),
		TimeOfDay: tod,
		Advice:    theme.Advice(tod, w.Condition),
	}, nil
}

func (s *Server) preferredCity() string {
	prefs, err := s.repo.GetPreferences(s.userID)
	if err != nil {
		s.log.Warnw("load preferences failed", "error", err)
		return models.DefaultWeatherLocation
	}
	return prefs.WeatherLocation
}
