// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers.
package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/mood/internal/models"
	"github.com/harperreed/mood/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Thursday afternoon.
var testNow = time.Date(2025, 6, 12, 15, 0, 0, 0, time.UTC)

type stubWeather struct{ city string }

func (w *stubWeather) Current(_ context.Context, city string) models.Weather {
	w.city = city
	return models.Weather{Temperature: 22, Condition: models.ConditionSunny, City: city, Source: models.WeatherSourceMock}
}

// setupTestDB creates a test database in a temp directory.
func setupTestDB(t *testing.T) *storage.DB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "mood-mcp-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	db, err := storage.Open(filepath.Join(tmpDir, storage.DBFileName))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func setupTestServer(t *testing.T) (*Server, *storage.DB, *stubWeather) {
	t.Helper()
	db := setupTestDB(t)
	weather := &stubWeather{}
	server, err := NewServer(db, Options{
		Weather:  weather,
		Location: time.UTC,
		Now:      func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, db, weather
}

func TestNewServer(t *testing.T) {
	server, _, _ := setupTestServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.repo == nil {
		t.Error("Expected non-nil repo")
	}
	if server.userID != models.GuestUserID {
		t.Errorf("userID = %d, want guest", server.userID)
	}

	if _, err := NewServer(nil, Options{}); err == nil {
		t.Error("Expected error for nil repository")
	}
}

func TestHandleLogMood(t *testing.T) {
	server, db, _ := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     logMoodInput
		wantErr   bool
		errSubstr string
		wantTOD   string
	}{
		{name: "plain mood", input: logMoodInput{Mood: "happy"}, wantTOD: "afternoon"},
		{name: "mood with note", input: logMoodInput{Mood: "Calm", Note: "after yoga"}, wantTOD: "afternoon"},
		{name: "RFC3339 timestamp", input: logMoodInput{Mood: "sad", RecordedAt: "2025-06-10T22:00:00Z"}, wantTOD: "night"},
		{name: "simple timestamp", input: logMoodInput{Mood: "energetic", RecordedAt: "2025-06-10 07:30"}, wantTOD: "morning"},
		{name: "invalid mood", input: logMoodInput{Mood: "grumpy"}, wantErr: true, errSubstr: "unknown mood"},
		{name: "invalid timestamp", input: logMoodInput{Mood: "happy", RecordedAt: "last tuesday"}, wantErr: true, errSubstr: "invalid timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleLogMood(ctx, &mcp.CallToolRequest{}, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				} else if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("Expected error containing %q, got %q", tt.errSubstr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(output.ID) != 8 {
				t.Errorf("Expected 8-char ID, got %q", output.ID)
			}
			if output.TimeOfDay != tt.wantTOD {
				t.Errorf("TimeOfDay = %s, want %s", output.TimeOfDay, tt.wantTOD)
			}
		})
	}

	entries, _ := db.ListMoodEntries(0, 0)
	if len(entries) != 4 {
		t.Errorf("Expected 4 stored entries, got %d", len(entries))
	}
}

func TestHandleLogMoodWithWeather(t *testing.T) {
	server, db, weather := setupTestServer(t)

	city := "Lyon"
	if _, err := db.UpdatePreferences(models.GuestUserID, models.PreferencesPatch{WeatherLocation: &city}); err != nil {
		t.Fatalf("UpdatePreferences failed: %v", err)
	}

	_, output, err := server.handleLogMood(context.Background(), &mcp.CallToolRequest{}, logMoodInput{Mood: "excited", WithWeather: true})
	if err != nil {
		t.Fatalf("handleLogMood failed: %v", err)
	}
	if weather.city != "Lyon" {
		t.Errorf("weather looked up for %q, want Lyon", weather.city)
	}

	e, err := db.GetMoodEntry(output.ID)
	if err != nil {
		t.Fatalf("GetMoodEntry failed: %v", err)
	}
	if e.Weather == nil || e.Weather.City != "Lyon" {
		t.Errorf("Expected Lyon weather on entry, got %+v", e.Weather)
	}
}

func TestHandleListMoods(t *testing.T) {
	server, _, _ := setupTestServer(t)
	ctx := context.Background()

	_, out, err := server.handleListMoods(ctx, &mcp.CallToolRequest{}, listInput{})
	if err != nil {
		t.Fatalf("handleListMoods failed: %v", err)
	}
	if _, ok := out.(map[string]any); !ok {
		t.Errorf("Expected message map for empty list, got %T", out)
	}

	for _, m := range []string{"happy", "sad", "calm"} {
		if _, _, err := server.handleLogMood(ctx, &mcp.CallToolRequest{}, logMoodInput{Mood: m}); err != nil {
			t.Fatalf("handleLogMood failed: %v", err)
		}
	}

	_, out, err = server.handleListMoods(ctx, &mcp.CallToolRequest{}, listInput{Limit: 2})
	if err != nil {
		t.Fatalf("handleListMoods failed: %v", err)
	}
	entries, ok := out.([]*models.MoodEntry)
	if !ok {
		t.Fatalf("Expected []*models.MoodEntry, got %T", out)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(entries))
	}
}

func TestHandleDeleteMood(t *testing.T) {
	server, db, _ := setupTestServer(t)
	ctx := context.Background()

	_, logged, _ := server.handleLogMood(ctx, &mcp.CallToolRequest{}, logMoodInput{Mood: "anxious"})

	_, out, err := server.handleDeleteMood(ctx, &mcp.CallToolRequest{}, idInput{ID: logged.ID})
	if err != nil {
		t.Fatalf("handleDeleteMood failed: %v", err)
	}
	if !strings.Contains(out.Message, logged.ID) {
		t.Errorf("Message %q should mention ID", out.Message)
	}
	if entries, _ := db.ListMoodEntries(0, 0); len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}

	if _, _, err := server.handleDeleteMood(ctx, &mcp.CallToolRequest{}, idInput{ID: "ffffffff"}); err == nil {
		t.Error("Expected error for unknown ID")
	}
}

func TestHandleJournal(t *testing.T) {
	server, _, _ := setupTestServer(t)
	ctx := context.Background()

	if _, _, err := server.handleAddJournal(ctx, &mcp.CallToolRequest{}, addJournalInput{Content: "  "}); err == nil {
		t.Error("Expected error for empty content")
	}
	if _, _, err := server.handleAddJournal(ctx, &mcp.CallToolRequest{}, addJournalInput{Content: "x", Mood: "meh"}); err == nil {
		t.Error("Expected error for unknown mood")
	}
	if _, _, err := server.handleAddJournal(ctx, &mcp.CallToolRequest{}, addJournalInput{Content: "Long walk", Mood: "calm"}); err != nil {
		t.Fatalf("handleAddJournal failed: %v", err)
	}

	_, out, err := server.handleListJournal(ctx, &mcp.CallToolRequest{}, listInput{})
	if err != nil {
		t.Fatalf("handleListJournal failed: %v", err)
	}
	entries, ok := out.([]*models.JournalEntry)
	if !ok || len(entries) != 1 {
		t.Fatalf("Expected one journal entry, got %#v", out)
	}
	if entries[0].Mood != models.MoodCalm {
		t.Errorf("Mood = %s, want calm", entries[0].Mood)
	}
}

func TestHandleGoals(t *testing.T) {
	server, _, _ := setupTestServer(t)
	ctx := context.Background()

	if _, _, err := server.handleAddGoal(ctx, &mcp.CallToolRequest{}, addGoalInput{}); err == nil {
		t.Error("Expected error for missing title")
	}

	_, added, err := server.handleAddGoal(ctx, &mcp.CallToolRequest{}, addGoalInput{Title: "Meditate", Target: 10})
	if err != nil {
		t.Fatalf("handleAddGoal failed: %v", err)
	}
	if added.Target != 10 || added.Completed {
		t.Errorf("unexpected goal: %+v", added)
	}
	if _, _, err := server.handleAddGoal(ctx, &mcp.CallToolRequest{}, addGoalInput{Title: "Tomorrow", Date: "2025-06-13"}); err != nil {
		t.Fatalf("handleAddGoal failed: %v", err)
	}

	_, out, err := server.handleListGoals(ctx, &mcp.CallToolRequest{}, dateInput{})
	if err != nil {
		t.Fatalf("handleListGoals failed: %v", err)
	}
	goals, ok := out.([]*models.DailyGoal)
	if !ok || len(goals) != 1 || goals[0].Title != "Meditate" {
		t.Fatalf("Expected today's goal only, got %#v", out)
	}

	_, updated, err := server.handleUpdateGoal(ctx, &mcp.CallToolRequest{}, updateGoalInput{ID: added.ID, Progress: 10})
	if err != nil {
		t.Fatalf("handleUpdateGoal failed: %v", err)
	}
	if !updated.Completed || !strings.Contains(updated.Message, "completed") {
		t.Errorf("Expected completed goal, got %+v", updated)
	}

	no := false
	_, updated, err = server.handleUpdateGoal(ctx, &mcp.CallToolRequest{}, updateGoalInput{ID: added.ID, Progress: 10, Completed: &no})
	if err != nil {
		t.Fatalf("handleUpdateGoal failed: %v", err)
	}
	if updated.Completed {
		t.Error("Explicit completed=false should win")
	}

	if _, _, err := server.handleUpdateGoal(ctx, &mcp.CallToolRequest{}, updateGoalInput{ID: "ffffffff", Progress: 1}); err == nil {
		t.Error("Expected error for unknown goal")
	}
}

func TestHandleWeeklyRecap(t *testing.T) {
	server, _, _ := setupTestServer(t)
	ctx := context.Background()

	for _, in := range []logMoodInput{
		{Mood: "calm", RecordedAt: "2025-06-09T09:00:00Z"},
		{Mood: "happy", RecordedAt: "2025-06-11T09:00:00Z"},
		{Mood: "calm", RecordedAt: "2025-06-11T18:00:00Z"},
		{Mood: "excited", RecordedAt: "2025-06-02T09:00:00Z"},
	} {
		if _, _, err := server.handleLogMood(ctx, &mcp.CallToolRequest{}, in); err != nil {
			t.Fatalf("handleLogMood failed: %v", err)
		}
	}

	_, out, err := server.handleWeeklyRecap(ctx, &mcp.CallToolRequest{}, dateInput{})
	if err != nil {
		t.Fatalf("handleWeeklyRecap failed: %v", err)
	}
	summary := out.(map[string]any)

	if summary["week_start"] != "2025-06-09" || summary["week_end"] != "2025-06-15" {
		t.Errorf("window = %v..%v", summary["week_start"], summary["week_end"])
	}
	if summary["dominant_mood"] != models.MoodCalm {
		t.Errorf("dominant_mood = %v, want calm", summary["dominant_mood"])
	}
	if summary["total_entries"] != 3 || summary["active_days"] != 2 {
		t.Errorf("totals = %v / %v", summary["total_entries"], summary["active_days"])
	}
	if summary["rating"] != "great" {
		t.Errorf("rating = %v, want great", summary["rating"])
	}
	days := summary["days"].([]map[string]any)
	if days[2]["height"] != 70 || days[2]["color"] != models.ColorBlue {
		t.Errorf("Wednesday = %v", days[2])
	}

	_, out, err = server.handleWeeklyRecap(ctx, &mcp.CallToolRequest{}, dateInput{Date: "2025-06-08"})
	if err != nil {
		t.Fatalf("handleWeeklyRecap failed: %v", err)
	}
	if got := out.(map[string]any)["dominant_mood"]; got != models.MoodExcited {
		t.Errorf("previous week dominant = %v, want excited", got)
	}

	if _, _, err := server.handleWeeklyRecap(ctx, &mcp.CallToolRequest{}, dateInput{Date: "soon"}); err == nil {
		t.Error("Expected error for invalid date")
	}
}

func TestHandleGetWeather(t *testing.T) {
	server, _, weather := setupTestServer(t)

	_, out, err := server.handleGetWeather(context.Background(), &mcp.CallToolRequest{}, weatherInput{})
	if err != nil {
		t.Fatalf("handleGetWeather failed: %v", err)
	}
	if weather.city != "Paris" {
		t.Errorf("looked up %q, want default Paris", weather.city)
	}
	if out.Icon != "☀️" || out.TimeOfDay != models.Afternoon || out.Advice == "" {
		t.Errorf("unexpected output: %+v", out)
	}

	if _, _, err := server.handleGetWeather(context.Background(), &mcp.CallToolRequest{}, weatherInput{City: "Nantes"}); err != nil {
		t.Fatalf("handleGetWeather failed: %v", err)
	}
	if weather.city != "Nantes" {
		t.Errorf("looked up %q, want Nantes", weather.city)
	}
}

func TestHandleGetWeatherNotConfigured(t *testing.T) {
	server, err := NewServer(setupTestDB(t), Options{})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	if _, _, err := server.handleGetWeather(context.Background(), &mcp.CallToolRequest{}, weatherInput{}); err == nil {
		t.Error("Expected error without weather provider")
	}
}

func readResource(t *testing.T, result *mcp.ReadResourceResult, err error) map[string]any {
	t.Helper()
	if err != nil {
		t.Fatalf("resource handler failed: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("Expected 1 content, got %d", len(result.Contents))
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	return out
}

func TestHandleRecentResource(t *testing.T) {
	server, _, _ := setupTestServer(t)
	ctx := context.Background()

	result, err := server.handleRecentResource(ctx, &mcp.ReadResourceRequest{})
	out := readResource(t, result, err)
	if moods := out["moods"].([]any); len(moods) != 0 {
		t.Errorf("Expected empty moods, got %d", len(moods))
	}

	_, _, _ = server.handleLogMood(ctx, &mcp.CallToolRequest{}, logMoodInput{Mood: "happy"})
	_, _, _ = server.handleAddJournal(ctx, &mcp.CallToolRequest{}, addJournalInput{Content: "Sunny day"})

	result, err = server.handleRecentResource(ctx, &mcp.ReadResourceRequest{})
	out = readResource(t, result, err)
	if result.Contents[0].URI != "mood://recent" {
		t.Errorf("URI = %s", result.Contents[0].URI)
	}
	if len(out["moods"].([]any)) != 1 || len(out["journal"].([]any)) != 1 {
		t.Errorf("unexpected recent resource: %v", out)
	}
}

func TestHandleTodayResource(t *testing.T) {
	server, _, _ := setupTestServer(t)
	ctx := context.Background()

	_, _, _ = server.handleLogMood(ctx, &mcp.CallToolRequest{}, logMoodInput{Mood: "sad", RecordedAt: "2025-06-12T08:00:00Z"})
	_, _, _ = server.handleLogMood(ctx, &mcp.CallToolRequest{}, logMoodInput{Mood: "calm", RecordedAt: "2025-06-12T14:00:00Z"})
	_, _, _ = server.handleLogMood(ctx, &mcp.CallToolRequest{}, logMoodInput{Mood: "excited", RecordedAt: "2025-06-11T14:00:00Z"})
	_, _, _ = server.handleAddGoal(ctx, &mcp.CallToolRequest{}, addGoalInput{Title: "Stretch"})

	result, err := server.handleTodayResource(ctx, &mcp.ReadResourceRequest{})
	out := readResource(t, result, err)

	if out["date"] != "2025-06-12" {
		t.Errorf("date = %v", out["date"])
	}
	if out["current_mood"] != "calm" {
		t.Errorf("current_mood = %v, want calm", out["current_mood"])
	}
	counts := out["counts"].(map[string]any)
	if counts["moods"] != float64(2) || counts["goals"] != float64(1) {
		t.Errorf("counts = %v", counts)
	}
}

func TestHandleWeekResource(t *testing.T) {
	server, _, _ := setupTestServer(t)
	ctx := context.Background()

	result, err := server.handleWeekResource(ctx, &mcp.ReadResourceRequest{})
	out := readResource(t, result, err)
	if out["dominant_mood"] != "happy" || out["total_entries"] != float64(0) {
		t.Errorf("empty week = %v", out)
	}
	if days := out["days"].([]any); len(days) != 7 {
		t.Errorf("Expected 7 days, got %d", len(days))
	}
}
