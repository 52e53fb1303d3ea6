// ABOUTME: MCP resource implementations for the mood log.
// ABOUTME: Provides mood://recent, mood://today, and mood://recap/week resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/mood/internal/models"
	"github.com/harperreed/mood/internal/recap"
	"github.com/harperreed/mood/internal/storage"
)

const (
	recentURI = "mood://recent"
	todayURI  = "mood://today"
	weekURI   = "mood://recap/week"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentURI,
		Name:        "Recent Moods",
		Description: "Last 10 mood entries and 5 journal entries",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Moods",
		Description: "Moods, journal entries, and goals of today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         weekURI,
		Name:        "Weekly Mood Recap",
		Description: "Recap of the current Monday-to-Sunday week",
		MIMEType:    "application/json",
	}, s.handleWeekResource)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	moods, err := s.repo.ListMoodEntries(s.userID, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to list moods: %w", err)
	}

	journal, err := s.repo.ListJournalEntries(s.userID, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal: %w", err)
	}

	return jsonResource(recentURI, map[string]any{
		"moods":   orEmpty(moods),
		"journal": orEmpty(journal),
	})
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	start, end := storage.DayBounds(s.today())

	moods, err := s.repo.ListMoodEntriesInRange(s.userID, start, end.Add(-1))
	if err != nil {
		return nil, fmt.Errorf("failed to list moods: %w", err)
	}

	goals, err := s.repo.ListGoals(s.userID, start)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	journal, err := s.repo.ListJournalEntries(s.userID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal: %w", err)
	}
	var todayJournal []*models.JournalEntry
	for _, j := range journal {
		if !j.RecordedAt.Before(start) && j.RecordedAt.Before(end) {
			todayJournal = append(todayJournal, j)
		}
	}

	var latest any
	if len(moods) > 0 {
		latest = moods[len(moods)-1].Mood
	}

	return jsonResource(todayURI, map[string]any{
		"date":         start.Format("2006-01-02"),
		"moods":        orEmpty(moods),
		"journal":      orEmpty(todayJournal),
		"goals":        orEmpty(goals),
		"current_mood": latest,
		"time_of_day":  models.TimeOfDayAt(s.today()),
		"counts": map[string]int{
			"moods":   len(moods),
			"journal": len(todayJournal),
			"goals":   len(goals),
		},
	})
}

func (s *Server) handleWeekResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	rc, err := recap.Weekly(s.repo, s.userID, s.today())
	if err != nil {
		return nil, fmt.Errorf("failed to compute recap: %w", err)
	}
	return jsonResource(weekURI, recapSummary(rc))
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
