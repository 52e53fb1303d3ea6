// ABOUTME: Handlers for mood entries and journal entries.
// ABOUTME: Emoji and time of day are derived from the mood and timestamp when omitted.
package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harperreed/mood/internal/models"
	"github.com/harperreed/mood/internal/storage"
)

type moodEntryRequest struct {
	UserID    int64           `json:"userId"`
	Mood      string          `json:"mood"`
	Emoji     string          `json:"emoji"`
	Note      *string         `json:"note"`
	Weather   *models.Weather `json:"weatherData"`
	TimeOfDay string          `json:"timeOfDay"`
	Timestamp *time.Time      `json:"timestamp"`
}

func (s *Server) handleListMoods(c *gin.Context) {
	userID, err := queryUserID(c, 0)
	if err != nil {
		s.badRequest(c, "Invalid query", err)
		return
	}
	limit, err := queryLimit(c, storage.DefaultMoodLimit)
	if err != nil {
		s.badRequest(c, "Invalid query", err)
		return
	}

	entries, err := s.repo.ListMoodEntries(userID, limit)
	if err != nil {
		s.fail(c, "Failed to fetch mood entries", err)
		return
	}
	c.JSON(http.StatusOK, nonNil(entries))
}

func (s *Server) handleMoodRange(c *gin.Context) {
	rawStart, rawEnd := c.Query("startDate"), c.Query("endDate")
	if rawStart == "" || rawEnd == "" {
		s.badRequest(c, "Start date and end date are required", nil)
		return
	}
	userID, err := queryUserID(c, s.defaultUser)
	if err != nil {
		s.badRequest(c, "Invalid query", err)
		return
	}
	start, _, err := parseTime(rawStart, s.loc)
	if err != nil {
		s.badRequest(c, "Invalid start date", err)
		return
	}
	end, dateOnly, err := parseTime(rawEnd, s.loc)
	if err != nil {
		s.badRequest(c, "Invalid end date", err)
		return
	}
	if dateOnly {
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if end.Before(start) {
		s.badRequest(c, "End date is before start date", nil)
		return
	}

	entries, err := s.repo.ListMoodEntriesInRange(userID, start, end)
	if err != nil {
		s.fail(c, "Failed to fetch mood entries by date range", err)
		return
	}
	c.JSON(http.StatusOK, nonNil(entries))
}

func (s *Server) handleCreateMood(c *gin.Context) {
	var req moodEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "Invalid mood entry data", err)
		return
	}
	mood, ok := models.ParseMood(req.Mood)
	if !ok {
		s.badRequest(c, "Invalid mood entry data", errors.New("mood must be one of excited, happy, calm, sad, anxious, energetic"))
		return
	}
	if req.TimeOfDay != "" && !models.IsValidTimeOfDay(req.TimeOfDay) {
		s.badRequest(c, "Invalid mood entry data", errors.New("timeOfDay must be morning, afternoon, evening, or night"))
		return
	}

	at := s.now()
	if req.Timestamp != nil && !req.Timestamp.IsZero() {
		at = *req.Timestamp
	}
	entry := models.NewMoodEntry(mood).
		WithUser(s.userOr(req.UserID)).
		WithRecordedAt(at.In(s.loc)).
		WithWeather(req.Weather)
	if req.Note != nil && strings.TrimSpace(*req.Note) != "" {
		entry.WithNote(*req.Note)
	}
	if req.Emoji != "" {
		entry.Emoji = req.Emoji
	}
	if req.TimeOfDay != "" {
		entry.TimeOfDay = models.TimeOfDay(req.TimeOfDay)
	}

	if err := s.repo.CreateMoodEntry(entry); err != nil {
		s.fail(c, "Failed to create mood entry", err)
		return
	}
	s.metrics.moodsCreated.WithLabelValues(string(mood)).Inc()
	c.JSON(http.StatusCreated, entry)
}

func (s *Server) handleDeleteMood(c *gin.Context) {
	if err := s.repo.DeleteMoodEntry(c.Param("id")); err != nil {
		s.fail(c, "Failed to delete mood entry", err)
		return
	}
	c.Status(http.StatusNoContent)
}

type journalEntryRequest struct {
	UserID    int64           `json:"userId"`
	Content   string          `json:"content"`
	Mood      string          `json:"mood"`
	Weather   *models.Weather `json:"weatherData"`
	Timestamp *time.Time      `json:"timestamp"`
}

func (s *Server) handleListJournal(c *gin.Context) {
	userID, err := queryUserID(c, 0)
	if err != nil {
		s.badRequest(c, "Invalid query", err)
		return
	}
	limit, err := queryLimit(c, storage.DefaultJournalLimit)
	if err != nil {
		s.badRequest(c, "Invalid query", err)
		return
	}

	entries, err := s.repo.ListJournalEntries(userID, limit)
	if err != nil {
		s.fail(c, "Failed to fetch journal entries", err)
		return
	}
	c.JSON(http.StatusOK, nonNil(entries))
}

func (s *Server) handleCreateJournal(c *gin.Context) {
	var req journalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "Invalid journal entry data", err)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		s.badRequest(c, "Invalid journal entry data", errors.New("content is required"))
		return
	}
	mood := models.DefaultMood
	if req.Mood != "" {
		m, ok := models.ParseMood(req.Mood)
		if !ok {
			s.badRequest(c, "Invalid journal entry data", errors.New("unknown mood "+req.Mood))
			return
		}
		mood = m
	}

	at := s.now()
	if req.Timestamp != nil && !req.Timestamp.IsZero() {
		at = *req.Timestamp
	}
	entry := models.NewJournalEntry(req.Content, mood).
		WithUser(s.userOr(req.UserID)).
		WithRecordedAt(at.In(s.loc)).
		WithWeather(req.Weather)

	if err := s.repo.CreateJournalEntry(entry); err != nil {
		s.fail(c, "Failed to create journal entry", err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
