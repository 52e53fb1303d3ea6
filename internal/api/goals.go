// ABOUTME: Handlers for daily goals and user preferences.
// ABOUTME: Goal progress updates derive completion from the target unless told otherwise.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harperreed/mood/internal/models"
)

type goalRequest struct {
	UserID      int64   `json:"userId"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Target      int     `json:"target"`
	Progress    int     `json:"progress"`
	Date        string  `json:"date"`
}

type goalProgressRequest struct {
	Progress  json.RawMessage `json:"progress"`
	Completed json.RawMessage `json:"completed"`
}

func (s *Server) handleListGoals(c *gin.Context) {
	userID, err := queryUserID(c, s.defaultUser)
	if err != nil {
		s.badRequest(c, "Invalid query", err)
		return
	}
	day, err := s.queryDate(c, "date", s.today())
	if err != nil {
		s.badRequest(c, "Invalid query", err)
		return
	}

	goals, err := s.repo.ListGoals(userID, day)
	if err != nil {
		s.fail(c, "Failed to fetch daily goals", err)
		return
	}
	c.JSON(http.StatusOK, nonNil(goals))
}

func (s *Server) handleCreateGoal(c *gin.Context) {
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "Invalid daily goal data", err)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		s.badRequest(c, "Invalid daily goal data", errors.New("title is required"))
		return
	}
	if req.Target < 0 {
		s.badRequest(c, "Invalid daily goal data", errors.New("target must be positive"))
		return
	}
	date := s.today()
	if req.Date != "" {
		d, _, err := parseTime(req.Date, s.loc)
		if err != nil {
			s.badRequest(c, "Invalid daily goal data", err)
			return
		}
		date = d
	}

	goal := models.NewDailyGoal(req.Title).
		WithUser(s.userOr(req.UserID)).
		WithTarget(req.Target).
		WithDate(date).
		SetProgress(req.Progress)
	if req.Description != nil && *req.Description != "" {
		goal.WithDescription(*req.Description)
	}

	if err := s.repo.CreateGoal(goal); err != nil {
		s.fail(c, "Failed to create daily goal", err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (s *Server) handleUpdateGoal(c *gin.Context) {
	var req goalProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "Invalid daily goal data", err)
		return
	}
	var progress float64
	if len(req.Progress) == 0 || json.Unmarshal(req.Progress, &progress) != nil {
		s.badRequest(c, "Progress must be a number", nil)
		return
	}
	completed, err := parseCompleted(req.Completed)
	if err != nil {
		s.badRequest(c, "Completed must be a boolean or a number", err)
		return
	}

	goal, err := s.repo.UpdateGoalProgress(c.Param("id"), int(math.Round(progress)), completed)
	if err != nil {
		s.fail(c, "Failed to update daily goal", err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

// parseCompleted accepts true/false or 0/1 style numbers. Absent or null
// means "derive from progress".
func parseCompleted(raw json.RawMessage) (*bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return &b, nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		b = n != 0
		return &b, nil
	}
	return nil, fmt.Errorf("unexpected completed value %s", raw)
}

func (s *Server) handleGetPreferences(c *gin.Context) {
	userID, err := queryUserID(c, s.defaultUser)
	if err != nil {
		s.badRequest(c, "Invalid query", err)
		return
	}
	prefs, err := s.repo.GetPreferences(userID)
	if err != nil {
		s.fail(c, "Failed to fetch user preferences", err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (s *Server) handleUpdatePreferences(c *gin.Context) {
	userID, err := queryUserID(c, s.defaultUser)
	if err != nil {
		s.badRequest(c, "Invalid query", err)
		return
	}
	var patch models.PreferencesPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		s.badRequest(c, "Invalid preferences data", err)
		return
	}
	prefs, err := s.repo.UpdatePreferences(userID, patch)
	if err != nil {
		s.fail(c, "Failed to update preferences", err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// preferencesOrDefault never fails; storage errors are logged.
func (s *Server) preferencesOrDefault(userID int64) *models.Preferences {
	prefs, err := s.repo.GetPreferences(userID)
	if err != nil {
		s.log.Warnw("load preferences failed, using defaults", "userID", userID, "error", err)
		return models.DefaultPreferences(userID)
	}
	return prefs
}

func (s *Server) today() time.Time {
	return s.now().In(s.loc)
}
