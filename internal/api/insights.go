// ABOUTME: Handlers for weather, weekly recap, theme, and suggestions.
// ABOUTME: The weekly recap runs the recap calculator over the stored week.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harperreed/mood/internal/models"
	"github.com/harperreed/mood/internal/recap"
	"github.com/harperreed/mood/internal/theme"
)

type weeklyRecapResponse struct {
	recap.Recap
	Rating string `json:"rating"`
}

type themeResponse struct {
	Mood      models.Mood      `json:"mood,omitempty"`
	TimeOfDay models.TimeOfDay `json:"timeOfDay"`
	Palette   theme.Palette    `json:"palette"`
}

type suggestionsResponse struct {
	TimeOfDay   models.TimeOfDay `json:"timeOfDay"`
	Weather     models.Weather   `json:"weather"`
	WeatherIcon string           `json:"weatherIcon"`
	Advice      string           `json:"advice"`
	Music       []theme.Track    `json:"music"`
}

// lookupWeather uses ?city= or the user's preferred location.
func (s *Server) lookupWeather(c *gin.Context, userID int64) models.Weather {
	city := c.Query("city")
	if city == "" {
		city = s.preferencesOrDefault(userID).WeatherLocation
	}
	w := s.weather.Current(c.Request.Context(), city)
	s.metrics.weatherLookups.WithLabelValues(w.Source).Inc()
	return w
}

func (s *Server) handleWeather(c *gin.Context) {
	userID, err := queryUserID(c, s.defaultUser)
	if err != nil {
		s.badRequest(c, "Invalid query", err)
		return
	}
	c.JSON(http.StatusOK, s.lookupWeather(c, userID))
}

func (s *Server) handleWeeklyRecap(c *gin.Context) {
	userID, err := queryUserID(c, s.defaultUser)
	if err != nil {
		s.badRequest(c, "Invalid query", err)
		return
	}
	ref, err := s.queryDate(c, "date", s.today())
	if err != nil {
		s.badRequest(c, "Invalid query", err)
		return
	}

	rc, err := recap.Weekly(s.repo, userID, ref)
	if err != nil {
		s.fail(c, "Failed to compute weekly recap", err)
		return
	}
	c.JSON(http.StatusOK, weeklyRecapResponse{Recap: rc, Rating: rc.Stats.Rating()})
}

func (s *Server) handleTheme(c *gin.Context) {
	userID, err := queryUserID(c, s.defaultUser)
	if err != nil {
		s.badRequest(c, "Invalid query", err)
		return
	}

	var mood models.Mood
	if raw := c.Query("mood"); raw != "" {
		m, ok := models.ParseMood(raw)
		if !ok {
			s.badRequest(c, "Invalid query", errors.New("unknown mood "+raw))
			return
		}
		mood = m
	} else {
		latest, err := s.repo.ListMoodEntries(userID, 1)
		if err != nil {
			s.fail(c, "Failed to load current mood", err)
			return
		}
		if len(latest) > 0 {
			mood = latest[0].Mood
		}
	}

	prefs := s.preferencesOrDefault(userID)
	tod := models.TimeOfDayAt(s.today())
	c.JSON(http.StatusOK, themeResponse{
		Mood:      mood,
		TimeOfDay: tod,
		Palette:   theme.Resolve(prefs.Theme, mood, tod),
	})
}

func (s *Server) handleSuggestions(c *gin.Context) {
	userID, err := queryUserID(c, s.defaultUser)
	if err != nil {
		s.badRequest(c, "Invalid query", err)
		return
	}

	w := s.lookupWeather(c, userID)
	tod := models.TimeOfDayAt(s.today())
	c.JSON(http.StatusOK, suggestionsResponse{
		TimeOfDay:   tod,
		Weather:     w,
		WeatherIcon: theme.WeatherIcon(w.Condition),
		Advice:      theme.Advice(tod, w.Condition),
		Music:       theme.Music(tod),
	})
}
