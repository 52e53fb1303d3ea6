// ABOUTME: Request parsing helpers and JSON error responses.
// ABOUTME: Maps storage errors onto 400/404/500 status codes.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harperreed/mood/internal/storage"
)

const dateLayout = "2006-01-02"

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (s *Server) badRequest(c *gin.Context, msg string, err error) {
	resp := errorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, resp)
}

// fail responds to a storage error with the matching status.
func (s *Server) fail(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: msg, Details: err.Error()})
	case errors.Is(err, storage.ErrAmbiguous):
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msg, Details: err.Error()})
	default:
		s.log.Errorw(msg, "path", c.Request.URL.Path, "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: msg})
	}
}

// queryUserID reads ?userId=, returning def when absent.
func queryUserID(c *gin.Context, def int64) (int64, error) {
	raw := c.Query("userId")
	if raw == "" {
		return def, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid userId %q", raw)
	}
	return id, nil
}

// queryLimit reads ?limit=, returning def when absent.
func queryLimit(c *gin.Context, def int) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid limit %q", raw)
	}
	return n, nil
}

// parseTime accepts RFC 3339 instants and YYYY-MM-DD dates. Dates are
// midnight in loc; instants are converted into loc. The bool reports a
// date-only value.
func parseTime(raw string, loc *time.Location) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(dateLayout, raw, loc); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", raw)
	}
	return t.In(loc), false, nil
}

// queryDate reads an optional date parameter, returning def when absent.
func (s *Server) queryDate(c *gin.Context, name string, def time.Time) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	t, _, err := parseTime(raw, s.loc)
	return t, err
}

func (s *Server) userOr(id int64) int64 {
	if id > 0 {
		return id
	}
	return s.defaultUser
}
