// ABOUTME: DailyGoal model for tracking progress toward a daily target.
// ABOUTME: A goal completes once its progress reaches the target.
package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultGoalTarget is the target used when none is given.
const DefaultGoalTarget = 100

// DailyGoal is a goal set for a single calendar day.
type DailyGoal struct {
	ID          uuid.UUID `json:"id"`
	UserID      int64     `json:"userId"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Progress    int       `json:"progress"`
	Target      int       `json:"target"`
	Date        time.Time `json:"date"`
	Completed   bool      `json:"completed"`
}

// NewDailyGoal creates a goal for today owned by the guest user.
func NewDailyGoal(title string) *DailyGoal {
	return &DailyGoal{
		ID:     uuid.New(),
		UserID: GuestUserID,
		Title:  title,
		Target: DefaultGoalTarget,
		Date:   time.Now(),
	}
}

// WithUser sets the owning user.
func (g *DailyGoal) WithUser(userID int64) *DailyGoal {
	if userID > 0 {
		g.UserID = userID
	}
	return g
}

// WithDescription sets the goal description.
func (g *DailyGoal) WithDescription(d string) *DailyGoal {
	g.Description = &d
	return g
}

// WithTarget sets the target; non-positive values keep the default.
func (g *DailyGoal) WithTarget(target int) *DailyGoal {
	if target > 0 {
		g.Target = target
	}
	return g
}

// WithDate sets the day the goal belongs to.
func (g *DailyGoal) WithDate(t time.Time) *DailyGoal {
	g.Date = t
	return g
}

// SetProgress records progress and marks the goal completed at the target.
func (g *DailyGoal) SetProgress(progress int) *DailyGoal {
	if progress < 0 {
		progress = 0
	}
	g.Progress = progress
	g.Completed = g.Progress >= g.Target
	return g
}

// Percent returns progress as a 0-100 percentage of the target.
func (g *DailyGoal) Percent() int {
	if g.Target <= 0 {
		return 0
	}
	p := g.Progress * 100 / g.Target
	if p > 100 {
		return 100
	}
	return p
}
