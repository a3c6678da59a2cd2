package config

import (
	"fmt"

	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/core/scheduler"
)

// ScheduleConfig holds the defaults applied to generate requests that omit
// a setting, and the layout of a plan.
type ScheduleConfig struct {
	AvailableHours     float64 `json:"available_hours"`
	MaxSessionDuration float64 `json:"max_session_duration"`
	// BreakDuration is a pointer so that an explicit 0 is kept.
	BreakDuration *float64 `json:"break_duration"`
	// DayStart is a pointer so that a midnight start can be configured.
	DayStart *float64 `json:"day_start"`
	Days     int      `json:"days"`
	// SessionIDs is "uuid" (default) or "positional".
	SessionIDs string `json:"session_ids"`
}

// SetDefaults applies sane defaults.
func (c *ScheduleConfig) SetDefaults() {
	if c.AvailableHours == 0 {
		c.AvailableHours = model.DefaultAvailableHours
	}
	if c.MaxSessionDuration == 0 {
		c.MaxSessionDuration = model.DefaultMaxSessionDuration
	}
	if c.BreakDuration == nil {
		b := model.DefaultBreakDuration
		c.BreakDuration = &b
	}
	if c.DayStart == nil {
		d := scheduler.DefaultDayStart
		c.DayStart = &d
	}
	if c.Days == 0 {
		c.Days = scheduler.DefaultDays
	}
	if c.SessionIDs == "" {
		c.SessionIDs = "uuid"
	}
}

// Validate checks the defaults would produce a usable plan.
func (c ScheduleConfig) Validate() error {
	start := c.Start()
	if start < 0 || start >= 24 {
		return fmt.Errorf("day_start %.2f outside 0-24", start)
	}
	if c.Days < 1 || c.Days > 31 {
		return fmt.Errorf("days %d outside 1-31", c.Days)
	}
	if c.SessionIDs != "uuid" && c.SessionIDs != "positional" {
		return fmt.Errorf("unknown session_ids scheme %s", c.SessionIDs)
	}
	return c.Settings().Validate(start)
}

// Start returns the configured day start, DefaultDayStart when unset.
func (c ScheduleConfig) Start() float64 {
	if c.DayStart == nil {
		return scheduler.DefaultDayStart
	}
	return *c.DayStart
}

// Settings returns the default schedule settings.
func (c ScheduleConfig) Settings() model.Settings {
	s := model.Settings{AvailableHours: c.AvailableHours, MaxSessionDuration: c.MaxSessionDuration}
	if c.BreakDuration != nil {
		s.BreakDuration = *c.BreakDuration
	}
	return s
}

// Scheduler builds a scheduler with the configured layout.
func (c ScheduleConfig) Scheduler() *scheduler.Scheduler {
	s := scheduler.New()
	s.DayStart = c.Start()
	s.Days = c.Days
	if c.SessionIDs == "positional" {
		s.NewID = scheduler.PositionalIDs
	}
	return s
}
