package model

import (
	"fmt"
	"time"
)

// Session is one contiguous block of study on a single subject. Subject
// fields are copied at generation time.
type Session struct {
	ID          string   `json:"id"`
	Day         int      `json:"day"`
	Slot        int      `json:"slot"`
	SubjectID   string   `json:"subject_id"`
	SubjectName string   `json:"subject_name"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Duration    float64  `json:"duration"`
	Topics      []string `json:"topics"`
	Priority    int      `json:"priority"`
}

// Label returns the positional "{day}-{slot}" name of the session.
func (s Session) Label() string {
	return fmt.Sprintf("%d-%d", s.Day, s.Slot)
}

// DaySchedule holds the sessions placed on one calendar day.
type DaySchedule struct {
	Date       Date      `json:"date"`
	Sessions   []Session `json:"sessions"`
	TotalHours float64   `json:"total_hours"`
}

// Plan is a generated study schedule.
type Plan struct {
	Daily       DaySchedule   `json:"daily"`
	Weekly      []DaySchedule `json:"weekly"`
	GeneratedAt time.Time     `json:"generated_at"`
	Settings    Settings      `json:"settings"`
}

// Sessions returns every weekly session in schedule order.
func (p Plan) Sessions() []Session {
	var out []Session
	for _, d := range p.Weekly {
		out = append(out, d.Sessions...)
	}
	return out
}

// TotalHours is the scheduled time across all weekly days.
func (p Plan) TotalHours() float64 {
	total := 0.0
	for _, d := range p.Weekly {
		total += d.TotalHours
	}
	return total
}

// ProgressEntry records whether a session was completed.
type ProgressEntry struct {
	Completed bool      `json:"completed"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Progress maps session ids to their completion state. Entries for sessions
// of replaced plans are kept but no longer match anything.
type Progress map[string]ProgressEntry

// Completed reports whether the session with the given id is marked done.
func (p Progress) Completed(sessionID string) bool {
	return p[sessionID].Completed
}
