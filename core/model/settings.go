package model

import "fmt"

// Default schedule settings applied when a value is absent.
const (
	DefaultAvailableHours     = 4.0
	DefaultMaxSessionDuration = 2.0
	DefaultBreakDuration      = 0.5
)

// Settings bounds how much study time is scheduled per day and per session.
// All values are hours.
type Settings struct {
	AvailableHours     float64 `json:"available_hours" yaml:"available_hours"`
	MaxSessionDuration float64 `json:"max_session_duration" yaml:"max_session_duration"`
	BreakDuration      float64 `json:"break_duration" yaml:"break_duration"`
}

// DefaultSettings returns the built-in schedule settings.
func DefaultSettings() Settings {
	return Settings{
		AvailableHours:     DefaultAvailableHours,
		MaxSessionDuration: DefaultMaxSessionDuration,
		BreakDuration:      DefaultBreakDuration,
	}
}

// WithDefaults replaces unusable fields with the built-in defaults.
// A zero break is kept.
func (s Settings) WithDefaults() Settings {
	if s.AvailableHours <= 0 {
		s.AvailableHours = DefaultAvailableHours
	}
	if s.MaxSessionDuration <= 0 {
		s.MaxSessionDuration = DefaultMaxSessionDuration
	}
	if s.BreakDuration < 0 {
		s.BreakDuration = DefaultBreakDuration
	}
	return s
}

// Validate rejects settings the scheduler cannot lay out within a single day
// starting at dayStart (hours after midnight).
func (s Settings) Validate(dayStart float64) error {
	if s.AvailableHours <= 0 {
		return fmt.Errorf("available hours must be positive: %w", ErrInvalid)
	}
	if s.MaxSessionDuration <= 0 {
		return fmt.Errorf("max session duration must be positive: %w", ErrInvalid)
	}
	if s.BreakDuration < 0 {
		return fmt.Errorf("break duration must not be negative: %w", ErrInvalid)
	}
	if dayStart+s.AvailableHours > 24 {
		return fmt.Errorf("%.2f available hours from %.2f run past midnight: %w",
			s.AvailableHours, dayStart, ErrInvalid)
	}
	return nil
}
