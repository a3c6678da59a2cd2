package scheduler

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/studyplan/core/model"
)

// Input is the offline description of a plan to generate.
type Input struct {
	Subjects  []model.Subject `json:"subjects" yaml:"subjects"`
	Settings  SettingsInput   `json:"settings" yaml:"settings"`
	StartDate model.Date      `json:"start_date" yaml:"start_date"`
}

// SettingsInput is the settings block of an input file. Omitted values
// take the defaults given to Input.Validate, and an explicit 0 is kept.
type SettingsInput struct {
	AvailableHours     *float64 `json:"available_hours" yaml:"available_hours"`
	MaxSessionDuration *float64 `json:"max_session_duration" yaml:"max_session_duration"`
	BreakDuration      *float64 `json:"break_duration" yaml:"break_duration"`
}

// Over returns defaults with the values present in the file applied.
func (si SettingsInput) Over(defaults model.Settings) model.Settings {
	s := defaults
	if si.AvailableHours != nil {
		s.AvailableHours = *si.AvailableHours
	}
	if si.MaxSessionDuration != nil {
		s.MaxSessionDuration = *si.MaxSessionDuration
	}
	if si.BreakDuration != nil {
		s.BreakDuration = *si.BreakDuration
	}
	return s
}

// Validate checks every subject, fills missing subject ids and returns the
// settings to generate with.
func (in *Input) Validate(dayStart float64, defaults model.Settings) (model.Settings, error) {
	if len(in.Subjects) == 0 {
		return model.Settings{}, ErrNoSubjects
	}
	for i := range in.Subjects {
		if in.Subjects[i].ID == "" {
			in.Subjects[i].ID = fmt.Sprintf("s%d", i+1)
		}
		if err := in.Subjects[i].Validate(); err != nil {
			return model.Settings{}, err
		}
	}
	settings := in.Settings.Over(defaults)
	if err := settings.Validate(dayStart); err != nil {
		return model.Settings{}, err
	}
	return settings, nil
}

// LoadInput reads an Input from a JSON or YAML file.
func LoadInput(path string) (Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return Input{}, err
	}
	defer func() { _ = f.Close() }()
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return DecodeInput(f, ext)
}

// DecodeInput reads an Input from r in the given format ("yaml" or "json").
func DecodeInput(r io.Reader, format string) (Input, error) {
	var in Input
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&in); err != nil {
			return in, err
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&in); err != nil {
			return in, err
		}
	default:
		return in, fmt.Errorf("unsupported format: %s", format)
	}
	return in, nil
}
