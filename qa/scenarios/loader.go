// Package scenarios replays YAML descriptions of study plans through the
// scheduler and checks the resulting layout.
package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/core/scheduler"
)

// RebalanceStep marks sessions of the generated plan as done, by their
// "{day}-{slot}" label, then rebalances on the given date.
type RebalanceStep struct {
	Complete []string   `yaml:"complete"`
	On       model.Date `yaml:"on"`
}

// Expected describes the final plan. Error, when set, is a substring of the
// expected failure and the other fields are ignored.
type Expected struct {
	Days       int      `yaml:"days"`
	Sessions   int      `yaml:"sessions"`
	TotalHours float64  `yaml:"total_hours"`
	FirstDay   []string `yaml:"first_day,omitempty"`
	Error      string   `yaml:"error,omitempty"`
}

type Scenario struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description,omitempty"`
	Input       scheduler.Input `yaml:",inline"`
	Rebalance   *RebalanceStep  `yaml:"rebalance,omitempty"`
	Expected    Expected        `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("%s: scenario name is required", path)
	}
	return &sc, nil
}
