package config

import "fmt"

// JobsConfig groups background jobs.
type JobsConfig struct {
	Rebalance RebalanceJobConfig `json:"rebalance"`
}

// RebalanceJobConfig schedules the nightly rebalance of every stored plan.
type RebalanceJobConfig struct {
	Enabled bool `json:"enabled"`
	// Cron is a five field cron expression evaluated in UTC.
	Cron string `json:"cron"`
}

// SetDefaults applies sane defaults.
func (c *JobsConfig) SetDefaults() {
	if c.Rebalance.Cron == "" {
		c.Rebalance.Cron = "0 5 * * *"
	}
}

// Validate checks mandatory fields.
func (c JobsConfig) Validate() error {
	if c.Rebalance.Enabled && c.Rebalance.Cron == "" {
		return fmt.Errorf("rebalance cron is required")
	}
	return nil
}
