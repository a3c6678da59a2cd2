package config

import "fmt"

// LoggingConfig defines log verbosity and output format.
type LoggingConfig struct {
	// Level is a zerolog level: debug, info, warn or error.
	Level string `json:"level"`
	// Format is "json" or "console". Empty picks console when APP_ENV=dev.
	Format string `json:"format"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

// Validate checks the format name. The level is checked by the logger.
func (c LoggingConfig) Validate() error {
	switch c.Format {
	case "", "json", "console":
		return nil
	}
	return fmt.Errorf("unknown log format %s", c.Format)
}
