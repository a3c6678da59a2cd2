package config

import "fmt"

// Store drivers.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Driver string `json:"driver"`
	// DSN is a file path or URI for sqlite and a connection string for postgres.
	DSN string `json:"dsn"`
}

// SetDefaults applies sane defaults.
func (c *StoreConfig) SetDefaults() {
	if c.Driver == "" {
		c.Driver = StoreSQLite
	}
	if c.DSN == "" && c.Driver == StoreSQLite {
		c.DSN = "studyplan.db"
	}
}

// Validate checks mandatory fields.
func (c StoreConfig) Validate() error {
	switch c.Driver {
	case StoreMemory:
		return nil
	case StoreSQLite, StorePostgres:
		if c.DSN == "" {
			return fmt.Errorf("dsn is required for %s", c.Driver)
		}
		return nil
	}
	return fmt.Errorf("unknown driver %s", c.Driver)
}
