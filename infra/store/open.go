// Package store opens the store.Store implementation selected by configuration.
package store

import (
	"context"
	"fmt"

	"github.com/kilianp07/studyplan/config"
	corestore "github.com/kilianp07/studyplan/core/store"
	"github.com/kilianp07/studyplan/infra/store/memory"
	"github.com/kilianp07/studyplan/infra/store/sqlstore"
)

// Open returns the store for cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig) (corestore.Store, error) {
	switch cfg.Driver {
	case config.StoreMemory:
		return memory.New(), nil
	case config.StoreSQLite, config.StorePostgres:
		return sqlstore.Open(ctx, cfg.Driver, cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
