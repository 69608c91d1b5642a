package recordstore

import (
	"fmt"
	"log/slog"

	"github.com/expenseflow/expenseflow/internal"
)

// NewFromConfig builds the configured backend.
func NewFromConfig(cfg internal.StoreConfig, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Backend {
	case "bolt":
		store, err := NewBoltStore(cfg.BoltPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize bolt store: %w", err)
		}
		logger.Info("initialized bolt record store", "path", cfg.BoltPath)
		return store, nil

	case "sql":
		store, err := NewSQLStore(cfg.Driver, cfg.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sql store: %w", err)
		}
		if cfg.Driver == "sqlite" {
			if err := store.AutoMigrate(); err != nil {
				return nil, fmt.Errorf("failed to migrate sqlite store: %w", err)
			}
		}
		logger.Info("initialized sql record store", "driver", cfg.Driver)
		return store, nil

	case "memory":
		logger.Info("initialized in-memory record store")
		return NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown record store backend %q", cfg.Backend)
	}
}
