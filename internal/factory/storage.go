// Package factory constructs the storage backend selected by configuration.
package factory

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campustrade/campustrade/internal/config"
	storepkg "github.com/campustrade/campustrade/internal/store"
	"github.com/campustrade/campustrade/internal/store/memory"
	storepg "github.com/campustrade/campustrade/internal/store/postgres"
	storesqlite "github.com/campustrade/campustrade/internal/store/sqlite"
)

// NewStore returns a store.Store for cfg.DBDriver. The sqlite and postgres
// drivers create their schema on first open.
func NewStore(cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case "memory":
		log.Warn().Msg("using in-memory store; data is lost on restart")
		return memory.New(), nil
	case "sqlite":
		st, err := storesqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("sqlite store ready")
		return st, nil
	case "postgres":
		st, err := storepg.New(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		log.Info().Msg("postgres store ready")
		return st, nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
