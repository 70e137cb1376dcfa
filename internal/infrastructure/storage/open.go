// Package storage elige e inicializa el backend de persistencia según la configuración.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/Costbook-api/internal/domain/repository"
	"github.com/jhoicas/Costbook-api/internal/infrastructure/cache"
	"github.com/jhoicas/Costbook-api/internal/infrastructure/jsonfile"
	"github.com/jhoicas/Costbook-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Costbook-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Costbook-api/pkg/config"
	"github.com/jhoicas/Costbook-api/pkg/logger"
)

// Open devuelve el DocumentStore configurado. Los backends SQL quedan detrás de la
// caché cuando CACHE_TTL_SECONDS > 0.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.DocumentStore, error) {
	var (
		store repository.DocumentStore
		err   error
	)
	switch cfg.Storage.Driver {
	case config.DriverJSONFile, "":
		store, err = jsonfile.New(cfg.Storage.DataDir)
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", config.DriverJSONFile).Str("dir", cfg.Storage.DataDir).Msg("almacenamiento listo")
		return store, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		store = postgres.NewDocumentStore(pool, cfg.Storage.History)

	case config.DriverSQLite:
		store, err = sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Storage.Driver)
	}

	log.Info().
		Str("driver", cfg.Storage.Driver).
		Dur("cache_ttl", cfg.Storage.CacheTTL).
		Msg("almacenamiento listo")
	if cfg.Storage.CacheTTL > 0 {
		return cache.New(store, cfg.Storage.CacheTTL), nil
	}
	return store, nil
}
