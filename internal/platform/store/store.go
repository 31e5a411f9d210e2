// Package store wires the persistence backends: Postgres for context
// records, ClickHouse for detection run traces
package store

import (
	"context"

	"brandgate/internal/platform/config"
	perr "brandgate/internal/platform/errors"
	"brandgate/internal/platform/logger"
	"brandgate/internal/platform/store/ch"
	"brandgate/internal/platform/store/pg"
)

// Config selects which backends to open. Empty DSN means skip that backend
type Config struct {
	PostgresDSN   string
	ClickhouseDSN string
}

// FromConf reads store config under the given prefix (PG_DSN, CH_DSN)
func FromConf(cfg config.Conf) Config {
	return Config{
		PostgresDSN:   cfg.MayString("PG_DSN", ""),
		ClickhouseDSN: cfg.MayString("CH_DSN", ""),
	}
}

// Store is the facade over all opened backends
type Store struct {
	PG *pg.Client
	CH *ch.Client
}

// Open connects the configured backends. A backend with no DSN stays nil;
// callers that need one must check before use
func Open(ctx context.Context, cfg Config) (*Store, error) {
	log := logger.Named("store")
	s := &Store{}

	if cfg.PostgresDSN != "" {
		c, err := pg.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "open postgres")
		}
		s.PG = c
		log.Info().Msg("postgres connected")
	}

	if cfg.ClickhouseDSN != "" {
		c, err := ch.Open(ctx, cfg.ClickhouseDSN)
		if err != nil {
			s.Close()
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "open clickhouse")
		}
		s.CH = c
		log.Info().Msg("clickhouse connected")
	}

	return s, nil
}

// Close releases all open backends
func (s *Store) Close() {
	if s == nil {
		return
	}
	if s.PG != nil {
		s.PG.Close()
	}
	if s.CH != nil {
		_ = s.CH.Close()
	}
}
