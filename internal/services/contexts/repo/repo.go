// Package repo persists context records as jsonb rows in Postgres
package repo

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"

	"brandgate/internal/core/ucr"
	perr "brandgate/internal/platform/errors"
	"brandgate/internal/platform/store/pg"
	"brandgate/internal/services/contexts/domain"
)

// PG implements domain.RepoPort on a Postgres querier
type PG struct {
	q pg.Querier
}

// NewPG builds the repo over any pg querier (pool or tx)
func NewPG(q pg.Querier) *PG { return &PG{q: q} }

const getSQL = `
SELECT config, updated_at
FROM context_records
WHERE id = $1`

const putSQL = `
INSERT INTO context_records (id, config, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (id) DO UPDATE
SET config = EXCLUDED.config, updated_at = now()`

// Get loads one record by id
func (r *PG) Get(ctx context.Context, id string) (domain.Record, error) {
	var (
		rec domain.Record
		raw []byte
	)
	rec.ID = id
	err := r.q.QueryRow(ctx, getSQL, id).Scan(&raw, &rec.UpdatedAt)
	if err == pgx.ErrNoRows {
		return domain.Record{}, perr.Newf(perr.ErrorCodeNotFound, "context %q not found", id)
	}
	if err != nil {
		return domain.Record{}, perr.Wrap(err, perr.ErrorCodeDB, "get context")
	}

	var cfg ucr.Configuration
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return domain.Record{}, perr.Wrap(err, perr.ErrorCodeJSON, "decode stored context")
	}
	rec.Config = cfg
	return rec, nil
}

// Put upserts one record
func (r *PG) Put(ctx context.Context, rec domain.Record) error {
	raw, err := json.Marshal(rec.Config)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode context")
	}
	if _, err := r.q.Exec(ctx, putSQL, rec.ID, raw); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "put context")
	}
	return nil
}
