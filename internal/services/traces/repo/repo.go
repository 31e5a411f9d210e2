// Package repo persists detection run traces to ClickHouse
package repo

import (
	"context"

	perr "brandgate/internal/platform/errors"
	"brandgate/internal/platform/store/ch"
	"brandgate/internal/services/signals/domain"
)

// CH implements domain.TraceWriterPort on a ClickHouse client
type CH struct {
	c *ch.Client
}

// NewCH builds the trace writer
func NewCH(c *ch.Client) *CH { return &CH{c: c} }

const insertSQL = `
INSERT INTO run_traces
  (run_id, operation, context_id, context_hash, sections, quality_score, grade, started_at)`

// Write appends one trace row
func (r *CH) Write(ctx context.Context, tr domain.RunTrace) error {
	sections := make([]string, 0, len(tr.Sections))
	for _, s := range tr.Sections {
		sections = append(sections, string(s))
	}

	err := r.c.Insert(ctx, insertSQL, []any{
		tr.RunID,
		tr.Operation,
		tr.ContextID,
		tr.ContextHash,
		sections,
		int32(tr.QualityScore),
		string(tr.Grade),
		tr.StartedAt,
	})
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "write run trace")
	}
	return nil
}

var _ domain.TraceWriterPort = (*CH)(nil)
