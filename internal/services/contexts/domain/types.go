// Package domain holds the contexts service types and ports
package domain

import (
	"context"
	"time"

	"brandgate/internal/core/ucr"
)

// Record is one stored context record with its persistence envelope
type Record struct {
	ID        string            `json:"id"`
	Config    ucr.Configuration `json:"config"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// RepoPort is the persistence surface the service depends on
type RepoPort interface {
	Get(ctx context.Context, id string) (Record, error)
	Put(ctx context.Context, rec Record) error
}
