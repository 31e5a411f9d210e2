package domain

import (
	"context"

	"brandgate/internal/core/ucr"
)

// DetectorPort is the external port of the signals service
type DetectorPort interface {
	Detect(ctx context.Context, cfg ucr.Configuration, in DetectInput) (DetectResult, error)
}

// InsightPort is the optional enrichment capability. Implementations wrap an
// AI provider; the service must work identically when none is supplied
type InsightPort interface {
	// GenerateInsights returns free-text guidance for the given signals in the
	// brand's context. Errors are recovered by the caller, never surfaced
	GenerateInsights(ctx context.Context, signals []Signal, brand ucr.Brand) (string, error)
}

// TraceWriterPort persists run traces; best effort, failures are logged only
type TraceWriterPort interface {
	Write(ctx context.Context, tr RunTrace) error
}
